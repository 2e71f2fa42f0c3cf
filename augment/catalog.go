// SPDX-License-Identifier: EPL-2.0

package augment

import (
	"fmt"
	"math"
)

// Descriptor is one versioned implementation of an effect.
type Descriptor struct {
	Name    string
	Version int
	// Probe reports whether the implementation can run here.
	Probe func(cfg WaveConfig) error
	New   func(cfg WaveConfig) Effect
}

// ID returns name@vN.
func (d Descriptor) ID() string {
	return fmt.Sprintf("%s@v%d", d.Name, d.Version)
}

// Effect names in chain order.
const (
	EffectNoise       = "noise"
	EffectTimeStretch = "time_stretch"
	EffectPitchShift  = "pitch_shift"
	EffectGain        = "gain"
)

var chainOrder = []string{EffectNoise, EffectTimeStretch, EffectPitchShift, EffectGain}

// Catalog lists every known implementation, grouped by effect, newest
// first within a group.
func Catalog() []Descriptor {
	return []Descriptor{
		{
			Name: EffectNoise, Version: 1,
			Probe: func(WaveConfig) error { return nil },
			New: func(cfg WaveConfig) Effect {
				return noise{amplitude: cfg.Noise.Range}
			},
		},
		{
			Name: EffectTimeStretch, Version: 1,
			Probe: probeVocoder,
			New: func(cfg WaveConfig) Effect {
				return timeStretch{rate: cfg.Stretch.Range, voc: newVocoder(cfg)}
			},
		},
		{
			Name: EffectPitchShift, Version: 2,
			Probe: func(cfg WaveConfig) error {
				if err := probeVocoder(cfg); err != nil {
					return err
				}
				return probeResample(beepResample(cfg.ResampleQuality))
			},
			New: func(cfg WaveConfig) Effect {
				return pitchShift{
					semitones: cfg.Pitch.Range,
					voc:       newVocoder(cfg),
					resample:  beepResample(cfg.ResampleQuality),
				}
			},
		},
		{
			Name: EffectPitchShift, Version: 1,
			Probe: func(cfg WaveConfig) error {
				if err := probeVocoder(cfg); err != nil {
					return err
				}
				return probeResample(cubicResample)
			},
			New: func(cfg WaveConfig) Effect {
				return pitchShift{
					semitones: cfg.Pitch.Range,
					voc:       newVocoder(cfg),
					resample:  cubicResample,
				}
			},
		},
		{
			Name: EffectGain, Version: 2,
			Probe: func(WaveConfig) error {
				out := drain(gainBeep{}.stream(probeSignal(64), 2), 64)
				if len(out) != 64 || math.Abs(out[1]-2*probeSignal(64)[1]) > 1e-9 {
					return fmt.Errorf("%w: beep gain produced unexpected output", ErrProbeFailed)
				}
				return nil
			},
			New: func(cfg WaveConfig) Effect {
				return gainBeep{db: cfg.Gain.Range}
			},
		},
		{
			Name: EffectGain, Version: 1,
			Probe: func(WaveConfig) error { return nil },
			New: func(cfg WaveConfig) Effect {
				return gainNative{db: cfg.Gain.Range}
			},
		},
	}
}

func newVocoder(cfg WaveConfig) vocoder {
	return vocoder{frameLength: cfg.FrameLength, hopLength: cfg.HopLength}
}

func probeSignal(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = 0.5 * math.Sin(2*math.Pi*float64(i)/16)
	}

	return x
}

func probeVocoder(cfg WaveConfig) error {
	if cfg.FrameLength < 4 || cfg.HopLength <= 0 || cfg.HopLength > cfg.FrameLength {
		return fmt.Errorf("%w: frame length %d, hop %d", ErrProbeFailed, cfg.FrameLength, cfg.HopLength)
	}

	x := probeSignal(2 * cfg.FrameLength)
	y := newVocoder(cfg).stretch(x, 1.25)
	if len(y) == 0 {
		return fmt.Errorf("%w: vocoder produced no output", ErrProbeFailed)
	}
	for _, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: vocoder produced non-finite output", ErrProbeFailed)
		}
	}

	return nil
}

func probeResample(fn resampleFunc) error {
	y := fn(probeSignal(1600), 16000, 0.5)
	if len(y) < 700 || len(y) > 900 {
		return fmt.Errorf("%w: resampler returned %d samples for 800 expected", ErrProbeFailed, len(y))
	}

	return nil
}

// runProbe turns a panic inside a probe into an error.
func runProbe(d Descriptor, cfg WaveConfig) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s panicked: %v", ErrProbeFailed, d.ID(), r)
		}
	}()

	if d.Probe == nil {
		return nil
	}

	return d.Probe(cfg)
}
