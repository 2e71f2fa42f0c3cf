// SPDX-License-Identifier: EPL-2.0

package augment

// Range is a closed interval a parameter is drawn from uniformly.
type Range struct {
	Min float64
	Max float64
}

func (r Range) draw(u float64) float64 {
	return r.Min + (r.Max-r.Min)*u
}

// EffectConfig holds the application probability and parameter range of
// one effect.
type EffectConfig struct {
	Probability float64
	Range       Range
}

type WaveConfig struct {
	// Noise amplitude (standard deviation of the added noise).
	Noise EffectConfig
	// Stretch rate; above 1 speeds up.
	Stretch EffectConfig
	// Pitch shift in semitones.
	Pitch EffectConfig
	// Gain in dB.
	Gain EffectConfig

	// Phase vocoder frame length and hop.
	FrameLength int
	HopLength   int
	// ResampleQuality is passed to beep.Resample (1..64).
	ResampleQuality int
}

func DefaultWaveConfig() WaveConfig {
	return WaveConfig{
		Noise:           EffectConfig{Probability: 0.5, Range: Range{0.001, 0.015}},
		Stretch:         EffectConfig{Probability: 0.5, Range: Range{0.8, 1.2}},
		Pitch:           EffectConfig{Probability: 0.5, Range: Range{-4, 4}},
		Gain:            EffectConfig{Probability: 0.5, Range: Range{-6, 6}},
		FrameLength:     2048,
		HopLength:       512,
		ResampleQuality: 4,
	}
}

type SpecConfig struct {
	FreqMasks    int
	MaxFreqWidth int
	TimeMasks    int
	MaxTimeWidth int
}

func DefaultSpecConfig() SpecConfig {
	return SpecConfig{
		FreqMasks:    2,
		MaxFreqWidth: 10,
		TimeMasks:    2,
		MaxTimeWidth: 20,
	}
}
