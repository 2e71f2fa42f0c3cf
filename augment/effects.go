// SPDX-License-Identifier: EPL-2.0

package augment

import (
	"math"
	"math/rand/v2"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"

	"github.com/ik5/pdspec/audio"
)

// Effect is one waveform transform. Apply always transforms; the
// augmenter decides whether to call it.
type Effect interface {
	Apply(w audio.Waveform, rng *rand.Rand) audio.Waveform
}

type noise struct {
	amplitude Range
}

func (e noise) Apply(w audio.Waveform, rng *rand.Rand) audio.Waveform {
	amp := e.amplitude.draw(rng.Float64())
	out := w.Clone()
	for i := range out.Samples {
		out.Samples[i] += amp * rng.NormFloat64()
	}

	return out
}

type timeStretch struct {
	rate Range
	voc  vocoder
}

// Apply changes tempo and then restores the original length, so a faster
// clip ends in silence and a slower one is cut.
func (e timeStretch) Apply(w audio.Waveform, rng *rand.Rand) audio.Waveform {
	rate := e.rate.draw(rng.Float64())
	y := e.voc.stretch(w.Samples, rate)

	return audio.Waveform{Samples: fixLength(y, w.Len()), SampleRate: w.SampleRate}
}

// resampleFunc scales the length of x by ratio.
type resampleFunc func(x []float64, sampleRate int, ratio float64) []float64

type pitchShift struct {
	semitones Range
	voc       vocoder
	resample  resampleFunc
}

// Apply stretches by 2^(-n/12) and resamples back, which moves every
// frequency by n semitones and keeps the duration.
func (e pitchShift) Apply(w audio.Waveform, rng *rand.Rand) audio.Waveform {
	steps := e.semitones.draw(rng.Float64())
	rate := math.Pow(2, -steps/12)

	y := e.voc.stretch(w.Samples, rate)
	y = e.resample(y, w.SampleRate, rate)

	return audio.Waveform{Samples: fixLength(y, w.Len()), SampleRate: w.SampleRate}
}

// beepResample resamples through beep's windowed sinc resampler.
func beepResample(quality int) resampleFunc {
	return func(x []float64, sampleRate int, ratio float64) []float64 {
		dst := int(math.Round(float64(sampleRate) * ratio))
		if len(x) == 0 || dst <= 0 {
			return nil
		}

		r := beep.Resample(quality, beep.SampleRate(sampleRate), beep.SampleRate(dst), &sliceStreamer{samples: x})
		return drain(r, int(float64(len(x))*ratio)+1)
	}
}

// cubicResample resamples through the streaming Catmull-Rom resampler.
func cubicResample(x []float64, sampleRate int, ratio float64) []float64 {
	dst := int(math.Round(float64(sampleRate) * ratio))
	if len(x) == 0 || dst <= 0 {
		return nil
	}

	src := audio.NewWaveformSource(audio.Waveform{Samples: x, SampleRate: sampleRate})
	w, err := audio.ReadWaveform(src, dst)
	if err != nil {
		return nil
	}

	return w.Samples
}

func dbToFactor(db float64) float64 {
	return math.Pow(10, db/20)
}

type gainBeep struct {
	db Range
}

func (e gainBeep) Apply(w audio.Waveform, rng *rand.Rand) audio.Waveform {
	factor := dbToFactor(e.db.draw(rng.Float64()))
	y := drain(e.stream(w.Samples, factor), w.Len())

	return audio.Waveform{Samples: fixLength(y, w.Len()), SampleRate: w.SampleRate}
}

// stream scales x by factor. effects.Gain multiplies by 1+Gain.
func (gainBeep) stream(x []float64, factor float64) beep.Streamer {
	return &effects.Gain{
		Streamer: &sliceStreamer{samples: x},
		Gain:     factor - 1,
	}
}

type gainNative struct {
	db Range
}

func (e gainNative) Apply(w audio.Waveform, rng *rand.Rand) audio.Waveform {
	factor := dbToFactor(e.db.draw(rng.Float64()))
	out := w.Clone()
	for i := range out.Samples {
		out.Samples[i] *= factor
	}

	return out
}
