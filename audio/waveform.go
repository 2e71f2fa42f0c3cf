// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math"
	"time"
)

// Waveform is a mono signal held fully in memory.
type Waveform struct {
	Samples    []float64
	SampleRate int
}

func (w Waveform) Len() int { return len(w.Samples) }

func (w Waveform) Duration() time.Duration {
	if w.SampleRate <= 0 {
		return 0
	}

	return time.Duration(len(w.Samples)) * time.Second / time.Duration(w.SampleRate)
}

// Peak returns the largest absolute sample value.
func (w Waveform) Peak() float64 {
	var peak float64
	for _, s := range w.Samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}

	return peak
}

// Clone returns a deep copy.
func (w Waveform) Clone() Waveform {
	out := Waveform{SampleRate: w.SampleRate}
	if w.Samples != nil {
		out.Samples = make([]float64, len(w.Samples))
		copy(out.Samples, w.Samples)
	}

	return out
}

// Slice returns the samples in [start, end) as a new waveform sharing storage.
func (w Waveform) Slice(start, end int) Waveform {
	start = max(0, min(start, len(w.Samples)))
	end = max(start, min(end, len(w.Samples)))

	return Waveform{Samples: w.Samples[start:end], SampleRate: w.SampleRate}
}
