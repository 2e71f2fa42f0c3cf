// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/ik5/pdspec/audio"
)

// amin keeps log10 away from zero power.
const amin = 1e-10

// framePower returns the mean square of x over [start, start+length),
// treating samples outside x as zero.
func framePower(x []float64, start, length int) float64 {
	lo := max(0, start)
	hi := min(len(x), start+length)
	if hi <= lo {
		return 0
	}

	seg := x[lo:hi]
	return floats.Dot(seg, seg) / float64(length)
}

// SilenceBounds returns the sample span [start, end) that TrimSilence keeps.
// Frames are centered on multiples of hopLength and zero padded.
func SilenceBounds(x []float64, topDB float64, frameLength, hopLength int) (int, int) {
	n := len(x)
	if n == 0 || frameLength <= 0 || hopLength <= 0 {
		return 0, n
	}

	frames := 1 + n/hopLength
	power := make([]float64, frames)
	for i := range power {
		power[i] = framePower(x, i*hopLength-frameLength/2, frameLength)
	}

	ref := 10 * math.Log10(max(amin, floats.Max(power)))
	first, last := -1, -1
	for i, p := range power {
		if 10*math.Log10(max(amin, p))-ref > -topDB {
			if first < 0 {
				first = i
			}
			last = i
		}
	}

	if first < 0 {
		return 0, n
	}

	return min(n, first*hopLength), min(n, (last+1)*hopLength)
}

// TrimSilence drops leading and trailing audio more than topDB below the
// loudest frame. A fully silent clip is returned unchanged.
func TrimSilence(w audio.Waveform, topDB float64, frameLength, hopLength int) audio.Waveform {
	start, end := SilenceBounds(w.Samples, topDB, frameLength, hopLength)
	return w.Slice(start, end)
}

// FrameRMS returns the RMS of the frames [i*hop, i*hop+frameLength) for
// every frame that starts inside x. Frames running past the end are zero
// padded.
func FrameRMS(x []float64, frameLength, hopLength int) []float64 {
	if len(x) == 0 || frameLength <= 0 || hopLength <= 0 {
		return nil
	}

	frames := 1 + (len(x)-1)/hopLength
	rms := make([]float64, frames)
	for i := range rms {
		rms[i] = math.Sqrt(framePower(x, i*hopLength, frameLength))
	}

	return rms
}

// ActiveBounds returns the span ActiveRegion keeps, and false when no frame
// is active.
func ActiveBounds(x []float64, frameLength, hopLength int, ratio float64) (int, int, bool) {
	rms := FrameRMS(x, frameLength, hopLength)
	if len(rms) == 0 {
		return 0, len(x), false
	}

	threshold := ratio * floats.Max(rms)
	first, last := -1, -1
	for i, v := range rms {
		if v > threshold {
			if first < 0 {
				first = i
			}
			last = i
		}
	}

	if first < 0 {
		return 0, len(x), false
	}

	start := max(0, first*hopLength-frameLength)
	end := min(len(x), last*hopLength+frameLength+frameLength)

	return start, end, true
}

// ActiveRegion crops w to its active frames plus one frame length of
// context on each side.
func ActiveRegion(w audio.Waveform, frameLength, hopLength int, ratio float64) audio.Waveform {
	start, end, ok := ActiveBounds(w.Samples, frameLength, hopLength, ratio)
	if !ok {
		return w
	}

	return w.Slice(start, end)
}

// PeakNormalize returns a copy of w scaled so its largest absolute sample
// is 1. Peaks below floor are left alone.
func PeakNormalize(w audio.Waveform, floor float64) audio.Waveform {
	out := w.Clone()

	peak := w.Peak()
	if peak < floor {
		return out
	}

	floats.Scale(1/peak, out.Samples)

	return out
}
