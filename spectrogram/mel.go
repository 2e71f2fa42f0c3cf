// SPDX-License-Identifier: EPL-2.0

package spectrogram

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Slaney mel scale: linear below 1 kHz, logarithmic above.
const (
	melFSP      = 200.0 / 3
	melMinLogHz = 1000.0
	melMinLog   = melMinLogHz / melFSP
)

var melLogStep = math.Log(6.4) / 27

func HzToMel(f float64) float64 {
	if f >= melMinLogHz {
		return melMinLog + math.Log(f/melMinLogHz)/melLogStep
	}

	return f / melFSP
}

func MelToHz(m float64) float64 {
	if m >= melMinLog {
		return melMinLogHz * math.Exp(melLogStep*(m-melMinLog))
	}

	return melFSP * m
}

// MelFilterbank builds an nMels x (nFFT/2+1) matrix of area-normalized
// triangular filters spanning [fMin, fMax].
func MelFilterbank(sampleRate, nFFT, nMels int, fMin, fMax float64) *mat.Dense {
	if fMax <= 0 {
		fMax = float64(sampleRate) / 2
	}
	bins := nFFT/2 + 1

	fftFreqs := make([]float64, bins)
	floats.Span(fftFreqs, 0, float64(sampleRate)/2)

	melPts := make([]float64, nMels+2)
	floats.Span(melPts, HzToMel(fMin), HzToMel(fMax))
	hz := make([]float64, nMels+2)
	for i, m := range melPts {
		hz[i] = MelToHz(m)
	}

	fb := mat.NewDense(nMels, bins, nil)
	for i := range nMels {
		lo, center, hi := hz[i], hz[i+1], hz[i+2]
		enorm := 2 / (hi - lo)
		for j, f := range fftFreqs {
			lower := (f - lo) / (center - lo)
			upper := (hi - f) / (hi - center)
			if w := max(0, min(lower, upper)); w > 0 {
				fb.Set(i, j, w*enorm)
			}
		}
	}

	return fb
}
