// SPDX-License-Identifier: EPL-2.0

package augment

import (
	"math"
	"math/cmplx"

	"github.com/r9y9/gossp/stft"
)

// vocoder changes duration without changing pitch.
type vocoder struct {
	frameLength int
	hopLength   int
}

// stretch speeds x up by rate (rate > 1 shortens it). The result has
// round(len(x)/rate) samples.
func (v vocoder) stretch(x []float64, rate float64) []float64 {
	want := int(math.Round(float64(len(x)) / rate))
	if len(x) == 0 || want == 0 {
		return make([]float64, want)
	}

	n, hop := v.frameLength, v.hopLength
	bins := n/2 + 1

	// Center the frames: n/2 zeros in front, and enough behind that the
	// last sample lands in a full frame.
	padded := make([]float64, n/2+len(x)+n)
	copy(padded[n/2:], x)

	s := stft.New(hop, n)
	frames := s.STFT(padded)

	advance := make([]float64, bins)
	phase := make([]float64, bins)
	for k := range bins {
		advance[k] = 2 * math.Pi * float64(k) * float64(hop) / float64(n)
		phase[k] = cmplx.Phase(frames[0][k])
	}

	zero := make([]complex128, n)
	var out [][]complex128
	for step := 0.0; step < float64(len(frames)); step += rate {
		i := int(step)
		alpha := step - float64(i)

		c0, c1 := frames[i], zero
		if i+1 < len(frames) {
			c1 = frames[i+1]
		}

		spec := make([]complex128, n)
		for k := range bins {
			mag := (1-alpha)*cmplx.Abs(c0[k]) + alpha*cmplx.Abs(c1[k])
			spec[k] = cmplx.Rect(mag, phase[k])

			dphase := cmplx.Phase(c1[k]) - cmplx.Phase(c0[k]) - advance[k]
			dphase -= 2 * math.Pi * math.Round(dphase/(2*math.Pi))
			phase[k] += advance[k] + dphase
		}
		// Hermitian symmetry keeps the inverse transform real.
		for k := 1; k < n-k; k++ {
			spec[n-k] = cmplx.Conj(spec[k])
		}

		out = append(out, spec)
	}

	y := s.ISTFT(out)

	res := make([]float64, want)
	if len(y) > n/2 {
		copy(res, y[n/2:])
	}

	return res
}

// fixLength pads x with zeros or truncates it to n samples.
func fixLength(x []float64, n int) []float64 {
	if len(x) == n {
		return x
	}

	out := make([]float64, n)
	copy(out, x)

	return out
}
