// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"math"
	"math/rand/v2"
)

// Tone returns n samples of a sine at freq Hz with the given amplitude.
func Tone(sampleRate, n int, freq, amplitude float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}

	return out
}

// Silence returns n zero samples.
func Silence(n int) []float64 {
	return make([]float64, n)
}

// Noise returns n samples of uniform noise in [-amplitude, amplitude].
func Noise(n int, amplitude float64, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * (2*rng.Float64() - 1)
	}

	return out
}

// Concat joins signals end to end.
func Concat(parts ...[]float64) []float64 {
	var total int
	for _, p := range parts {
		total += len(p)
	}

	out := make([]float64, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}

	return out
}

// Mix adds b onto a copy of a. The result has the length of a.
func Mix(a, b []float64) []float64 {
	out := make([]float64, len(a))
	copy(out, a)
	for i := range min(len(a), len(b)) {
		out[i] += b[i]
	}

	return out
}

// Voice builds a crude voiced signal: a fundamental plus harmonics with a
// slow vibrato, which is enough to give distinct spectrograms per f0.
func Voice(sampleRate, n int, f0, amplitude float64) []float64 {
	out := make([]float64, n)
	var phase float64
	for i := range out {
		t := float64(i) / float64(sampleRate)
		f := f0 * (1 + 0.02*math.Sin(2*math.Pi*5*t))
		phase += 2 * math.Pi * f / float64(sampleRate)

		var v float64
		for h := 1.0; h <= 5; h++ {
			v += math.Sin(h*phase) / h
		}
		out[i] = amplitude * v / 2.3
	}

	return out
}
