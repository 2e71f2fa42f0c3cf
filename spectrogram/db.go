// SPDX-License-Identifier: EPL-2.0

package spectrogram

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	amin      = 1e-10
	energyEps = 1e-10
)

// PowerToDB converts power to decibels relative to the largest value of m
// and floors the result at -topDB. The maximum of the result is exactly 0.
// A non-positive topDB disables the floor.
func PowerToDB(m mat.Matrix, topDB float64) *mat.Dense {
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return &mat.Dense{}
	}

	out := mat.NewDense(r, c, nil)
	ref := 10 * math.Log10(max(amin, mat.Max(m)))
	out.Apply(func(_, _ int, v float64) float64 {
		db := 10*math.Log10(max(amin, v)) - ref
		if topDB > 0 {
			db = max(db, -topDB)
		}
		return db
	}, m)

	return out
}

// FrameEnergy returns, per column, the linear energy sum of 10^(dB/10)
// over all rows plus a small epsilon.
func FrameEnergy(m mat.Matrix) []float64 {
	r, c := m.Dims()
	energy := make([]float64, c)
	for j := range c {
		sum := energyEps
		for i := range r {
			sum += math.Pow(10, m.At(i, j)/10)
		}
		energy[j] = sum
	}

	return energy
}

// CropTrailing drops columns after the last frame whose energy exceeds
// ratio of the loudest frame, keeping pad extra frames. The column holding
// the matrix maximum is never dropped. The result is a copy; when no frame
// qualifies it holds every column.
func CropTrailing(m mat.Matrix, ratio float64, pad int) *mat.Dense {
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return &mat.Dense{}
	}

	energy := FrameEnergy(m)
	var peak float64
	for _, e := range energy {
		peak = max(peak, e)
	}

	last := -1
	for j, e := range energy {
		if e > ratio*peak {
			last = j
		}
	}
	if last < 0 {
		return mat.DenseCopyOf(m)
	}

	keep := min(c, max(last+1+pad, peakColumn(m)+1))
	out := mat.NewDense(r, keep, nil)
	for i := range r {
		for j := range keep {
			out.Set(i, j, m.At(i, j))
		}
	}

	return out
}

func peakColumn(m mat.Matrix) int {
	r, c := m.Dims()
	best, col := math.Inf(-1), 0
	for j := range c {
		for i := range r {
			if v := m.At(i, j); v > best {
				best, col = v, j
			}
		}
	}

	return col
}
