// SPDX-License-Identifier: EPL-2.0

package spectrogram

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestPowerToDB(t *testing.T) {
	t.Parallel()

	in := mat.NewDense(2, 2, []float64{1, 0.1, 0.01, 0})

	tests := []struct {
		topDB float64
		want  []float64
	}{
		{80, []float64{0, -10, -20, -80}},
		{15, []float64{0, -10, -15, -15}},
		{0, []float64{0, -10, -20, -100}},
	}

	for _, tt := range tests {
		got := PowerToDB(in, tt.topDB)
		for i, w := range tt.want {
			if v := got.At(i/2, i%2); math.Abs(v-w) > 1e-9 {
				t.Errorf("topDB=%v: [%d] = %v, want %v", tt.topDB, i, v, w)
			}
		}
		if mat.Max(got) != 0 {
			t.Errorf("topDB=%v: Max() = %v, want 0", tt.topDB, mat.Max(got))
		}
	}

	if in.At(0, 1) != 0.1 {
		t.Error("PowerToDB modified its input")
	}
}

func TestPowerToDB_Degenerate(t *testing.T) {
	t.Parallel()

	zeros := PowerToDB(mat.NewDense(3, 4, nil), 80)
	if mat.Max(zeros) != 0 || mat.Min(zeros) != 0 {
		t.Errorf("all-zero power: range [%v, %v], want all 0", mat.Min(zeros), mat.Max(zeros))
	}

	if r, c := PowerToDB(&mat.Dense{}, 80).Dims(); r != 0 || c != 0 {
		t.Errorf("empty: Dims() = %dx%d", r, c)
	}
}

func dbMatrix(rows int, cols []float64) *mat.Dense {
	m := mat.NewDense(rows, len(cols), nil)
	for j, v := range cols {
		for i := range rows {
			m.Set(i, j, v)
		}
	}

	return m
}

func TestCropTrailing(t *testing.T) {
	t.Parallel()

	loud := func(n int) []float64 {
		out := make([]float64, n)
		return out
	}
	quiet := func(n int) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = -80
		}
		return out
	}
	join := func(parts ...[]float64) []float64 {
		var out []float64
		for _, p := range parts {
			out = append(out, p...)
		}
		return out
	}

	tests := []struct {
		name string
		cols []float64
		want int
	}{
		{"loud then quiet", join(loud(10), quiet(40)), 15},
		{"loud to the end", join(quiet(3), loud(10)), 13},
		{"pad clamps", join(loud(10), quiet(2)), 12},
		{"flat", quiet(20), 20},
		{"just under 1%", join(loud(4), []float64{-20.1, -20.1}, quiet(20)), 9},
		{"just over 1%", join(loud(4), []float64{-19.9}, quiet(20)), 10},
		{"single column", []float64{-3}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := dbMatrix(4, tt.cols)
			got := CropTrailing(in, 0.01, 5)

			r, c := got.Dims()
			if r != 4 || c != tt.want {
				t.Errorf("Dims() = %dx%d, want 4x%d", r, c, tt.want)
			}
			for j := range c {
				if got.At(0, j) != in.At(0, j) {
					t.Fatalf("column %d changed", j)
				}
			}
		})
	}
}

func TestCropTrailing_Empty(t *testing.T) {
	t.Parallel()

	if r, c := CropTrailing(&mat.Dense{}, 0.01, 5).Dims(); r != 0 || c != 0 {
		t.Errorf("Dims() = %dx%d, want 0x0", r, c)
	}
}
