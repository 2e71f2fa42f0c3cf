// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloatToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float64
		want  int16
	}{
		{name: "zero", input: 0, want: 0},
		{name: "full scale", input: 1, want: math.MaxInt16},
		{name: "negative full scale", input: -1, want: -math.MaxInt16},
		{name: "half", input: 0.5, want: 16383},
		{name: "negative half", input: -0.5, want: -16383},
		{name: "clamp above", input: 1.5, want: math.MaxInt16},
		{name: "clamp below", input: -100, want: -math.MaxInt16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FloatToInt16(tt.input); got != tt.want {
				t.Errorf("FloatToInt16(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFloatToInt16_Monotonic(t *testing.T) {
	t.Parallel()

	prev := FloatToInt16(float32(-1))
	for f := float32(-0.99); f <= 1; f += 0.01 {
		curr := FloatToInt16(f)
		if curr < prev {
			t.Fatalf("not monotonic at %v: %v < %v", f, curr, prev)
		}
		prev = curr
	}
}

func TestFloatToInt16_Symmetric(t *testing.T) {
	t.Parallel()

	for _, v := range []float64{0.1, 0.25, 0.5, 0.75, 0.99, 1} {
		if pos, neg := FloatToInt16(v), FloatToInt16(-v); pos != -neg {
			t.Errorf("FloatToInt16(±%v) = %v, %v; want symmetric", v, pos, neg)
		}
	}
}
