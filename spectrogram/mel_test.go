// SPDX-License-Identifier: EPL-2.0

package spectrogram

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMelScale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		hz, mel float64
	}{
		{0, 0},
		{200.0 / 3, 1},
		{1000, 15},
		{6400, 42},
	}

	for _, tt := range tests {
		if got := HzToMel(tt.hz); math.Abs(got-tt.mel) > 1e-9 {
			t.Errorf("HzToMel(%v) = %v, want %v", tt.hz, got, tt.mel)
		}
		if got := MelToHz(tt.mel); math.Abs(got-tt.hz) > 1e-6 {
			t.Errorf("MelToHz(%v) = %v, want %v", tt.mel, got, tt.hz)
		}
	}

	for f := 10.0; f < 8000; f *= 1.7 {
		if got := MelToHz(HzToMel(f)); math.Abs(got-f) > 1e-6 {
			t.Errorf("MelToHz(HzToMel(%v)) = %v", f, got)
		}
	}
}

func TestMelFilterbank(t *testing.T) {
	t.Parallel()

	fb := MelFilterbank(16000, 1024, 128, 0, 0)
	r, c := fb.Dims()
	if r != 128 || c != 513 {
		t.Fatalf("Dims() = %dx%d, want 128x513", r, c)
	}

	if mat.Min(fb) < 0 {
		t.Errorf("Min() = %v, want non-negative weights", mat.Min(fb))
	}

	prevPeak := -1
	for i := range r {
		row := fb.RawRowView(i)
		peak, best := -1, 0.0
		for j, v := range row {
			if v > best {
				peak, best = j, v
			}
		}
		if peak < 0 {
			t.Fatalf("filter %d is empty", i)
		}
		if peak < prevPeak {
			t.Errorf("filter %d peaks at bin %d, before filter %d at %d", i, peak, i-1, prevPeak)
		}
		prevPeak = peak
	}

	if prevPeak < 448 {
		t.Errorf("top filter peaks at bin %d, want above 7 kHz", prevPeak)
	}
}
