// SPDX-License-Identifier: EPL-2.0

package augment

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// SpecAugmenter masks frequency bands and time spans of a spectrogram.
type SpecAugmenter struct {
	cfg SpecConfig
}

func NewSpecAugmenter(cfg SpecConfig) *SpecAugmenter {
	return &SpecAugmenter{cfg: cfg}
}

// Augment returns a masked copy of m. Masked cells take the minimum of m,
// so the shape and the minimum are unchanged.
func (a *SpecAugmenter) Augment(m *mat.Dense, rng *rand.Rand) *mat.Dense {
	if m == nil || m.IsEmpty() {
		return &mat.Dense{}
	}

	out := mat.DenseCopyOf(m)
	rows, cols := out.Dims()
	fill := mat.Min(out)

	for range a.cfg.FreqMasks {
		start, width := maskSpan(rows, a.cfg.MaxFreqWidth, rng)
		for r := start; r < start+width; r++ {
			for c := range cols {
				out.Set(r, c, fill)
			}
		}
	}

	for range a.cfg.TimeMasks {
		start, width := maskSpan(cols, a.cfg.MaxTimeWidth, rng)
		for r := range rows {
			for c := start; c < start+width; c++ {
				out.Set(r, c, fill)
			}
		}
	}

	return out
}

// maskSpan draws a width in [0, maxWidth] clamped to dim and a start that
// keeps the span inside [0, dim).
func maskSpan(dim, maxWidth int, rng *rand.Rand) (start, width int) {
	width = min(rng.IntN(max(0, maxWidth)+1), dim)
	start = rng.IntN(dim - width + 1)

	return start, width
}
