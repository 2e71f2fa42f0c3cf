// SPDX-License-Identifier: EPL-2.0

package imaging

import (
	"image"

	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/mat"
)

// sourceIndex maps destination index d to the two source taps and the
// weight of the second, with half-pixel centers and edges clamped.
func sourceIndex(d, srcLen, dstLen int) (int, int, float64) {
	pos := (float64(d)+0.5)*float64(srcLen)/float64(dstLen) - 0.5
	pos = max(0, min(pos, float64(srcLen-1)))

	i0 := int(pos)
	i1 := min(i0+1, srcLen-1)

	return i0, i1, pos - float64(i0)
}

// ResizeBilinear resamples m to rows x cols with bilinear interpolation.
func ResizeBilinear(m mat.Matrix, rows, cols int) *mat.Dense {
	sr, sc := m.Dims()
	out := mat.NewDense(rows, cols, nil)

	for y := range rows {
		y0, y1, fy := sourceIndex(y, sr, rows)
		for x := range cols {
			x0, x1, fx := sourceIndex(x, sc, cols)

			top := m.At(y0, x0)*(1-fx) + m.At(y0, x1)*fx
			bottom := m.At(y1, x0)*(1-fx) + m.At(y1, x1)*fx
			out.Set(y, x, top*(1-fy)+bottom*fy)
		}
	}

	return out
}

// scaleGray resizes a gray image with x/image/draw's bilinear kernel.
func scaleGray(src *image.Gray, width, height int) *image.Gray {
	if src.Rect.Dx() == width && src.Rect.Dy() == height {
		return src
	}

	dst := image.NewGray(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Rect, src, src.Rect, draw.Src, nil)

	return dst
}
