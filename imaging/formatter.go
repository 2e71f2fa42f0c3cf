// SPDX-License-Identifier: EPL-2.0

package imaging

import (
	"image"
	"math"

	"gonum.org/v1/gonum/mat"
)

type Config struct {
	// Size is the side of the square output.
	Size int
	// SquareTolerance is the relative width/height mismatch tolerated
	// before the matrix is squared.
	SquareTolerance float64
	// Epsilon guards the normalization denominator.
	Epsilon float64
	Palette *Palette
}

func DefaultConfig() Config {
	return Config{
		Size:            224,
		SquareTolerance: 0.2,
		Epsilon:         1e-8,
		Palette:         &Jet,
	}
}

// Formatter renders spectrogram matrices as images. It holds no mutable
// state and is safe for concurrent use.
type Formatter struct {
	cfg Config
}

func New(cfg Config) *Formatter {
	if cfg.Palette == nil {
		cfg.Palette = &Jet
	}

	return &Formatter{cfg: cfg}
}

func (f *Formatter) Config() Config { return f.cfg }

// Square resizes m to rows x rows when its width is too far from its height.
func (f *Formatter) Square(m mat.Matrix) mat.Matrix {
	r, c := m.Dims()
	if math.Abs(float64(c-r)) > f.cfg.SquareTolerance*float64(r) {
		return ResizeBilinear(m, r, r)
	}

	return m
}

// Quantize maps m onto 0..255 by its own range, truncating.
func (f *Formatter) Quantize(m mat.Matrix) *image.Gray {
	r, c := m.Dims()
	out := image.NewGray(image.Rect(0, 0, c, r))
	if r == 0 || c == 0 {
		return out
	}

	lo, hi := mat.Min(m), mat.Max(m)
	scale := 255 / (hi - lo + f.cfg.Epsilon)
	for y := range r {
		row := out.Pix[y*out.Stride : y*out.Stride+c]
		for x := range row {
			row[x] = uint8((m.At(y, x) - lo) * scale)
		}
	}

	return out
}

// Colorize maps every gray pixel through the palette.
func (f *Formatter) Colorize(g *image.Gray) *Image {
	w, h := g.Rect.Dx(), g.Rect.Dy()
	out := NewImage(w, h)
	for y := range h {
		src := g.Pix[y*g.Stride : y*g.Stride+w]
		dst := out.Pix[y*out.Stride() : (y+1)*out.Stride()]
		for x, v := range src {
			rgb := f.cfg.Palette[v]
			dst[3*x], dst[3*x+1], dst[3*x+2] = rgb[0], rgb[1], rgb[2]
		}
	}

	return out
}

// Format renders m as a Size x Size RGB image. An empty matrix renders
// as palette entry 0 everywhere.
func (f *Formatter) Format(m mat.Matrix) *Image {
	size := f.cfg.Size

	r, c := m.Dims()
	if r == 0 || c == 0 {
		return f.Colorize(image.NewGray(image.Rect(0, 0, size, size)))
	}

	gray := f.Quantize(f.Square(m))
	return f.Colorize(scaleGray(gray, size, size))
}
