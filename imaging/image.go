// SPDX-License-Identifier: EPL-2.0

package imaging

import (
	"image"
	"image/color"
)

// Image is an 8-bit RGB raster, row major, 3 bytes per pixel.
type Image struct {
	Width  int
	Height int
	Pix    []uint8
}

func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, 3*width*height),
	}
}

// Stride is the number of bytes per row.
func (m *Image) Stride() int { return 3 * m.Width }

// RGB returns the color at (x, y).
func (m *Image) RGB(x, y int) (r, g, b uint8) {
	i := y*m.Stride() + 3*x
	return m.Pix[i], m.Pix[i+1], m.Pix[i+2]
}

// Equal reports whether both images have the same size and pixels.
func (m *Image) Equal(o *Image) bool {
	if m.Width != o.Width || m.Height != o.Height || len(m.Pix) != len(o.Pix) {
		return false
	}
	for i := range m.Pix {
		if m.Pix[i] != o.Pix[i] {
			return false
		}
	}

	return true
}

// ToNRGBA converts to an opaque image.NRGBA.
func (m *Image) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, m.Width, m.Height))
	for y := range m.Height {
		src := m.Pix[y*m.Stride() : (y+1)*m.Stride()]
		dst := out.Pix[y*out.Stride : y*out.Stride+4*m.Width]
		for x := range m.Width {
			dst[4*x] = src[3*x]
			dst[4*x+1] = src[3*x+1]
			dst[4*x+2] = src[3*x+2]
			dst[4*x+3] = 0xff
		}
	}

	return out
}

// FromImage copies any image into RGB, dropping alpha.
func FromImage(img image.Image) *Image {
	b := img.Bounds()
	out := NewImage(b.Dx(), b.Dy())
	for y := range out.Height {
		for x := range out.Width {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			i := y*out.Stride() + 3*x
			out.Pix[i], out.Pix[i+1], out.Pix[i+2] = c.R, c.G, c.B
		}
	}

	return out
}
