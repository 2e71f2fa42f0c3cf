// SPDX-License-Identifier: EPL-2.0

package imaging

import "math"

// segment is one anchor of a piecewise linear color channel.
type segment struct {
	x, y float64
}

// Jet channel anchors, the same breakpoints matplotlib uses.
var (
	jetRed   = []segment{{0, 0}, {0.35, 0}, {0.66, 1}, {0.89, 1}, {1, 0.5}}
	jetGreen = []segment{{0, 0}, {0.125, 0}, {0.375, 1}, {0.64, 1}, {0.91, 0}, {1, 0}}
	jetBlue  = []segment{{0, 0.5}, {0.11, 1}, {0.34, 1}, {0.65, 0}, {1, 0}}
)

func interpolate(segs []segment, x float64) float64 {
	for i := 1; i < len(segs); i++ {
		if x <= segs[i].x {
			a, b := segs[i-1], segs[i]
			return a.y + (b.y-a.y)*(x-a.x)/(b.x-a.x)
		}
	}

	return segs[len(segs)-1].y
}

// Palette maps an 8-bit intensity to RGB.
type Palette [256][3]uint8

// Jet is the 256-entry jet palette, blue at 0 through red at 255.
var Jet = buildJet()

func buildJet() Palette {
	var p Palette
	for i := range p {
		x := float64(i) / 255
		p[i] = [3]uint8{
			uint8(math.Round(255 * interpolate(jetRed, x))),
			uint8(math.Round(255 * interpolate(jetGreen, x))),
			uint8(math.Round(255 * interpolate(jetBlue, x))),
		}
	}

	return p
}
