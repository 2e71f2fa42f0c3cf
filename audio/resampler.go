// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/pdspec/utils"
)

// Resampler streams from src to a target sample rate using Catmull-Rom
// interpolation. Works on interleaved samples; preserves channel count.
// When downsampling a one-pole low-pass is applied to every source frame
// before interpolation.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64 // source frames consumed per output frame
	channels int

	// hist[1] is the frame at the integer part of the read position,
	// hist[0] the one before, hist[2] and hist[3] the two after.
	hist [4][]float32
	real [4]bool
	pos  float64

	primed bool
	done   bool
	err    error

	block  []float32
	bnext  int
	bend   int
	srcEOF bool

	lowPass bool
	alpha   float32
	lpState []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := max(1, src.Channels())
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     step,
		channels: channels,
		block:    make([]float32, 1024*channels),
		lowPass:  step > 1,
		alpha:    0.5,
		lpState:  make([]float32, channels),
	}
	for i := range r.hist {
		r.hist[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("closing resampler source: %w", err)
	}

	return nil
}

// fetch copies the next source frame into dst. It reports false once the
// source is exhausted.
func (r *Resampler) fetch(dst []float32) (bool, error) {
	for r.bend-r.bnext < r.channels {
		if r.srcEOF {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.block)
		r.bnext, r.bend = 0, n-n%r.channels
		if err == io.EOF {
			r.srcEOF = true
		} else if err != nil {
			return false, fmt.Errorf("reading resampler source: %w", err)
		}
	}

	copy(dst, r.block[r.bnext:r.bnext+r.channels])
	r.bnext += r.channels

	if r.lowPass {
		for c := range dst {
			dst[c] = r.alpha*dst[c] + (1-r.alpha)*r.lpState[c]
			r.lpState[c] = dst[c]
		}
	}

	return true, nil
}

// fill loads slot i from the source, or repeats slot i-1 past the end.
func (r *Resampler) fill(i int) error {
	ok, err := r.fetch(r.hist[i])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.hist[i], r.hist[i-1])
	}
	r.real[i] = ok

	return nil
}

func (r *Resampler) prime() error {
	r.primed = true

	// Seed the filter with the first frame so it does not ramp up from zero.
	saved := r.lowPass
	r.lowPass = false
	ok, err := r.fetch(r.hist[1])
	r.lowPass = saved
	if err != nil {
		return err
	}
	if !ok {
		r.done = true
		return nil
	}
	copy(r.lpState, r.hist[1])
	copy(r.hist[0], r.hist[1])
	r.real[1] = true

	if err := r.fill(2); err != nil {
		return err
	}

	return r.fill(3)
}

// advance moves the window one source frame forward.
func (r *Resampler) advance() (bool, error) {
	if !r.real[2] {
		return false, nil
	}

	r.hist[0], r.hist[1], r.hist[2], r.hist[3] = r.hist[1], r.hist[2], r.hist[3], r.hist[0]
	r.real[0], r.real[1], r.real[2] = r.real[1], r.real[2], r.real[3]

	return true, r.fill(3)
}

// ReadSamples produces dst samples at the target rate.
// dst length should be a multiple of r.Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.err != nil {
		return 0, r.err
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			r.err = err
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames && !r.done {
		for r.pos >= 1 {
			ok, err := r.advance()
			if err != nil {
				r.err = err
				return written * r.channels, err
			}
			if !ok {
				r.done = true
				break
			}
			r.pos--
		}
		if r.done {
			break
		}

		x := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(r.hist[0][c], r.hist[1][c], r.hist[2][c], r.hist[3][c], x)
		}

		written++
		r.pos += r.step
	}

	if r.done {
		return written * r.channels, io.EOF
	}

	return written * r.channels, nil
}
