// SPDX-License-Identifier: EPL-2.0

package augment

import (
	"github.com/faiface/beep"
)

// sliceStreamer plays a mono signal as a beep stream on both channels.
type sliceStreamer struct {
	samples []float64
	pos     int
}

func (s *sliceStreamer) Stream(buf [][2]float64) (int, bool) {
	if s.pos >= len(s.samples) {
		return 0, false
	}

	n := copy2(buf, s.samples[s.pos:])
	s.pos += n

	return n, true
}

func (s *sliceStreamer) Err() error { return nil }

func copy2(dst [][2]float64, src []float64) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = [2]float64{src[i], src[i]}
	}

	return n
}

// drain reads a beep stream to the end and keeps the left channel.
func drain(s beep.Streamer, sizeHint int) []float64 {
	out := make([]float64, 0, sizeHint)
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			out = append(out, frame[0])
		}
		if !ok || n == 0 {
			return out
		}
	}
}
