// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

// SliceSource streams interleaved samples that are already in memory.
type SliceSource struct {
	data       []float32
	off        int
	sampleRate int
	channels   int
}

// NewSliceSource wraps interleaved samples. channels below 1 is treated as mono.
func NewSliceSource(data []float32, sampleRate, channels int) *SliceSource {
	return &SliceSource{
		data:       data,
		sampleRate: sampleRate,
		channels:   max(1, channels),
	}
}

// NewWaveformSource streams a mono waveform.
func NewWaveformSource(w Waveform) *SliceSource {
	data := make([]float32, len(w.Samples))
	for i, s := range w.Samples {
		data[i] = float32(s)
	}

	return NewSliceSource(data, w.SampleRate, 1)
}

func (s *SliceSource) SampleRate() int { return s.sampleRate }
func (s *SliceSource) Channels() int   { return s.channels }
func (s *SliceSource) BufSize() int    { return 4096 }
func (s *SliceSource) Close() error    { return nil }

func (s *SliceSource) ReadSamples(dst []float32) (int, error) {
	if s.off >= len(s.data) {
		return 0, io.EOF
	}

	want := len(dst) - len(dst)%s.channels
	n := copy(dst[:want], s.data[s.off:])
	s.off += n

	if s.off >= len(s.data) {
		return n, io.EOF
	}

	return n, nil
}
