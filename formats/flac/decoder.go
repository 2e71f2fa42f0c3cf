// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"

	"github.com/ik5/pdspec/audio"
)

// frameParser is the part of flac.Stream the source needs.
type frameParser interface {
	ParseNext() (*frame.Frame, error)
	Close() error
}

type source struct {
	stream     frameParser
	sampleRate int
	channels   int
	scale      float32

	pending []float32 // interleaved samples of the current frame not yet handed out
	eof     bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return 4096 * s.channels }

func (s *source) Close() error {
	if err := s.stream.Close(); err != nil {
		return fmt.Errorf("closing flac stream: %w", err)
	}

	return nil
}

func (s *source) next() error {
	f, err := s.stream.ParseNext()
	if errors.Is(err, io.EOF) {
		s.eof = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("decoding flac frame: %w", err)
	}
	if len(f.Subframes) != s.channels {
		return fmt.Errorf("%w: %d != %d", ErrChannelMismatch, len(f.Subframes), s.channels)
	}

	frames := len(f.Subframes[0].Samples)
	for _, sub := range f.Subframes[1:] {
		frames = min(frames, len(sub.Samples))
	}

	s.pending = s.pending[:0]
	for i := range frames {
		for _, sub := range f.Subframes {
			s.pending = append(s.pending, float32(sub.Samples[i])*s.scale)
		}
	}

	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) - len(dst)%s.channels
	written := 0

	for written < want {
		if len(s.pending) == 0 {
			if s.eof {
				break
			}
			if err := s.next(); err != nil {
				return written, err
			}
			continue
		}

		n := copy(dst[written:want], s.pending)
		s.pending = s.pending[n:]
		written += n
	}

	if written == 0 && s.eof && want > 0 {
		return 0, io.EOF
	}
	if s.eof && len(s.pending) == 0 {
		return written, io.EOF
	}

	return written, nil
}

// Decoder reads FLAC streams with github.com/mewkiz/flac.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("opening flac stream: %w", err)
	}

	bits := int(stream.Info.BitsPerSample)
	if bits < 4 || bits > 32 {
		_ = stream.Close()
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bits)
	}

	return newSource(stream, int(stream.Info.SampleRate), int(stream.Info.NChannels), bits), nil
}

func newSource(stream frameParser, sampleRate, channels, bits int) *source {
	return &source{
		stream:     stream,
		sampleRate: sampleRate,
		channels:   max(1, channels),
		scale:      1 / float32(int64(1)<<(bits-1)),
	}
}
