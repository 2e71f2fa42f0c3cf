// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"io"
	"strings"
	"testing"
)

// mockOggVorbisReader simulates the oggvorbis.Reader for testing
type mockOggVorbisReader struct {
	sampleRate int
	channels   int
	samples    []float32
	err        error
}

func (m *mockOggVorbisReader) SampleRate() int { return m.sampleRate }
func (m *mockOggVorbisReader) Channels() int   { return m.channels }

func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if len(m.samples) == 0 {
		return 0, io.EOF
	}

	n := copy(buf, m.samples)
	n -= n % m.channels
	m.samples = m.samples[n:]

	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "OggS but not really"} {
		if _, err := (Decoder{}).Decode(strings.NewReader(in)); err == nil {
			t.Errorf("Decode(%q) succeeded, want error", in)
		}
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		samples  []float32
		bufLen   int
	}{
		{"mono", 1, []float32{0.1, 0.2, 0.3, 0.4, 0.5}, 2},
		{"stereo", 2, []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			want := append([]float32(nil), tt.samples...)
			s := &source{
				dec:        &mockOggVorbisReader{sampleRate: 48000, channels: tt.channels, samples: tt.samples},
				sampleRate: 48000,
				channels:   tt.channels,
			}

			var got []float32
			buf := make([]float32, tt.bufLen)
			for {
				n, err := s.ReadSamples(buf)
				if n%tt.channels != 0 {
					t.Fatalf("ReadSamples() n = %d, not a whole frame", n)
				}
				got = append(got, buf[:n]...)
				if err == io.EOF {
					break
				}
				if err != nil {
					t.Fatalf("ReadSamples() error = %v", err)
				}
			}

			if len(got) != len(want) {
				t.Fatalf("read %d samples, want %d", len(got), len(want))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestSource_Error(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	s := &source{dec: &mockOggVorbisReader{channels: 1, err: boom}, channels: 1}
	if _, err := s.ReadSamples(make([]float32, 4)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want boom", err)
	}
}

func TestSource_TooSmallDst(t *testing.T) {
	t.Parallel()

	s := &source{dec: &mockOggVorbisReader{channels: 2, samples: []float32{1, 1}}, channels: 2}
	if n, err := s.ReadSamples(make([]float32, 1)); n != 0 || err != nil {
		t.Errorf("ReadSamples(len 1) = (%d, %v), want (0, nil)", n, err)
	}
}
