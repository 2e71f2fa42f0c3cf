// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"slices"
	"sync"
	"testing"
)

type stubDecoder struct{ name string }

func (stubDecoder) Decode(io.Reader) (Source, error) { return nil, nil }

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register("wav", stubDecoder{"wav"})
	reg.Register(".FLAC", stubDecoder{"flac"})

	tests := []struct {
		path    string
		want    string
		wantErr error
	}{
		{path: "a/b/voice.wav", want: "wav"},
		{path: "VOICE.WAV", want: "wav"},
		{path: "clip.flac", want: "flac"},
		{path: "clip.Flac", want: "flac"},
		{path: "notes.txt", wantErr: ErrUnsupportedFormat},
		{path: "noext", wantErr: ErrUnsupportedFormat},
		{path: "", wantErr: ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			d, err := reg.Lookup(tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Lookup(%q) error = %v, want %v", tt.path, err, tt.wantErr)
				}
				if reg.Supports(tt.path) {
					t.Errorf("Supports(%q) = true, want false", tt.path)
				}
				return
			}
			if err != nil {
				t.Fatalf("Lookup(%q) error = %v", tt.path, err)
			}
			if got := d.(stubDecoder).name; got != tt.want {
				t.Errorf("Lookup(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestRegistry_RegisterOverrides(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register("wav", stubDecoder{"first"})
	reg.Register("WAV", stubDecoder{"second"})

	d, ok := reg.Get("wav")
	if !ok {
		t.Fatal("Get(wav) not found")
	}
	if d.(stubDecoder).name != "second" {
		t.Errorf("Get(wav) = %v, want second", d)
	}
}

func TestRegistry_Formats(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	for _, f := range []string{"ogg", "wav", ".mp3", "aiff"} {
		reg.Register(f, stubDecoder{f})
	}

	want := []string{"aiff", "mp3", "ogg", "wav"}
	if got := reg.Formats(); !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				reg.Register("wav", stubDecoder{"wav"})
				return
			}
			_ = reg.Supports("x.wav")
		}()
	}
	wg.Wait()

	if !reg.Supports("x.wav") {
		t.Error("Supports(x.wav) = false after registration")
	}
}

func TestErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{ErrInvalidDstSize, "dst size must be multiple of channels"},
		{ErrUnsupportedFormat, ErrUnsupportedFormat.Error()},
		{ErrInvalidSampleRate, ErrInvalidSampleRate.Error()},
	}

	for _, tt := range tests {
		if tt.err == nil {
			t.Fatal("sentinel error is nil")
		}
		if tt.err.Error() != tt.want {
			t.Errorf("%v.Error() = %q, want %q", tt.err, tt.err.Error(), tt.want)
		}
	}
}
