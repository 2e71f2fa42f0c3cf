// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"fmt"
	"os"

	"github.com/ik5/pdspec/audio"
	"github.com/ik5/pdspec/formats/aiff"
	"github.com/ik5/pdspec/formats/flac"
	"github.com/ik5/pdspec/formats/mp3"
	"github.com/ik5/pdspec/formats/vorbis"
	"github.com/ik5/pdspec/formats/wav"
)

// DefaultRegistry returns a registry with every bundled decoder.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("flac", flac.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})

	return reg
}

type Loader struct {
	cfg Config
	reg *audio.Registry
}

type Option func(*Loader)

// WithRegistry replaces the default decoder registry.
func WithRegistry(reg *audio.Registry) Option {
	return func(l *Loader) { l.reg = reg }
}

func New(cfg Config, opts ...Option) *Loader {
	l := &Loader{cfg: cfg}
	for _, opt := range opts {
		opt(l)
	}
	if l.reg == nil {
		l.reg = DefaultRegistry()
	}

	return l
}

func (l *Loader) Config() Config            { return l.cfg }
func (l *Loader) Registry() *audio.Registry { return l.reg }

// Supports reports whether path has an extension the loader can decode.
func (l *Loader) Supports(path string) bool { return l.reg.Supports(path) }

// Load decodes path and prepares it. Every failure is a *LoadError.
func (l *Loader) Load(path string) (audio.Waveform, error) {
	w, err := l.decode(path)
	if err != nil {
		return audio.Waveform{}, &LoadError{Path: path, Err: err}
	}

	return l.Prepare(w), nil
}

func (l *Loader) decode(path string) (w audio.Waveform, err error) {
	dec, err := l.reg.Lookup(path)
	if err != nil {
		return w, err
	}

	f, err := os.Open(path)
	if err != nil {
		return w, err
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return w, err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w, err = audio.ReadWaveform(src, l.cfg.SampleRate)
	if err != nil {
		return w, fmt.Errorf("reading samples: %w", err)
	}
	if w.Len() == 0 {
		return w, ErrEmptyAudio
	}

	return w, nil
}

// Prepare applies silence trimming, active region cropping and peak
// normalization to an already decoded waveform.
func (l *Loader) Prepare(w audio.Waveform) audio.Waveform {
	w = TrimSilence(w, l.cfg.TopDB, l.cfg.TrimFrameLength, l.cfg.TrimHopLength)
	w = ActiveRegion(w, l.cfg.FrameLength, l.cfg.HopLength, l.cfg.ActiveRatio)

	return PeakNormalize(w, l.cfg.PeakFloor)
}
