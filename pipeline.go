// SPDX-License-Identifier: EPL-2.0

package pdspec

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/ik5/pdspec/audio"
	"github.com/ik5/pdspec/augment"
	"github.com/ik5/pdspec/imaging"
	"github.com/ik5/pdspec/loader"
	"github.com/ik5/pdspec/spectrogram"
)

// Pipeline converts audio into formatted spectrogram images. It holds no
// per-call state and is safe for concurrent use.
type Pipeline struct {
	loader    *loader.Loader
	extractor *spectrogram.Extractor
	formatter *imaging.Formatter
	wave      *augment.WaveAugmenter
	spec      *augment.SpecAugmenter
	log       *zap.Logger
}

type Option func(*Pipeline)

func WithLoader(l *loader.Loader) Option {
	return func(p *Pipeline) { p.loader = l }
}

func WithExtractor(e *spectrogram.Extractor) Option {
	return func(p *Pipeline) { p.extractor = e }
}

func WithFormatter(f *imaging.Formatter) Option {
	return func(p *Pipeline) { p.formatter = f }
}

func WithWaveAugmenter(a *augment.WaveAugmenter) Option {
	return func(p *Pipeline) { p.wave = a }
}

func WithSpecAugmenter(a *augment.SpecAugmenter) Option {
	return func(p *Pipeline) { p.spec = a }
}

// WithLogger is handed to the default waveform augmenter.
func WithLogger(log *zap.Logger) Option {
	return func(p *Pipeline) {
		if log != nil {
			p.log = log
		}
	}
}

// New builds a pipeline. Stages not set by an option use their default
// configuration; the augmentation chain is built here once.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}

	if p.loader == nil {
		p.loader = loader.New(loader.DefaultConfig())
	}
	if p.extractor == nil {
		p.extractor = spectrogram.New(spectrogram.DefaultConfig())
	}
	if p.formatter == nil {
		p.formatter = imaging.New(imaging.DefaultConfig())
	}
	if p.wave == nil {
		p.wave = augment.NewWaveAugmenter(augment.DefaultWaveConfig(), augment.WithLogger(p.log))
	}
	if p.spec == nil {
		p.spec = augment.NewSpecAugmenter(augment.DefaultSpecConfig())
	}

	return p
}

func (p *Pipeline) Loader() *loader.Loader                { return p.loader }
func (p *Pipeline) Extractor() *spectrogram.Extractor     { return p.extractor }
func (p *Pipeline) Formatter() *imaging.Formatter         { return p.formatter }
func (p *Pipeline) WaveAugmenter() *augment.WaveAugmenter { return p.wave }

// Spectrogram loads path and returns its cropped mel spectrogram.
func (p *Pipeline) Spectrogram(path string) (*mat.Dense, error) {
	w, err := p.loader.Load(path)
	if err != nil {
		return nil, err
	}

	return p.extractor.Extract(w), nil
}

// Process loads path and renders it without augmentation.
func (p *Pipeline) Process(path string) (*imaging.Image, error) {
	w, err := p.loader.Load(path)
	if err != nil {
		return nil, err
	}

	return p.Render(w), nil
}

// ProcessAugmented loads path and renders it with both augmenters.
func (p *Pipeline) ProcessAugmented(path string, rng *rand.Rand) (*imaging.Image, error) {
	if rng == nil {
		return nil, fmt.Errorf("processing %s: %w", path, ErrNilRand)
	}

	w, err := p.loader.Load(path)
	if err != nil {
		return nil, err
	}

	return p.RenderAugmented(w, rng), nil
}

// Render converts an already loaded waveform.
func (p *Pipeline) Render(w audio.Waveform) *imaging.Image {
	return p.formatter.Format(p.extractor.Extract(w))
}

// RenderAugmented converts an already loaded waveform with both augmenters.
func (p *Pipeline) RenderAugmented(w audio.Waveform, rng *rand.Rand) *imaging.Image {
	w = p.wave.Augment(w, rng)
	m := p.spec.Augment(p.extractor.Extract(w), rng)

	return p.formatter.Format(m)
}
