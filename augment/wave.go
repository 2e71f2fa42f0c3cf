// SPDX-License-Identifier: EPL-2.0

package augment

import (
	"math/rand/v2"
	"strings"

	"go.uber.org/zap"

	"github.com/ik5/pdspec/audio"
)

type stage struct {
	descriptor  Descriptor
	probability float64
	effect      Effect
}

// WaveAugmenter applies a fixed chain of randomized waveform effects.
type WaveAugmenter struct {
	cfg      WaveConfig
	chain    []stage
	dropped  []string
	log      *zap.Logger
	excluded map[string]bool
	catalog  []Descriptor
}

type WaveOption func(*WaveAugmenter)

// WithLogger sets the logger that reports degraded effects.
func WithLogger(log *zap.Logger) WaveOption {
	return func(a *WaveAugmenter) {
		if log != nil {
			a.log = log
		}
	}
}

// WithExcluded marks implementations as unavailable. An id is either an
// effect name, which excludes every version, or name@vN.
func WithExcluded(ids ...string) WaveOption {
	return func(a *WaveAugmenter) {
		for _, id := range ids {
			a.excluded[strings.TrimSpace(id)] = true
		}
	}
}

// withCatalog replaces the descriptor catalog.
func withCatalog(c []Descriptor) WaveOption {
	return func(a *WaveAugmenter) {
		a.catalog = c
	}
}

// NewWaveAugmenter picks, for every effect, the newest implementation that
// is not excluded and whose probe passes. Effects left without one are
// dropped and logged at warn level.
func NewWaveAugmenter(cfg WaveConfig, opts ...WaveOption) *WaveAugmenter {
	a := &WaveAugmenter{
		cfg:      cfg,
		log:      zap.NewNop(),
		excluded: make(map[string]bool),
		catalog:  Catalog(),
	}
	for _, opt := range opts {
		opt(a)
	}

	for _, name := range chainOrder {
		a.selectEffect(name)
	}

	return a
}

func (a *WaveAugmenter) probability(name string) float64 {
	switch name {
	case EffectNoise:
		return a.cfg.Noise.Probability
	case EffectTimeStretch:
		return a.cfg.Stretch.Probability
	case EffectPitchShift:
		return a.cfg.Pitch.Probability
	case EffectGain:
		return a.cfg.Gain.Probability
	}

	return 0
}

func (a *WaveAugmenter) selectEffect(name string) {
	var reasons []string
	best := -1
	for i, d := range a.catalog {
		if d.Name != name {
			continue
		}
		if a.excluded[d.Name] || a.excluded[d.ID()] {
			reasons = append(reasons, d.ID()+": "+ErrExcluded.Error())
			continue
		}
		if err := runProbe(d, a.cfg); err != nil {
			reasons = append(reasons, d.ID()+": "+err.Error())
			continue
		}
		if best < 0 || d.Version > a.catalog[best].Version {
			best = i
		}
	}

	if best < 0 {
		a.dropped = append(a.dropped, name)
		a.log.Warn("augmentation effect unavailable",
			zap.String("effect", name),
			zap.Strings("reasons", reasons),
		)
		return
	}

	d := a.catalog[best]
	if len(reasons) > 0 {
		a.log.Warn("augmentation effect degraded",
			zap.String("effect", name),
			zap.String("using", d.ID()),
			zap.Strings("reasons", reasons),
		)
	}

	a.chain = append(a.chain, stage{
		descriptor:  d,
		probability: a.probability(name),
		effect:      d.New(a.cfg),
	})
}

// Effects returns the ids of the selected implementations in chain order.
func (a *WaveAugmenter) Effects() []string {
	ids := make([]string, len(a.chain))
	for i, s := range a.chain {
		ids[i] = s.descriptor.ID()
	}

	return ids
}

// Dropped returns the names of effects that have no usable implementation.
func (a *WaveAugmenter) Dropped() []string {
	return append([]string(nil), a.dropped...)
}

// Augment returns a randomized copy of w with the same length. The input is
// not modified.
func (a *WaveAugmenter) Augment(w audio.Waveform, rng *rand.Rand) audio.Waveform {
	out := w.Clone()
	if out.Len() == 0 {
		return out
	}

	for _, s := range a.chain {
		if rng.Float64() < s.probability {
			out = s.effect.Apply(out, rng)
		}
	}

	return out
}
