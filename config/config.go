// SPDX-License-Identifier: EPL-2.0

// Package config loads the settings of a dataset build.
//
// Values are resolved in three layers: built-in defaults, then the YAML
// file, then environment variables. A missing file is not an error.
// Signal-processing parameters are not configurable here; every stage uses
// its DefaultConfig.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ik5/pdspec/dataset"
	"github.com/ik5/pdspec/internal/logging"
)

var ErrInvalid = errors.New("invalid configuration")

// Environment variables that override the file.
const (
	EnvOutputDir = "PDSPEC_OUTPUT_DIR"
	EnvWorkers   = "PDSPEC_WORKERS"
	EnvLogLevel  = "PDSPEC_LOG_LEVEL"
	EnvSeed      = "PDSPEC_SEED"
)

type Input struct {
	Dir   string `yaml:"dir"`
	Label string `yaml:"label"`
}

type Split struct {
	Train float64 `yaml:"train"`
	Val   float64 `yaml:"val"`
	Test  float64 `yaml:"test"`
}

type Cache struct {
	// Backend is file, badger or none.
	Backend string `yaml:"backend"`
	// Dir holds the badger database.
	Dir string `yaml:"dir"`
}

type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type Config struct {
	Inputs          []Input `yaml:"inputs"`
	OutputDir       string  `yaml:"output_dir"`
	MetadataDir     string  `yaml:"metadata_dir"`
	MetadataFormat  string  `yaml:"metadata_format"`
	Workers         int     `yaml:"workers"`
	Seed            uint64  `yaml:"seed"`
	AugmentedCopies int     `yaml:"augmented_copies"`
	Split           Split   `yaml:"split"`
	Cache           Cache   `yaml:"cache"`
	Log             Log     `yaml:"log"`
}

func Default() Config {
	return Config{
		OutputDir:      "spectrograms",
		MetadataDir:    "metadata",
		MetadataFormat: string(dataset.FormatCSV),
		Seed:           42,
		Split:          Split{Train: 0.7, Val: 0.15, Test: 0.15},
		Cache:          Cache{Backend: "file"},
		Log:            Log{Level: "info"},
	}
}

// Load resolves the configuration for path. It does not validate.
func Load(path string) (Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return cfg, fmt.Errorf("read %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvOutputDir); ok && v != "" {
		c.OutputDir = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvWorkers); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalid, EnvWorkers, v, err)
		}
		c.Workers = n
	}
	if v, ok := lookup(EnvSeed); ok && v != "" {
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalid, EnvSeed, v, err)
		}
		c.Seed = n
	}

	return nil
}

// Validate reports every problem found, joined.
func (c Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if len(c.Inputs) == 0 {
		invalid("no inputs")
	}
	for i, in := range c.Inputs {
		if in.Dir == "" {
			invalid("inputs[%d]: empty dir", i)
		}
		if _, err := dataset.ParseLabel(in.Label); err != nil {
			invalid("inputs[%d]: %v", i, err)
		}
	}
	if c.OutputDir == "" {
		invalid("empty output_dir")
	}
	if _, err := dataset.ParseFormat(c.MetadataFormat); err != nil {
		invalid("metadata_format: %v", err)
	}
	if c.Workers < 0 {
		invalid("workers %d < 0", c.Workers)
	}
	if c.AugmentedCopies < 0 {
		invalid("augmented_copies %d < 0", c.AugmentedCopies)
	}
	if err := c.Ratios().Validate(); err != nil {
		invalid("split: %v", err)
	}
	switch c.Cache.Backend {
	case "file", "none":
	case "badger":
		if c.Cache.Dir == "" {
			invalid("cache.dir is required for the badger backend")
		}
	default:
		invalid("unknown cache backend %q", c.Cache.Backend)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		invalid("log.level: %v", err)
	}

	return errors.Join(errs...)
}

func (c Config) Ratios() dataset.Ratios {
	return dataset.Ratios{Train: c.Split.Train, Val: c.Split.Val, Test: c.Split.Test}
}

// DatasetInputs converts the configured inputs.
func (c Config) DatasetInputs() ([]dataset.Input, error) {
	out := make([]dataset.Input, 0, len(c.Inputs))
	for _, in := range c.Inputs {
		l, err := dataset.ParseLabel(in.Label)
		if err != nil {
			return nil, err
		}
		out = append(out, dataset.Input{Dir: in.Dir, Label: l})
	}

	return out, nil
}
