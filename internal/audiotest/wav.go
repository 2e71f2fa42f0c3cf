// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/pdspec/audio"
	"github.com/ik5/pdspec/formats/wav"
)

// WriteWAV stores mono samples as a 16-bit WAV file in dir and returns
// the path.
func WriteWAV(tb testing.TB, dir, name string, sampleRate int, samples []float64) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	if err := wav.WriteFile(path, audio.Waveform{Samples: samples, SampleRate: sampleRate}); err != nil {
		tb.Fatalf("writing %s: %v", path, err)
	}

	return path
}

// WriteInterleavedWAV stores interleaved multi-channel samples as 16-bit WAV.
func WriteInterleavedWAV(tb testing.TB, dir, name string, sampleRate, channels int, samples []float32) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		tb.Fatal(err)
	}
	defer f.Close()

	if err := wav.Encode(f, sampleRate, channels, samples); err != nil {
		tb.Fatalf("writing %s: %v", path, err)
	}

	return path
}

// WriteFile stores raw bytes, typically a deliberately corrupt input.
func WriteFile(tb testing.TB, dir, name string, data []byte) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tb.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatal(err)
	}

	return path
}
