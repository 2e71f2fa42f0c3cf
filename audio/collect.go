// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// Collect drains src and returns every interleaved sample it produced.
func Collect(src Source, bufferSize int) ([]float32, error) {
	if bufferSize <= 0 {
		bufferSize = max(src.BufSize(), 4096)
	}
	bufferSize -= bufferSize % max(1, src.Channels())
	if bufferSize == 0 {
		bufferSize = src.Channels()
	}

	out := make([]float32, 0, bufferSize)
	buf := make([]float32, bufferSize)

	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)

		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("collecting samples: %w", err)
		}
	}
}

// ReadWaveform downmixes src to mono, resamples it to targetRate when the
// rates differ and returns the whole signal.
//
// The pipeline is:
//  1. MonoMixer averages the channels
//  2. Resampler converts to targetRate (skipped when already there)
//  3. Collect reads everything and widens to float64
func ReadWaveform(src Source, targetRate int) (Waveform, error) {
	if targetRate <= 0 || src.SampleRate() <= 0 {
		return Waveform{}, ErrInvalidSampleRate
	}

	var stream Source = NewMonoMixer(src)
	if src.SampleRate() != targetRate {
		stream = NewResampler(stream, targetRate)
	}

	raw, err := Collect(stream, 4096)
	if err != nil {
		return Waveform{}, err
	}

	samples := make([]float64, len(raw))
	for i, v := range raw {
		samples[i] = float64(v)
	}

	return Waveform{Samples: samples, SampleRate: targetRate}, nil
}
