// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/pdspec/audio"
	"github.com/ik5/pdspec/utils"
)

const chunkFrames = 8192

// Encode writes interleaved float samples in [-1, 1] as 16-bit PCM.
// Values outside the range are clamped.
func Encode(w io.WriteSeeker, sampleRate, channels int, samples []float32) error {
	if channels <= 0 {
		return ErrInvalidChannels
	}

	enc := wav.NewEncoder(w, sampleRate, 16, channels, formatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		SourceBitDepth: 16,
	}

	// The header is emitted by the first Write, so an empty input still
	// goes through one.
	step := chunkFrames * channels
	for i := 0; i == 0 || i < len(samples); i += step {
		chunk := samples[min(i, len(samples)):min(i+step, len(samples))]
		buf.Data = buf.Data[:0]
		for _, s := range chunk {
			buf.Data = append(buf.Data, int(utils.FloatToInt16(s)))
		}

		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("writing wav samples: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}

	return nil
}

// WriteWAV16 writes mono int16 PCM at sampleRate.
func WriteWAV16(w io.WriteSeeker, sampleRate int, samples []int16) error {
	enc := wav.NewEncoder(w, sampleRate, 16, 1, formatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: 16,
		Data:           make([]int, len(samples)),
	}
	for i, s := range samples {
		buf.Data[i] = int(s)
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("writing wav samples: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}

	return nil
}

// WriteFile stores a mono waveform at path as 16-bit PCM.
func WriteFile(path string, w audio.Waveform) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	samples := make([]float32, len(w.Samples))
	for i, s := range w.Samples {
		samples[i] = float32(s)
	}

	return Encode(f, w.SampleRate, 1, samples)
}
