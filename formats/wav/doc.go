// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes WAV files through github.com/go-audio/wav.
//
// Decoding accepts integer PCM at 16, 24 or 32 bits, any channel count and
// any sample rate. Samples come out as float32 in [-1, 1):
//
//	f, _ := os.Open("voice.wav")
//	src, err := wav.Decoder{}.Decode(f)
//
// Encoding always produces 16-bit PCM. Encode takes interleaved float
// samples and clamps them to [-1, 1]; WriteWAV16 takes raw int16 PCM;
// WriteFile stores an audio.Waveform on disk.
//
// The go-audio encoder seeks back to patch the RIFF sizes, so both writers
// need an io.WriteSeeker such as *os.File.
package wav
