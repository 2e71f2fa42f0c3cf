// SPDX-License-Identifier: EPL-2.0

// Package pdspec turns voice recordings into fixed-size spectrogram images
// for training a classifier that separates Parkinson's speech from control
// speech.
//
// A Pipeline chains four stages:
//
//	loader.Loader          decode, downmix, resample to 16 kHz, trim, normalize
//	spectrogram.Extractor  128-band log-power mel spectrogram, trailing crop
//	imaging.Formatter      square, quantize, resize to 224x224, jet colormap
//	augment                optional waveform effects and spectrogram masks
//
// # Quick Start
//
//	p := pdspec.New()
//	img, err := p.Process("speech.wav")
//	if err != nil {
//	    return err
//	}
//	err = imaging.WritePNG("speech.png", img)
//
// # Augmentation
//
// ProcessAugmented runs the same stages with a randomized waveform effect
// chain before extraction and frequency/time masking after it. All
// randomness comes from the *rand.Rand argument:
//
//	rng := rand.New(rand.NewPCG(42, uint64(i)))
//	img, err := p.ProcessAugmented(path, rng)
//
// The plain path is deterministic: processing the same file twice yields
// identical pixels.
//
// # Formats
//
// WAV, AIFF, FLAC, MP3 and Ogg Vorbis files are decoded by the formats
// subpackages and selected by file extension.
//
// For batch processing over directories see the dataset package and the
// pdspec command.
package pdspec
