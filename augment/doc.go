// SPDX-License-Identifier: EPL-2.0

// Package augment randomizes training inputs in the waveform and the
// spectrogram domain.
//
// WaveAugmenter applies, each with its own probability and in this order,
// Gaussian noise, time stretch, pitch shift and gain. The chain is chosen
// once in NewWaveAugmenter from a static catalog of versioned effect
// descriptors: for every effect the newest implementation whose capability
// probe passes is used, and an effect with no usable implementation is
// left out and logged. Augment itself never fails.
//
// SpecAugmenter masks random frequency bands and time spans of a
// spectrogram with the spectrogram's own minimum.
//
// Neither type keeps per-call state; randomness comes only from the
// *rand.Rand passed to Augment, so one augmenter can serve many goroutines
// as long as each has its own generator.
package augment
