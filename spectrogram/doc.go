// SPDX-License-Identifier: EPL-2.0

// Package spectrogram computes log-power mel spectrograms.
//
// Extract runs a centered STFT (periodic Hann window from go-dsp, FFT from
// gonum), projects the power spectrum onto a Slaney mel filterbank,
// converts to decibels relative to the clip's own peak and drops trailing
// low-energy frames. The result has one row per mel band and one column per
// frame, and its maximum is exactly 0 dB.
//
// Encode and Decode store a matrix compactly as IEEE half-precision values.
package spectrogram
