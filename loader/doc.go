// SPDX-License-Identifier: EPL-2.0

// Package loader turns an audio file into a trimmed, peak-normalized
// 16 kHz mono waveform.
//
// Load runs four steps:
//
//  1. decode by extension and convert to mono at the target rate
//  2. TrimSilence drops leading and trailing frames more than TopDB below
//     the loudest frame
//  3. ActiveRegion crops to the frames whose RMS exceeds ActiveRatio of
//     the loudest frame, keeping one frame length of context on each side
//  4. PeakNormalize scales the result so max |x| is 1
//
// A clip with no frame above a threshold is returned as it was; only
// unreadable input is an error, reported as *LoadError.
package loader
