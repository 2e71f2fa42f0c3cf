// SPDX-License-Identifier: EPL-2.0

// Package utils holds the small numeric helpers shared by the audio and
// augmentation packages: Catmull-Rom interpolation for resampling and
// float to 16-bit PCM conversion for the WAV writer.
package utils

// Float is the set of sample types the helpers accept.
type Float interface {
	~float32 | ~float64
}
