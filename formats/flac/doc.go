// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC files with github.com/mewkiz/flac.
//
// Frames are decoded one at a time and interleaved into float32 samples
// scaled by the stream's bit depth.
package flac
