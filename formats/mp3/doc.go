// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III files with github.com/hajimehoshi/go-mp3.
//
// go-mp3 always emits 16-bit stereo, so the Source reports two channels
// even for mono recordings. Downstream code is expected to downmix.
package mp3
