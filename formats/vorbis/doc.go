// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files with github.com/jfreymuth/oggvorbis.
//
// The decoder already produces float32 samples, so ReadSamples hands dst
// straight to it.
package vorbis
