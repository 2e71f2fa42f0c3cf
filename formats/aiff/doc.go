// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files through github.com/go-audio/aiff.
//
// Integer PCM at 8, 16, 24 or 32 bits is accepted. The go-audio decoder
// needs to seek, so readers that are not an io.ReadSeeker are buffered in
// memory first.
package aiff
