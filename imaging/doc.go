// SPDX-License-Identifier: EPL-2.0

// Package imaging turns a spectrogram matrix into a fixed-size RGB image.
//
// Format is deterministic:
//
//  1. a matrix whose width differs from its height by more than
//     SquareTolerance of the height is resized bilinearly to a square
//  2. values are scaled by the matrix's own range into 0..255 and truncated
//  3. the gray image is resized to Size x Size with golang.org/x/image/draw
//  4. each pixel is looked up in the jet palette
//
// The output is always Size x Size x 3 in RGB order.
package imaging
