// SPDX-License-Identifier: EPL-2.0

package utils

// FloatToInt16 converts a sample in [-1, 1] to signed 16-bit PCM.
// Values outside the range are clamped.
func FloatToInt16[T Float](x T) int16 {
	switch {
	case x > 1:
		x = 1
	case x < -1:
		x = -1
	}

	return int16(x * 32767.0)
}
