// SPDX-License-Identifier: EPL-2.0

package spectrogram

import "errors"

var (
	ErrBadMagic           = errors.New("not a spectrogram stream")
	ErrUnsupportedVersion = errors.New("unsupported spectrogram stream version")
	ErrInvalidShape       = errors.New("invalid spectrogram shape")
)
