// SPDX-License-Identifier: EPL-2.0

package dataset

import "errors"

var (
	ErrUnknownLabel    = errors.New("unknown label")
	ErrUnknownFormat   = errors.New("unknown metadata format")
	ErrInvalidRatios   = errors.New("invalid split ratios")
	ErrNoInputs        = errors.New("no input directories")
	ErrDuplicateOutput = errors.New("output image name already taken")
)
