// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"errors"
	"fmt"
)

var ErrEmptyAudio = errors.New("audio contains no samples")

// LoadError reports a file that could not be turned into a waveform.
// Callers processing many files skip it and continue.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
