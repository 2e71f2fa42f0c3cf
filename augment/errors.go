// SPDX-License-Identifier: EPL-2.0

package augment

import "errors"

var (
	ErrExcluded    = errors.New("implementation excluded")
	ErrProbeFailed = errors.New("capability probe failed")
)
