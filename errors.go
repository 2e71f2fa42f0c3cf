// SPDX-License-Identifier: EPL-2.0

package pdspec

import "errors"

var ErrNilRand = errors.New("augmented processing needs a random source")
