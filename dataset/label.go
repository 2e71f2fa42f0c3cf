// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Label is the class of a recording.
type Label int

const (
	Control    Label = 0
	Parkinsons Label = 1
)

func (l Label) String() string {
	switch l {
	case Control:
		return "control"
	case Parkinsons:
		return "parkinsons"
	}

	return "Label(" + strconv.Itoa(int(l)) + ")"
}

// Prefix is prepended to output file names.
func (l Label) Prefix() string {
	if l == Parkinsons {
		return "pd_"
	}

	return "control_"
}

// ParseLabel accepts the label names used in configuration files.
func ParseLabel(s string) (Label, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "control", "hc", "healthy", "0":
		return Control, nil
	case "pd", "parkinsons", "parkinson", "1":
		return Parkinsons, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownLabel, s)
}

// OutputPath names the image for src. Variant 0 is the plain rendering;
// variant k > 0 is the k-th augmented copy.
func OutputPath(dir, src string, label Label, variant int) string {
	base := filepath.Base(src)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	name := label.Prefix() + stem
	if variant > 0 {
		name += "_aug" + strconv.Itoa(variant)
	}

	return filepath.Join(dir, name+".png")
}
