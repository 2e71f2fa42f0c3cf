// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"cmp"
	"slices"
)

// Record describes one image written by the builder.
type Record struct {
	// Filename is the base name of the source recording.
	Filename        string
	SpectrogramPath string
	Label           Label
	OriginalPath    string
}

// Skip is a source file the builder could not process.
type Skip struct {
	Path  string
	Label Label
	Err   error
}

func sortRecords(recs []Record) {
	slices.SortFunc(recs, func(a, b Record) int {
		return cmp.Compare(a.SpectrogramPath, b.SpectrogramPath)
	})
}
