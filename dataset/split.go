// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
)

// Ratios are the relative sizes of the three partitions. They need not sum
// to one.
type Ratios struct {
	Train float64
	Val   float64
	Test  float64
}

func DefaultRatios() Ratios {
	return Ratios{Train: 0.7, Val: 0.15, Test: 0.15}
}

func (r Ratios) Validate() error {
	if r.Train < 0 || r.Val < 0 || r.Test < 0 || r.Train+r.Val+r.Test <= 0 {
		return fmt.Errorf("%w: %+v", ErrInvalidRatios, r)
	}

	return nil
}

type Splits struct {
	Train []Record
	Val   []Record
	Test  []Record
}

// Split partitions recs per label. Records sharing an OriginalPath, i.e. a
// file and its augmented copies, always land in the same partition. The
// result depends only on recs and seed.
func Split(recs []Record, r Ratios, seed uint64) (Splits, error) {
	if err := r.Validate(); err != nil {
		return Splits{}, err
	}
	total := r.Train + r.Val + r.Test

	groups := make(map[string][]Record)
	byLabel := make(map[Label][]string)
	for _, rec := range recs {
		if _, ok := groups[rec.OriginalPath]; !ok {
			byLabel[rec.Label] = append(byLabel[rec.Label], rec.OriginalPath)
		}
		groups[rec.OriginalPath] = append(groups[rec.OriginalPath], rec)
	}

	labels := make([]Label, 0, len(byLabel))
	for l := range byLabel {
		labels = append(labels, l)
	}
	slices.Sort(labels)

	var out Splits
	for _, l := range labels {
		keys := byLabel[l]
		slices.Sort(keys)

		rng := rand.New(rand.NewPCG(seed, uint64(l)))
		rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })

		n := float64(len(keys))
		nTrain := int(math.Round(n * r.Train / total))
		nVal := min(int(math.Round(n*r.Val/total)), len(keys)-nTrain)

		for i, k := range keys {
			switch {
			case i < nTrain:
				out.Train = append(out.Train, groups[k]...)
			case i < nTrain+nVal:
				out.Val = append(out.Val, groups[k]...)
			default:
				out.Test = append(out.Test, groups[k]...)
			}
		}
	}

	sortRecords(out.Train)
	sortRecords(out.Val)
	sortRecords(out.Test)

	return out, nil
}
