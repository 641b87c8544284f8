package core

import (
	"slices"

	"learnsort/pkg/common"
	"learnsort/pkg/model"
	"learnsort/pkg/monitor"
)

var stats = monitor.NewSortStats()

// Stats exposes the engine's run counters.
func Stats() *monitor.SortStats {
	return stats
}

// Sort sorts keys in place in ascending order using the default
// hyperparameters.
func Sort[K common.Key](keys []K) {
	SortWithParams(keys, model.NewParams())
}

// SortWithParams sorts keys in place in ascending order. Invalid fields in p
// are repaired to their defaults before training. Inputs too small to
// benefit from learned placement, and inputs whose sample cannot train the
// model, are handed to the fallback comparison sort.
func SortWithParams[K common.Key](keys []K, p *model.Params) {
	if p == nil {
		p = model.NewParams()
	}

	if len(keys) <= dispatchThreshold(p) {
		stats.RecordFallback()
		slices.Sort(keys)
		return
	}

	rmi := model.Train(keys, p)
	if !rmi.Trained {
		stats.RecordFallback()
		slices.Sort(keys)
		return
	}

	sortTrained(keys, rmi)
	stats.RecordSort()
}

// dispatchThreshold is the input size at or below which the learned path
// cannot win over a plain comparison sort. It is computed from the raw
// hyperparameters; they are only repaired once the learned path is taken.
func dispatchThreshold(p *model.Params) int {
	numLeaves := model.DefaultNumLeaves
	if len(p.Arch) == 2 && p.Arch[1] > 0 {
		numLeaves = p.Arch[1]
	}
	return max(p.Fanout*p.Threshold, 5*numLeaves)
}
