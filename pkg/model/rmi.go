package model

import (
	"slices"

	"learnsort/pkg/common"
)

// RMI is a two-layer recursive model index over the empirical CDF of the
// keys. The root segment maps a key to a leaf index; the selected leaf maps
// the key to a predicted CDF value in [0,1].
//
// Trained is false when the training sample had too few distinct values to
// fit one leaf per region; callers must fall back to a comparison sort then.
type RMI[K common.Key] struct {
	Trained        bool
	Root           LinearSegment
	Leaves         []LinearSegment
	TrainingSample []K // sorted ascending; kept for repeated-key detection
	Params         Params
}

// Train builds a CDF model from a regular-stride sample of keys using linear
// spline interpolation. Invalid hyperparameters are repaired first. The
// returned model is marked untrained when the sample holds fewer than two
// distinct values per leaf.
func Train[K common.Key](keys []K, p *Params) *RMI[K] {
	n := len(keys)
	if p == nil {
		p = NewParams()
	}
	p.Validate(n)

	numLeaves := p.Arch[1]
	rmi := &RMI[K]{
		Leaves: make([]LinearSegment, numLeaves),
		Params: *p,
	}
	if n == 0 {
		return rmi
	}

	// Sample at a regular stride. The floor keeps the sample large enough to
	// expose repeated keys even at low sampling rates.
	sampleSize := min(n, max(int(p.SamplingRate*float64(n)), MinSortingSize))
	stride := n / sampleSize
	if stride < 1 {
		stride = 1
	}
	rmi.TrainingSample = make([]K, 0, n/stride+1)
	for i := 0; i < n; i += stride {
		rmi.TrainingSample = append(rmi.TrainingSample, keys[i])
	}
	slices.Sort(rmi.TrainingSample)

	sample := rmi.TrainingSample
	distinct := 1
	for i := 1; i < len(sample); i++ {
		if sample[i] != sample[i-1] {
			distinct++
		}
	}

	// Each leaf needs at least two distinct training examples.
	if distinct < 2*numLeaves {
		return rmi
	}

	// Root: interpolate min->0 and max->1 over the sample, then rescale the
	// output into leaf index space [0, numLeaves-1].
	minX := float64(sample[0])
	maxX := float64(sample[len(sample)-1])
	slope := 1 / (maxX - minX)
	intercept := -slope * minX
	rmi.Root = LinearSegment{
		Slope:     slope * float64(numLeaves-1),
		Intercept: intercept * float64(numLeaves-1),
	}

	// Partition the sample into leaf buckets by root prediction.
	leafData := make([][]trainingPoint, numLeaves)
	sz := float64(len(sample))
	for i, k := range sample {
		tp := trainingPoint{x: float64(k), y: float64(i) / sz}
		rank := clampIndex(rmi.Root.Predict(tp.x), numLeaves)
		leafData[rank] = append(leafData[rank], tp)
	}

	// Fit each leaf. Empty buckets are repaired with a flat segment anchored
	// at the previous leaf's trailing point, and a synthetic copy of that
	// point is appended so runs of empty leaves stay monotone.
	for j := 0; j < numLeaves; j++ {
		data := leafData[j]
		switch {
		case j == 0:
			if len(data) < 2 {
				rmi.Leaves[j] = LinearSegment{}
				leafData[j] = append(leafData[j], trainingPoint{})
			} else {
				// Treat the leading point as if its CDF were exactly zero.
				lo := data[0]
				hi := data[len(data)-1]
				slope := hi.y / (hi.x - lo.x)
				rmi.Leaves[j] = LinearSegment{Slope: slope, Intercept: lo.y - slope*lo.x}
			}
		case j == numLeaves-1:
			if len(data) == 0 {
				rmi.Leaves[j] = LinearSegment{Slope: 0, Intercept: 1}
			} else {
				prev := leafData[j-1][len(leafData[j-1])-1]
				hi := data[len(data)-1]
				rmi.Leaves[j] = interpolate(prev, trainingPoint{x: hi.x, y: 1})
			}
		default:
			prev := leafData[j-1][len(leafData[j-1])-1]
			if len(data) == 0 {
				rmi.Leaves[j] = LinearSegment{Slope: 0, Intercept: prev.y}
				leafData[j] = append(leafData[j], prev)
			} else {
				rmi.Leaves[j] = interpolate(prev, data[len(data)-1])
			}
		}
	}

	rmi.Trained = true
	return rmi
}

// LeafIndex routes a key (already cast to float64) to its leaf segment.
func (r *RMI[K]) LeafIndex(x float64) int {
	return clampIndex(r.Root.Predict(x), len(r.Leaves))
}

// CDF runs the full two-layer prediction for a key, clamped into [0,1].
func (r *RMI[K]) CDF(k K) float64 {
	x := float64(k)
	v := r.Leaves[r.LeafIndex(x)].Predict(x)
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// clampIndex clamps v into [0, n-1] and truncates to an integer index.
func clampIndex(v float64, n int) int {
	if v < 0 {
		return 0
	}
	if m := float64(n - 1); v > m {
		return n - 1
	}
	return int(v)
}
