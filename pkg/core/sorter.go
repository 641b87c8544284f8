package core

import (
	"slices"

	"learnsort/pkg/common"
	"learnsort/pkg/model"
)

// sortTrained sorts keys in place using a trained CDF model: keys are placed
// into major buckets by predicted CDF, each major bucket is subdivided into
// minor buckets, each minor bucket is arranged with a model-based counting
// sort and finished with an insertion-sort touch-up. Keys that overflow a
// bucket go to the spill bucket; keys flagged as heavily repeated bypass
// bucketization. Both are merged back at the end.
func sortTrained[K common.Key](keys []K, rmi *model.RMI[K]) {
	n := len(keys)

	batchSize := rmi.Params.BatchSize
	oaRatio := rmi.Params.OverallocRatio
	fanout := rmi.Params.Fanout
	threshold := rmi.Params.Threshold
	numLeaves := rmi.Params.Arch[1]

	majorCap := n / fanout

	// Cache the model weights: the bucketization loops below are the hot
	// path and must not chase pointers per key.
	rootSlope := rmi.Root.Slope
	rootIntercept := rmi.Root.Intercept
	slopes := make([]float64, numLeaves)
	intercepts := make([]float64, numLeaves)
	for i, leaf := range rmi.Leaves {
		slopes[i] = leaf.Slope
		intercepts[i] = leaf.Intercept
	}
	maxLeaf := float64(numLeaves - 1)
	maxMajor := float64(fanout - 1)

	var spill []K
	major := make([]K, n+1)
	majorSizes := make([]int, fanout)

	repKeys := detectRepeatedKeys(rmi.TrainingSample, numLeaves)
	numRep := 0

	// Major bucketization. The repeated-key lookup is hoisted out of the
	// common path: with no flagged keys the inner loop stays branch-light.
	if repKeys.len() == 0 {
		for _, k := range keys {
			x := float64(k)
			leaf := clampIdx(rootSlope*x+rootIntercept, maxLeaf)
			cdf := slopes[leaf]*x + intercepts[leaf]
			b := clampIdx(cdf*float64(fanout), maxMajor)
			if majorSizes[b] < majorCap {
				major[majorCap*b+majorSizes[b]] = k
				majorSizes[b]++
			} else {
				spill = append(spill, k)
			}
		}
	} else {
		for _, k := range keys {
			if repKeys.hit(k) {
				numRep++
				continue
			}
			x := float64(k)
			leaf := clampIdx(rootSlope*x+rootIntercept, maxLeaf)
			cdf := slopes[leaf]*x + intercepts[leaf]
			b := clampIdx(cdf*float64(fanout), maxMajor)
			if majorSizes[b] < majorCap {
				major[majorCap*b+majorSizes[b]] = k
				majorSizes[b]++
			} else {
				spill = append(spill, k)
			}
		}
	}

	// Minor bucket geometry. Over-allocating minor buckets keeps the
	// per-bucket load below the counting-sort threshold on average.
	numMinor := int(float64(majorCap) * oaRatio / float64(threshold))
	if numMinor < 1 {
		numMinor = 1
	}
	totMinor := numMinor * fanout
	maxMinor := float64(numMinor - 1)
	maxPos := float64(threshold - 1)

	minor := make([]K, numMinor*threshold)
	minorSizes := make([]int, numMinor)
	predCache := make([]int, threshold)
	batchCache := make([]int, batchSize)
	hist := make([]int, threshold)

	numPlaced := 0

	for j := 0; j < fanout; j++ {
		offset := j * majorCap
		for i := range minorSizes {
			minorSizes[i] = 0
		}

		// Scatter the major bucket into minor buckets, in batches: predict
		// a block of indices first, then place the block.
		numBatches := majorSizes[j] / batchSize
		for batch := 0; batch < numBatches; batch++ {
			for e := 0; e < batchSize; e++ {
				x := float64(major[offset+e])
				leaf := clampIdx(rootSlope*x+rootIntercept, maxLeaf)
				cdf := slopes[leaf]*x + intercepts[leaf]
				batchCache[e] = clampIdx(cdf*float64(totMinor)-float64(j*numMinor), maxMinor)
			}
			for e := 0; e < batchSize; e++ {
				k := major[offset+e]
				mb := batchCache[e]
				if minorSizes[mb] < threshold {
					minor[threshold*mb+minorSizes[mb]] = k
					minorSizes[mb]++
				} else {
					spill = append(spill, k)
				}
			}
			offset += batchSize
		}

		// Tail of the bucket when its size is not divisible by the batch
		// size.
		rem := majorSizes[j] - numBatches*batchSize
		for e := 0; e < rem; e++ {
			x := float64(major[offset+e])
			leaf := clampIdx(rootSlope*x+rootIntercept, maxLeaf)
			cdf := slopes[leaf]*x + intercepts[leaf]
			batchCache[e] = clampIdx(cdf*float64(totMinor)-float64(j*numMinor), maxMinor)
		}
		for e := 0; e < rem; e++ {
			k := major[offset+e]
			mb := batchCache[e]
			if minorSizes[mb] < threshold {
				minor[threshold*mb+minorSizes[mb]] = k
				minorSizes[mb]++
			} else {
				spill = append(spill, k)
			}
		}

		// Model-based counting sort over each minor bucket. Output is
		// written back into the major buffer, left-compacted; regions
		// already read into minor buckets are free to overwrite.
		for mb := 0; mb < numMinor; mb++ {
			sz := minorSizes[mb]
			if sz == 0 {
				continue
			}

			base := (j*numMinor + mb) * n / totMinor
			for i := 0; i < threshold; i++ {
				hist[i] = 0
			}

			// If the first and last key of the bucket (in arrival order)
			// route to the same leaf, that leaf is used for every key and the
			// root layer is skipped. Keys that would route to another leaf
			// may get a poorer position; the touch-up pass corrects it.
			first := clampIdx(rootSlope*float64(minor[mb*threshold])+rootIntercept, maxLeaf)
			last := clampIdx(rootSlope*float64(minor[mb*threshold+sz-1])+rootIntercept, maxLeaf)

			if first == last {
				for e := 0; e < sz; e++ {
					x := float64(minor[mb*threshold+e])
					cdf := slopes[first]*x + intercepts[first]
					p := clampIdx(cdf*float64(n)-float64(base), maxPos)
					predCache[e] = p
					hist[p]++
				}
			} else {
				for e := 0; e < sz; e++ {
					x := float64(minor[mb*threshold+e])
					leaf := clampIdx(rootSlope*x+rootIntercept, maxLeaf)
					cdf := slopes[leaf]*x + intercepts[leaf]
					p := clampIdx(cdf*float64(n)-float64(base), maxPos)
					predCache[e] = p
					hist[p]++
				}
			}

			// Turn the histogram into running write indices. The leading
			// decrement makes hist[p] the top slot of region p, so the
			// scatter below writes then decrements.
			hist[0]--
			for i := 1; i < threshold; i++ {
				hist[i] += hist[i-1]
			}

			for e := 0; e < sz; e++ {
				p := predCache[e]
				major[numPlaced+hist[p]] = minor[mb*threshold+e]
				hist[p]--
			}

			// Touch-up: the scatter leaves keys at most a few slots from
			// their final position. The walk-back may cross into earlier
			// regions, which are already sorted.
			for e := 0; e < sz; e++ {
				k := major[numPlaced+e]
				c := numPlaced + e - 1
				for c >= 0 && k < major[c] {
					major[c+1] = major[c]
					c--
				}
				major[c+1] = k
			}

			numPlaced += sz
		}
	}

	// Sort the spill bucket and merge it with the placed keys into the tail
	// of the input, reserving the leading slots for the repeated keys.
	slices.Sort(spill)
	mergeInto(major[:numPlaced], spill, keys[numRep:])

	stats.RecordSpilled(len(spill))

	// Splat the repeated keys back in key order.
	if repKeys.len() > 0 {
		stats.RecordRepeated(numRep)
		mergeRepeated(keys, repKeys.ordered(), numRep)
	}
}

// mergeInto merges two sorted slices into out, which must have length at
// least len(a)+len(b).
func mergeInto[K common.Key](a, b, out []K) {
	i, j, w := 0, 0, 0
	for i < len(a) && j < len(b) {
		if b[j] < a[i] {
			out[w] = b[j]
			j++
		} else {
			out[w] = a[i]
			i++
		}
		w++
	}
	for i < len(a) {
		out[w] = a[i]
		i++
		w++
	}
	for j < len(b) {
		out[w] = b[j]
		j++
		w++
	}
}

// mergeRepeated sweeps the merged region keys[numRep:] left into its final
// position, splatting each repeated key count times at its sorted rank. The
// write index never overtakes the read index, so the sweep is safe in place.
func mergeRepeated[K common.Key](keys []K, rep []repKey[K], numRep int) {
	n := len(keys)
	inputIdx := numRep
	writeIdx := 0
	ri := 0

	for inputIdx < n && ri < len(rep) {
		if keys[inputIdx] < rep[ri].Key {
			keys[writeIdx] = keys[inputIdx]
			writeIdx++
			inputIdx++
		} else {
			for i := 0; i < rep[ri].Count; i++ {
				keys[writeIdx+i] = rep[ri].Key
			}
			writeIdx += rep[ri].Count
			ri++
		}
	}

	for ri < len(rep) {
		for i := 0; i < rep[ri].Count; i++ {
			keys[writeIdx+i] = rep[ri].Key
		}
		writeIdx += rep[ri].Count
		ri++
	}

	for inputIdx < n {
		keys[writeIdx] = keys[inputIdx]
		writeIdx++
		inputIdx++
	}
}

// clampIdx clamps v into [0, max] and truncates to an integer index.
func clampIdx(v, max float64) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return int(max)
	}
	return int(v)
}
