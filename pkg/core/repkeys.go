package core

import (
	"math"

	"github.com/google/btree"

	"learnsort/pkg/common"
	"learnsort/pkg/core/structure"
)

// repKey is a heavily repeated key together with its running occurrence
// count in the input.
type repKey[K common.Key] struct {
	Key   K
	Count int
}

// repKeySet is an ordered key -> count mapping for the keys the training
// sample flagged as heavily repeated. A bloom filter fronts the tree so the
// common case, a key that is not repeated, costs no tree lookup.
type repKeySet[K common.Key] struct {
	tree  *btree.BTreeG[repKey[K]]
	bloom *structure.BloomFilter
}

func newRepKeySet[K common.Key]() *repKeySet[K] {
	return &repKeySet[K]{
		tree:  btree.NewG(8, func(a, b repKey[K]) bool { return a.Key < b.Key }),
		bloom: structure.NewBloomFilter(1024, 0.01),
	}
}

func (s *repKeySet[K]) add(k K) {
	s.tree.ReplaceOrInsert(repKey[K]{Key: k})
	s.bloom.Add(math.Float64bits(float64(k)))
}

func (s *repKeySet[K]) len() int {
	return s.tree.Len()
}

// hit increments the count for k if it is tracked and reports whether it was.
func (s *repKeySet[K]) hit(k K) bool {
	if !s.bloom.Contains(math.Float64bits(float64(k))) {
		return false
	}
	item, ok := s.tree.Get(repKey[K]{Key: k})
	if !ok {
		return false
	}
	item.Count++
	s.tree.ReplaceOrInsert(item)
	return true
}

// ordered returns the (key, count) pairs in ascending key order.
func (s *repKeySet[K]) ordered() []repKey[K] {
	out := make([]repKey[K], 0, s.tree.Len())
	s.tree.Ascend(func(item repKey[K]) bool {
		out = append(out, item)
		return true
	})
	return out
}

// detectRepeatedKeys scans the sorted training sample for maximal runs of
// equal values longer than one leaf's share of the sample. Keys in such runs
// are pulled out of the bucketization path entirely and merged back at the
// end, since the CDF model cannot spread them over distinct positions.
func detectRepeatedKeys[K common.Key](sample []K, numLeaves int) *repKeySet[K] {
	set := newRepKeySet[K]()
	if len(sample) == 0 {
		return set
	}

	repThreshold := len(sample) / numLeaves
	run := 1
	for i := 1; i < len(sample); i++ {
		if sample[i] == sample[i-1] {
			run++
			continue
		}
		if run > repThreshold {
			set.add(sample[i-1])
		}
		run = 1
	}
	if run > repThreshold {
		set.add(sample[len(sample)-1])
	}
	return set
}
