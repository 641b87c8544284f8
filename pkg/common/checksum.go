package common

import "math"

// Checksum folds the bit patterns of all keys with XOR. It is invariant
// under permutation, so a sort that preserves the multiset of keys leaves it
// unchanged. The converse does not hold: pairs of equal keys cancel, so
// different multisets can share a checksum.
func Checksum[K Key](keys []K) uint64 {
	var sum uint64
	for _, k := range keys {
		sum ^= math.Float64bits(float64(k))
	}
	return sum
}
