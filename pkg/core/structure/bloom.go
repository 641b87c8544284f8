package structure

import (
	"hash/fnv"
	"math"
)

// BloomFilter answers "definitely absent" in O(k) without touching the
// backing structure. The sort engine places one in front of the repeated-key
// map so that the overwhelmingly common non-repeated keys skip the tree
// lookup. Single-owner: the engine is strictly sequential.
type BloomFilter struct {
	bitset []bool
	k      uint
	m      uint
	count  uint
}

// NewBloomFilter sizes the filter for n expected keys at false-positive
// rate p.
//
//	m = - (n * ln(p)) / (ln(2)^2)
//	k = (m / n) * ln(2)
func NewBloomFilter(n uint, p float64) *BloomFilter {
	m := uint(math.Ceil(float64(n) * math.Log(p) / math.Log(1.0/math.Pow(2.0, math.Log(2.0)))))
	k := uint(math.Ceil((float64(m) / float64(n)) * math.Log(2.0)))

	return &BloomFilter{
		bitset: make([]bool, m),
		k:      k,
		m:      m,
		count:  0,
	}
}

// Add records the bit pattern of a key.
func (bf *BloomFilter) Add(bits uint64) {
	h1 := hash1(bits)
	h2 := hash2(bits)

	for i := uint(0); i < bf.k; i++ {
		pos := (h1 + uint32(i)*h2) % uint32(bf.m)
		bf.bitset[pos] = true
	}
	bf.count++
}

// Contains reports whether the bit pattern may have been added. False
// positives are possible; false negatives are not.
func (bf *BloomFilter) Contains(bits uint64) bool {
	h1 := hash1(bits)
	h2 := hash2(bits)

	for i := uint(0); i < bf.k; i++ {
		pos := (h1 + uint32(i)*h2) % uint32(bf.m)
		if !bf.bitset[pos] {
			return false
		}
	}
	return true
}

func (bf *BloomFilter) Count() uint {
	return bf.count
}

func hash1(n uint64) uint32 {
	h := fnv.New32a()
	h.Write([]byte{
		byte(n), byte(n >> 8), byte(n >> 16), byte(n >> 24),
		byte(n >> 32), byte(n >> 40), byte(n >> 48), byte(n >> 56),
	})
	return h.Sum32()
}

func hash2(n uint64) uint32 {
	return uint32(n ^ (n >> 32))
}
