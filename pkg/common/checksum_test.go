package common

import (
	"math/rand"
	"testing"
)

func TestChecksumPermutationInvariant(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	arr := make([]float64, 10_000)
	for i := range arr {
		arr[i] = r.NormFloat64()
	}
	sum := Checksum(arr)

	r.Shuffle(len(arr), func(i, j int) {
		arr[i], arr[j] = arr[j], arr[i]
	})
	if Checksum(arr) != sum {
		t.Fatal("checksum changed under permutation")
	}
}

func TestChecksumDetectsChangedKey(t *testing.T) {
	arr := []float64{1, 2, 3, 4, 5}
	sum := Checksum(arr)
	arr[2] = 3.5
	if Checksum(arr) == sum {
		t.Fatal("checksum did not change after mutating a key")
	}
}

func TestChecksumEmpty(t *testing.T) {
	if Checksum([]float64{}) != 0 {
		t.Fatal("empty checksum must be zero")
	}
}
