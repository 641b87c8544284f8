// Package synth generates synthetic key distributions for tests and
// benchmarks. All generators are deterministic under the caller's rand
// source.
package synth

import (
	"math"
	"math/rand"
	"slices"

	"learnsort/pkg/common"
)

func Uniform[K common.Key](r *rand.Rand, size int, a, b float64) []K {
	arr := make([]K, size)
	for i := range arr {
		arr[i] = K(a + r.Float64()*(b-a))
	}
	return arr
}

func Normal[K common.Key](r *rand.Rand, size int, mean, stddev float64) []K {
	arr := make([]K, size)
	for i := range arr {
		arr[i] = K(r.NormFloat64()*stddev + mean)
	}
	return arr
}

func Lognormal[K common.Key](r *rand.Rand, size int, mean, stddev, scale float64) []K {
	arr := make([]K, size)
	for i := range arr {
		arr[i] = K(math.Exp(r.NormFloat64()*stddev+mean) * scale)
	}
	return arr
}

func Exponential[K common.Key](r *rand.Rand, size int, lambda, scale float64) []K {
	arr := make([]K, size)
	for i := range arr {
		arr[i] = K(r.ExpFloat64() / lambda * scale)
	}
	return arr
}

// ChiSquared draws from a chi-squared distribution with k degrees of
// freedom, as a sum of k squared standard normals.
func ChiSquared[K common.Key](r *rand.Rand, size int, k int, scale float64) []K {
	arr := make([]K, size)
	for i := range arr {
		var sum float64
		for d := 0; d < k; d++ {
			z := r.NormFloat64()
			sum += z * z
		}
		arr[i] = K(sum * scale)
	}
	return arr
}

// MixGauss draws from a random mixture of numGauss normal distributions with
// means in (-500, 500) and stddevs in (0, 100). The resulting CDF is
// multi-modal, which leaves many leaf models without training data.
func MixGauss[K common.Key](r *rand.Rand, size, numGauss int) []K {
	means := make([]float64, numGauss)
	stdevs := make([]float64, numGauss)
	cumWeights := make([]float64, numGauss)

	var total float64
	for i := 0; i < numGauss; i++ {
		means[i] = -500 + r.Float64()*1000
		stdevs[i] = r.Float64() * 100
		total += r.Float64()
		cumWeights[i] = total
	}

	arr := make([]K, size)
	for i := range arr {
		z := r.Float64() * total
		idx := 0
		for idx < numGauss-1 && cumWeights[idx] < z {
			idx++
		}
		arr[i] = K(r.NormFloat64()*stdevs[idx] + means[idx])
	}
	return arr
}

// Zipf draws integers in [1, cardinality] with Zipfian frequency of the
// given skew, by inverting the precomputed CDF with a binary search.
func Zipf[K common.Key](r *rand.Rand, size int, skew float64, cardinality int) []K {
	// Normalization constant and cumulative probabilities.
	var c float64
	for i := 1; i <= cardinality; i++ {
		c += 1.0 / math.Pow(float64(i), skew)
	}
	c = 1.0 / c

	sumProbs := make([]float64, cardinality+1)
	for i := 1; i <= cardinality; i++ {
		sumProbs[i] = sumProbs[i-1] + c/math.Pow(float64(i), skew)
	}

	arr := make([]K, size)
	for i := range arr {
		var z float64
		for z == 0 || z == 1 {
			z = r.Float64()
		}

		lo, hi := 1, cardinality
		for lo <= hi {
			mid := (lo + hi) / 2
			if sumProbs[mid] >= z && sumProbs[mid-1] < z {
				arr[i] = K(mid)
				break
			} else if sumProbs[mid] >= z {
				hi = mid - 1
			} else {
				lo = mid + 1
			}
		}
	}
	return arr
}

// RootDups produces i mod sqrt(size): every value repeats about sqrt(size)
// times.
func RootDups[K common.Key](size int) []K {
	root := int(math.Sqrt(float64(size)))
	arr := make([]K, size)
	for i := range arr {
		arr[i] = K(i % root)
	}
	return arr
}

// ModDups produces i mod mod: a fixed small set of heavily repeated values.
func ModDups[K common.Key](size, mod int) []K {
	arr := make([]K, size)
	for i := range arr {
		arr[i] = K(i % mod)
	}
	return arr
}

func SortedUniform[K common.Key](r *rand.Rand, size int) []K {
	arr := Uniform[K](r, size, 0, float64(size))
	slices.Sort(arr)
	return arr
}

func ReverseSortedUniform[K common.Key](r *rand.Rand, size int) []K {
	arr := SortedUniform[K](r, size)
	for i, j := 0, len(arr)-1; i < j; i, j = i+1, j-1 {
		arr[i], arr[j] = arr[j], arr[i]
	}
	return arr
}

func Identical[K common.Key](size int, value K) []K {
	arr := make([]K, size)
	for i := range arr {
		arr[i] = value
	}
	return arr
}

// Shuffle permutes arr uniformly in place.
func Shuffle[K common.Key](r *rand.Rand, arr []K) {
	r.Shuffle(len(arr), func(i, j int) {
		arr[i], arr[j] = arr[j], arr[i]
	})
}
