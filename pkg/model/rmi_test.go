package model

import (
	"math"
	"math/rand"
	"slices"
	"testing"
)

func TestTrainOnUniformKeys(t *testing.T) {
	silenceWarnings(t)

	r := rand.New(rand.NewSource(1))
	keys := make([]float64, 500_000)
	for i := range keys {
		keys[i] = r.Float64() * 1e6
	}

	rmi := Train(keys, NewParams())
	if !rmi.Trained {
		t.Fatal("expected model to train on uniform keys")
	}
	if !slices.IsSorted(rmi.TrainingSample) {
		t.Fatal("training sample must be sorted ascending")
	}
	if math.IsInf(rmi.Root.Slope, 0) || math.IsNaN(rmi.Root.Slope) {
		t.Fatalf("root slope must be finite, got %v", rmi.Root.Slope)
	}
	if len(rmi.Leaves) != rmi.Params.Arch[1] {
		t.Fatalf("expected %d leaves, got %d", rmi.Params.Arch[1], len(rmi.Leaves))
	}
}

func TestCDFWithinUnitInterval(t *testing.T) {
	silenceWarnings(t)

	r := rand.New(rand.NewSource(7))
	keys := make([]float64, 300_000)
	for i := range keys {
		keys[i] = r.NormFloat64() * 100
	}

	rmi := Train(keys, NewParams())
	if !rmi.Trained {
		t.Fatal("expected model to train on normal keys")
	}

	for _, k := range keys {
		cdf := rmi.CDF(k)
		if cdf < 0 || cdf > 1 {
			t.Fatalf("CDF(%v) = %v out of [0,1]", k, cdf)
		}
	}
}

func TestCDFMonotoneOverSample(t *testing.T) {
	silenceWarnings(t)

	r := rand.New(rand.NewSource(3))
	keys := make([]float64, 300_000)
	for i := range keys {
		keys[i] = r.ExpFloat64() * 1000
	}

	rmi := Train(keys, NewParams())
	if !rmi.Trained {
		t.Fatal("expected model to train")
	}

	sample := rmi.TrainingSample
	prev := rmi.CDF(sample[0])
	for _, k := range sample[1:] {
		cur := rmi.CDF(k)
		if cur < prev-1e-9 {
			t.Fatalf("CDF not monotone: CDF(%v)=%v after %v", k, cur, prev)
		}
		prev = cur
	}
}

func TestLeafBoundariesNonDecreasing(t *testing.T) {
	silenceWarnings(t)

	// A five-Gaussian mixture leaves stretches of empty leaves between the
	// modes; the filler segments must keep the boundary values monotone.
	r := rand.New(rand.NewSource(11))
	means := []float64{-400, -150, 0, 200, 450}
	keys := make([]float64, 400_000)
	for i := range keys {
		m := means[r.Intn(len(means))]
		keys[i] = r.NormFloat64()*20 + m
	}

	rmi := Train(keys, NewParams())
	if !rmi.Trained {
		t.Fatal("expected model to train on a Gaussian mixture")
	}

	// Evaluate each leaf at the left edge of the key region it owns.
	numLeaves := len(rmi.Leaves)
	lo := float64(rmi.TrainingSample[0])
	hi := float64(rmi.TrainingSample[len(rmi.TrainingSample)-1])
	width := (hi - lo) / float64(numLeaves-1)

	prev := math.Inf(-1)
	for j := 0; j < numLeaves; j++ {
		x := lo + width*float64(j)
		y := rmi.Leaves[j].Predict(x)
		if y < prev-1e-6 {
			t.Fatalf("leaf %d boundary value %v below previous %v", j, y, prev)
		}
		prev = y
	}
}

func TestTrainUntrainedOnFewDistinctValues(t *testing.T) {
	silenceWarnings(t)

	keys := make([]float64, 200_000)
	for i := range keys {
		keys[i] = float64(i % 16)
	}

	rmi := Train(keys, NewParams())
	if rmi.Trained {
		t.Fatal("expected untrained model: only 16 distinct values for 1000 leaves")
	}
	if len(rmi.TrainingSample) == 0 {
		t.Fatal("untrained model must still retain its training sample")
	}
}

func TestTrainIdenticalKeysUntrained(t *testing.T) {
	silenceWarnings(t)

	keys := make([]float64, 150_000)
	for i := range keys {
		keys[i] = 42.0
	}

	rmi := Train(keys, NewParams())
	if rmi.Trained {
		t.Fatal("expected untrained model for identical keys")
	}
}

func TestTrainNilParamsUsesDefaults(t *testing.T) {
	silenceWarnings(t)

	r := rand.New(rand.NewSource(5))
	keys := make([]float64, 200_000)
	for i := range keys {
		keys[i] = r.Float64()
	}

	rmi := Train(keys, nil)
	if !rmi.Trained {
		t.Fatal("expected model to train with nil params")
	}
	if rmi.Params.Fanout != DefaultFanout {
		t.Fatalf("expected default fanout, got %d", rmi.Params.Fanout)
	}
}

func TestTrainSampleStride(t *testing.T) {
	silenceWarnings(t)

	r := rand.New(rand.NewSource(9))
	n := 1_000_000
	keys := make([]float64, n)
	for i := range keys {
		keys[i] = r.Float64()
	}

	rmi := Train(keys, NewParams())

	// sampling_rate=0.01 with the MinSortingSize floor gives a 10k sample at
	// stride 100 over 1M keys.
	if got := len(rmi.TrainingSample); got != 10_000 {
		t.Fatalf("expected 10000 sample keys, got %d", got)
	}
}

func TestIntegerKeys(t *testing.T) {
	silenceWarnings(t)

	r := rand.New(rand.NewSource(13))
	keys := make([]int64, 300_000)
	for i := range keys {
		keys[i] = r.Int63n(1 << 40)
	}

	rmi := Train(keys, NewParams())
	if !rmi.Trained {
		t.Fatal("expected model to train on int64 keys")
	}
	for _, k := range keys[:1000] {
		cdf := rmi.CDF(k)
		if cdf < 0 || cdf > 1 {
			t.Fatalf("CDF(%d) = %v out of [0,1]", k, cdf)
		}
	}
}
