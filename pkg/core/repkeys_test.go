package core

import (
	"testing"
)

func TestDetectRepeatedKeysFlagsLongRuns(t *testing.T) {
	// With 4 leaves over an 8-key sample, a run longer than 8/4=2 is heavy.
	sample := []float64{1, 2, 2, 2, 3, 4, 5, 6}
	set := detectRepeatedKeys(sample, 4)

	if set.len() != 1 {
		t.Fatalf("expected 1 flagged key, got %d", set.len())
	}
	if !set.hit(2) {
		t.Fatal("expected key 2 to be flagged")
	}
	if set.hit(1) || set.hit(3) {
		t.Fatal("short runs must not be flagged")
	}
}

func TestDetectRepeatedKeysFlagsTrailingRun(t *testing.T) {
	sample := []float64{1, 2, 3, 9, 9, 9, 9}
	set := detectRepeatedKeys(sample, 3)

	if !set.hit(9) {
		t.Fatal("expected trailing run of 9s to be flagged")
	}
}

func TestDetectRepeatedKeysEmptySample(t *testing.T) {
	set := detectRepeatedKeys([]float64{}, 4)
	if set.len() != 0 {
		t.Fatalf("expected empty set, got %d keys", set.len())
	}
}

func TestRepKeySetCountsAndOrder(t *testing.T) {
	set := newRepKeySet[float64]()
	set.add(30)
	set.add(10)
	set.add(20)

	for i := 0; i < 3; i++ {
		if !set.hit(20) {
			t.Fatal("expected hit on tracked key 20")
		}
	}
	if !set.hit(10) {
		t.Fatal("expected hit on tracked key 10")
	}
	if set.hit(15) {
		t.Fatal("unexpected hit on untracked key")
	}

	ordered := set.ordered()
	if len(ordered) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(ordered))
	}
	wantKeys := []float64{10, 20, 30}
	wantCounts := []int{1, 3, 0}
	for i, item := range ordered {
		if item.Key != wantKeys[i] {
			t.Errorf("entry %d: key %v, want %v", i, item.Key, wantKeys[i])
		}
		if item.Count != wantCounts[i] {
			t.Errorf("entry %d: count %d, want %d", i, item.Count, wantCounts[i])
		}
	}
}

func TestMergeRepeatedSplatsCounts(t *testing.T) {
	// Merged region occupies keys[3:]; the first 3 slots are reserved for
	// the repeated key occurrences.
	keys := []float64{0, 0, 0, 1, 2, 6, 7}
	rep := []repKey[float64]{{Key: 5, Count: 3}}

	mergeRepeated(keys, rep, 3)

	want := []float64{1, 2, 5, 5, 5, 6, 7}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("index %d: got %v, want %v (full: %v)", i, keys[i], want[i], keys)
		}
	}
}

func TestMergeRepeatedDrainsTrailingKeys(t *testing.T) {
	// All repeated keys compare greater than the merged region.
	keys := []float64{0, 0, 1, 2}
	rep := []repKey[float64]{{Key: 9, Count: 2}}

	mergeRepeated(keys, rep, 2)

	want := []float64{1, 2, 9, 9}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("index %d: got %v, want %v (full: %v)", i, keys[i], want[i], keys)
		}
	}
}
