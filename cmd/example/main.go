package main

import (
	"fmt"
	"math/rand"
	"slices"
	"time"

	"learnsort/pkg/core"
	"learnsort/pkg/synth"
)

func main() {
	const n = 2_000_000

	r := rand.New(rand.NewSource(1))
	keys := synth.Normal[float64](r, n, 0, 1)

	fmt.Printf("Sorting %d keys drawn from N(0,1)...\n", n)
	start := time.Now()
	core.Sort(keys)
	fmt.Printf("Done in %v (sorted=%v)\n", time.Since(start), slices.IsSorted(keys))

	stats := core.Stats()
	fmt.Printf("spilled=%d repeated=%d fallbacks=%d\n",
		stats.Spilled(), stats.Repeated(), stats.Fallbacks())
}
