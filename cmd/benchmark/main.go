package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"slices"
	"time"

	"learnsort/pkg/common"
	"learnsort/pkg/config"
	"learnsort/pkg/core"
	"learnsort/pkg/results"
	"learnsort/pkg/synth"
)

func main() {
	configPath := flag.String("config", "", "Config file path (YAML)")
	sizeOverride := flag.Int("n", 0, "Override input size for all runs")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}
	if *sizeOverride > 0 {
		cfg.Bench.Sizes = []int{*sizeOverride}
	}

	backend := results.NewSQLiteBackend(cfg.Bench.ResultsPath)
	defer backend.Close()

	fmt.Println("Learned Sort Benchmark")
	fmt.Printf("  sizes=%v seed=%d results=%s\n", cfg.Bench.Sizes, cfg.Bench.Seed, cfg.Bench.ResultsPath)
	fmt.Println("---------------------------------------------------")

	var runs []results.Run
	for _, size := range cfg.Bench.Sizes {
		for _, dist := range cfg.Bench.Distributions {
			r := rand.New(rand.NewSource(cfg.Bench.Seed))
			data := generate(r, dist, size)
			if data == nil {
				log.Printf("Unknown distribution %q, skipping", dist)
				continue
			}

			learned := benchOne(data, dist, size, "learned_sort", func(arr []float64) {
				core.SortWithParams(arr, cfg.Model.Params())
			})
			std := benchOne(data, dist, size, "slices_sort", slices.Sort)
			runs = append(runs, learned, std)

			speedup := float64(std.Duration) / float64(learned.Duration)
			fmt.Printf("%-12s n=%-10d learned=%-12v std=%-12v speedup=%.2fx ok=%v\n",
				dist, size, learned.Duration, std.Duration, speedup,
				learned.Sorted && learned.ChecksumOK)
		}
	}

	if err := backend.BatchRecord(runs); err != nil {
		log.Fatalf("Record results: %v", err)
	}

	stats := core.Stats()
	fmt.Println("---------------------------------------------------")
	fmt.Printf("Engine stats: sorts=%d fallbacks=%d spilled=%d repeated=%d\n",
		stats.Sorts(), stats.Fallbacks(), stats.Spilled(), stats.Repeated())
}

func generate(r *rand.Rand, dist string, size int) []float64 {
	switch dist {
	case "uniform":
		return synth.Uniform[float64](r, size, 0, float64(size))
	case "normal":
		return synth.Normal[float64](r, size, 1<<12, 1<<10)
	case "lognormal":
		return synth.Lognormal[float64](r, size, 0, 0.5, 1)
	case "exponential":
		return synth.Exponential[float64](r, size, 2, 1)
	case "chi_squared":
		return synth.ChiSquared[float64](r, size, 4, 1)
	case "mix_gauss":
		return synth.MixGauss[float64](r, size, 5)
	case "zipf":
		return synth.Zipf[float64](r, size, 0.5, 1_000_000)
	case "root_dups":
		return synth.RootDups[float64](size)
	case "mod_dups":
		arr := synth.ModDups[float64](size, 16)
		synth.Shuffle(r, arr)
		return arr
	case "sorted":
		return synth.SortedUniform[float64](r, size)
	case "reverse_sorted":
		return synth.ReverseSortedUniform[float64](r, size)
	case "identical":
		return synth.Identical(size, 42.0)
	}
	return nil
}

func benchOne(data []float64, dist string, size int, algo string, sortFn func([]float64)) results.Run {
	arr := make([]float64, len(data))
	copy(arr, data)
	sum := common.Checksum(arr)

	start := time.Now()
	sortFn(arr)
	elapsed := time.Since(start)

	return results.Run{
		Distribution: dist,
		InputSize:    size,
		Algorithm:    algo,
		Duration:     elapsed,
		Sorted:       slices.IsSorted(arr),
		ChecksumOK:   common.Checksum(arr) == sum,
	}
}
