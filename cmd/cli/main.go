package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"

	"learnsort/pkg/config"
	"learnsort/pkg/core"
)

// Reads one float per line from a file (or stdin), sorts, and writes the
// result to stdout.
func main() {
	configPath := flag.String("config", "", "Config file path (YAML)")
	inPath := flag.String("in", "-", "Input file, one key per line (- for stdin)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	in := os.Stdin
	if *inPath != "-" {
		f, err := os.Open(*inPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open input: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	var keys []float64
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "parse %q: %v\n", line, err)
			os.Exit(1)
		}
		keys = append(keys, v)
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		os.Exit(1)
	}

	core.SortWithParams(keys, cfg.Model.Params())

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	for _, k := range keys {
		fmt.Fprintf(w, "%g\n", k)
	}
}
