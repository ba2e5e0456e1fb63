package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/inodb/rangeidx/internal/interval"
)

func runBench(args []string) int {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)

	var (
		intervals int
		queries   int
		width     int64
		seed      int64
	)

	fs.IntVar(&intervals, "intervals", 100000, "Number of synthetic intervals to index")
	fs.IntVar(&queries, "queries", 10000, "Number of overlap queries to run")
	fs.Int64Var(&width, "width", 100, "Query width")
	fs.Int64Var(&seed, "seed", 42, "Random seed (same seed, same workload)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Benchmark index build time and query throughput on a synthetic workload.

Usage:
  rangeidx bench [options]

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  rangeidx bench --intervals 1000000 --queries 100000 --width 1000
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if intervals <= 0 || queries <= 0 || width < 0 {
		fmt.Fprintf(os.Stderr, "Error: intervals and queries must be positive, width non-negative\n")
		return ExitUsage
	}

	rng := rand.New(rand.NewSource(seed))
	valueRange := int64(intervals) * 100

	builder := interval.NewBuilder[int](intervals)
	for i := 0; i < intervals; i++ {
		start := rng.Int63n(valueRange)
		w := rng.Int63n(1000) + 1
		if err := builder.Add(start, start+w, i); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
	}

	buildStart := time.Now()
	tree, err := builder.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	buildTime := time.Since(buildStart)

	// Pre-generate queries so the timed loop measures searching only.
	queryMins := make([]int64, queries)
	for i := range queryMins {
		queryMins[i] = rng.Int63n(valueRange)
	}

	buf := interval.NewResultBuffer[int](65536)
	var totalMatches int64

	queryStart := time.Now()
	for _, qmin := range queryMins {
		buf.Clear()
		totalMatches += int64(tree.Search(qmin, qmin+width, buf.Accept))
	}
	queryTime := time.Since(queryStart)

	perQuery := queryTime / time.Duration(queries)
	throughput := float64(queries) / queryTime.Seconds()

	fmt.Printf("intervals:        %d\n", tree.Len())
	fmt.Printf("nodes:            %d\n", tree.NodeCount())
	fmt.Printf("build time:       %v\n", buildTime)
	fmt.Printf("index memory:     %.1f MiB\n", float64(tree.EstimateMemoryBytes())/(1<<20))
	fmt.Printf("queries:          %d (width %d)\n", queries, width)
	fmt.Printf("total matches:    %d\n", totalMatches)
	fmt.Printf("query time:       %v (%v/query, %.0f queries/sec)\n", queryTime, perQuery, throughput)

	return ExitSuccess
}
