// Package main provides the rangeidx command-line tool.
package main

import (
	"flag"
	"fmt"
	"os"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Global flags
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	// Parse global flags first
	flag.Parse()

	if showVersion {
		fmt.Printf("rangeidx version %s (%s) built %s\n", version, commit, date)
		return ExitSuccess
	}

	// Check for subcommand
	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return ExitUsage
	}

	switch args[0] {
	case "query":
		return runQuery(args[1:])
	case "bench":
		return runBench(args[1:])
	case "config":
		return runConfig(args[1:])
	case "help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		printUsage()
		return ExitUsage
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `rangeidx - Fast overlap queries over genomic ranges

Usage:
  rangeidx [options] <command> [arguments]

Commands:
  query       Index a region file and answer overlap queries
  bench       Benchmark index build and query throughput
  config      Manage rangeidx configuration
  help        Show this help message

Global Options:
  --version   Show version information

Examples:
  # Query a BED file for regions overlapping chr1:100-200
  rangeidx query --bed regions.bed chr1:100-200

  # Load regions from a DuckDB database and record overlaps back into it
  rangeidx query --db regions.duckdb --record chr7:5000000-5100000

  # Benchmark one million synthetic intervals
  rangeidx bench --intervals 1000000

For more information on a command, use:
  rangeidx <command> --help
`)
}
