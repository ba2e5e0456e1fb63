package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/rangeidx/internal/duckdb"
	"github.com/inodb/rangeidx/internal/genome"
	"github.com/inodb/rangeidx/internal/interval"
)

func runQuery(args []string) int {
	fs := flag.NewFlagSet("query", flag.ExitOnError)

	var (
		bedPath  string
		dbPath   string
		record   bool
		capacity int
		verbose  bool
	)

	fs.StringVar(&bedPath, "bed", "", "BED region file to index (plain or .gz)")
	fs.StringVar(&dbPath, "db", "", "DuckDB database with a regions table to index")
	fs.BoolVar(&record, "record", false, "Record overlap results into the DuckDB database (requires --db)")
	fs.IntVar(&capacity, "buffer", 0, "Result buffer capacity per query (0 = config default)")
	fs.BoolVar(&verbose, "v", false, "Verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Index a region file and answer overlap queries.

Usage:
  rangeidx query [options] <region>...

Arguments:
  <region>  Query region as chrom:start-end or a single position chrom:pos
            (coordinates are inclusive)

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  rangeidx query --bed regions.bed chr1:100-200 chr2:5000
  rangeidx query --db regions.duckdb --record chr7:5000000-5100000
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: at least one query region required\n\n")
		fs.Usage()
		return ExitUsage
	}
	if (bedPath == "") == (dbPath == "") {
		fmt.Fprintf(os.Stderr, "Error: exactly one of --bed or --db must be given\n")
		return ExitUsage
	}
	if record && dbPath == "" {
		fmt.Fprintf(os.Stderr, "Error: --record requires --db\n")
		return ExitUsage
	}

	logger := newLogger(verbose)
	defer logger.Sync()

	if capacity <= 0 {
		capacity = queryBufferCapacity()
	}

	set := genome.NewSet()
	set.SetLogger(logger)

	var store *duckdb.Store
	if dbPath != "" {
		var err error
		store, err = duckdb.Open(dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
		defer store.Close()

		loaded, err := store.LoadRegions(set)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
		logger.Info("loaded regions from database",
			zap.String("path", dbPath), zap.Int("regions", loaded))
	} else {
		bed := genome.NewBEDLoader(bedPath)
		bed.SetLogger(logger)
		loaded, err := bed.Load(set)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
		logger.Info("loaded regions from BED file",
			zap.String("path", bedPath), zap.Int("regions", loaded))
	}

	if err := set.Build(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	logger.Info("index built",
		zap.Int("regions", set.Len()),
		zap.Int64("estimated_bytes", set.EstimateMemoryBytes()))

	buf := interval.NewResultBuffer[string](capacity)
	for _, arg := range fs.Args() {
		chrom, qmin, qmax, err := parseRegion(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitUsage
		}

		buf.Clear()
		n := set.Search(chrom, qmin, qmax, buf.Accept)
		if buf.IsFull() && n > buf.Len() {
			fmt.Fprintf(os.Stderr, "Warning: %s: results truncated at buffer capacity %d\n",
				arg, capacity)
		}

		fmt.Printf("%s\t%d match(es)\n", arg, buf.Len())
		for i := 0; i < buf.Len(); i++ {
			fmt.Printf("  %s\t%d\t%d\n", buf.Data(i), buf.Min(i), buf.Max(i))
		}

		if record {
			if err := store.WriteOverlaps(chrom, qmin, qmax, buf); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return ExitError
			}
		}
	}

	return ExitSuccess
}

// parseRegion parses chrom:start-end or chrom:pos with inclusive coordinates.
func parseRegion(s string) (chrom string, qmin, qmax int64, err error) {
	chrom, coords, ok := strings.Cut(s, ":")
	if !ok || chrom == "" {
		return "", 0, 0, fmt.Errorf("invalid region %q (want chrom:start-end or chrom:pos)", s)
	}

	startStr, endStr, ranged := strings.Cut(coords, "-")
	qmin, err = strconv.ParseInt(startStr, 10, 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid start in region %q: %w", s, err)
	}
	if !ranged {
		return chrom, qmin, qmin, nil
	}
	qmax, err = strconv.ParseInt(endStr, 10, 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid end in region %q: %w", s, err)
	}
	if qmin > qmax {
		return "", 0, 0, fmt.Errorf("invalid region %q: start > end", s)
	}
	return chrom, qmin, qmax, nil
}

// queryBufferCapacity reads the configured default result buffer size.
func queryBufferCapacity() int {
	viper.SetDefault("query.buffer", 4096)
	initConfig()
	return viper.GetInt("query.buffer")
}

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
