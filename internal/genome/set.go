// Package genome organizes interval trees per chromosome and loads genomic
// region files into them.
package genome

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/inodb/rangeidx/internal/interval"
)

// Set indexes named regions by chromosome. Regions are staged with Add,
// frozen into immutable per-chromosome trees by Build, and then queried.
// Staging and Build are single-threaded; a built Set serves concurrent
// searches without locking.
type Set struct {
	staged map[string]*interval.Builder[string]
	trees  map[string]*interval.Tree[string]
	logger *zap.Logger
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{
		staged: make(map[string]*interval.Builder[string]),
		trees:  make(map[string]*interval.Tree[string]),
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for build statistics.
func (s *Set) SetLogger(l *zap.Logger) {
	s.logger = l
}

// Add stages one inclusive region [start, end] on a chromosome.
func (s *Set) Add(chrom string, start, end int64, name string) error {
	b, ok := s.staged[chrom]
	if !ok {
		b = interval.NewBuilder[string](64)
		s.staged[chrom] = b
	}
	if err := b.Add(start, end, name); err != nil {
		return fmt.Errorf("add region %s on %s: %w", name, chrom, err)
	}
	return nil
}

// Build freezes every staged chromosome into a tree. Staged rows are
// released afterward; further Adds stage a fresh batch that replaces the
// chromosome's tree on the next Build.
func (s *Set) Build() error {
	for chrom, b := range s.staged {
		tree, err := b.Build()
		if err != nil {
			return fmt.Errorf("build %s: %w", chrom, err)
		}
		s.trees[chrom] = tree
		s.logger.Debug("built chromosome index",
			zap.String("chrom", chrom),
			zap.Int("regions", tree.Len()),
			zap.Int("nodes", tree.NodeCount()))
		b.Clear()
		delete(s.staged, chrom)
	}
	return nil
}

// Search streams regions on chrom overlapping [qmin, qmax] into the sink and
// returns the match count. An unknown chromosome yields zero matches.
func (s *Set) Search(chrom string, qmin, qmax int64, sink interval.Sink[string]) int {
	tree, ok := s.trees[chrom]
	if !ok {
		return 0
	}
	return tree.Search(qmin, qmax, sink)
}

// SearchPoint streams regions containing a single position.
func (s *Set) SearchPoint(chrom string, pos int64, sink interval.Sink[string]) int {
	return s.Search(chrom, pos, pos, sink)
}

// Chromosomes returns the sorted chromosomes with a built index.
func (s *Set) Chromosomes() []string {
	chroms := make([]string, 0, len(s.trees))
	for chrom := range s.trees {
		chroms = append(chroms, chrom)
	}
	sort.Strings(chroms)
	return chroms
}

// Len returns the total indexed region count across chromosomes.
func (s *Set) Len() int {
	total := 0
	for _, tree := range s.trees {
		total += tree.Len()
	}
	return total
}

// EstimateMemoryBytes sums the footprint estimates of all built trees.
func (s *Set) EstimateMemoryBytes() int64 {
	var total int64
	for _, tree := range s.trees {
		total += tree.EstimateMemoryBytes()
	}
	return total
}
