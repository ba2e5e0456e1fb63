package genome

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builtSet(t *testing.T) *Set {
	t.Helper()
	s := NewSet()
	require.NoError(t, s.Add("chr1", 100, 200, "geneA"))
	require.NoError(t, s.Add("chr1", 150, 250, "geneB"))
	require.NoError(t, s.Add("chr2", 1000, 2000, "geneC"))
	require.NoError(t, s.Build())
	return s
}

func searchNames(s *Set, chrom string, qmin, qmax int64) []string {
	var names []string
	s.Search(chrom, qmin, qmax, func(min, max int64, name string) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)
	return names
}

func TestSet_SearchByChromosome(t *testing.T) {
	s := builtSet(t)

	assert.Equal(t, []string{"geneA", "geneB"}, searchNames(s, "chr1", 160, 180))
	assert.Equal(t, []string{"geneA"}, searchNames(s, "chr1", 100, 140))
	assert.Equal(t, []string{"geneC"}, searchNames(s, "chr2", 1500, 1500))
	assert.Empty(t, searchNames(s, "chr1", 300, 400))
	assert.Empty(t, searchNames(s, "chrX", 0, 1000000), "unknown chromosome")
}

func TestSet_SearchPoint(t *testing.T) {
	s := builtSet(t)

	var names []string
	n := s.SearchPoint("chr1", 150, func(min, max int64, name string) bool {
		names = append(names, name)
		return true
	})
	assert.Equal(t, 2, n)
	sort.Strings(names)
	assert.Equal(t, []string{"geneA", "geneB"}, names)
}

func TestSet_RejectsInvalidRegion(t *testing.T) {
	s := NewSet()
	err := s.Add("chr1", 200, 100, "backwards")
	assert.Error(t, err)
	require.NoError(t, s.Build())
	assert.Equal(t, 0, s.Len())
}

func TestSet_ChromosomesAndLen(t *testing.T) {
	s := builtSet(t)

	assert.Equal(t, []string{"chr1", "chr2"}, s.Chromosomes())
	assert.Equal(t, 3, s.Len())
	assert.Greater(t, s.EstimateMemoryBytes(), int64(0))
}

func TestSet_RebuildReplacesChromosome(t *testing.T) {
	s := builtSet(t)

	require.NoError(t, s.Add("chr1", 5000, 6000, "geneD"))
	require.NoError(t, s.Build())

	// chr1 now holds only the newly staged batch; chr2 is untouched.
	assert.Equal(t, []string{"geneD"}, searchNames(s, "chr1", 0, 10000))
	assert.Equal(t, []string{"geneC"}, searchNames(s, "chr2", 0, 10000))
}

func TestSet_EmptyBuild(t *testing.T) {
	s := NewSet()
	require.NoError(t, s.Build())
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Chromosomes())
}
