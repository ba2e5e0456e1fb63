package duckdb

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/rangeidx/internal/genome"
	"github.com/inodb/rangeidx/internal/interval"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)
	assert.NotNil(t, s.DB())
}

func TestAddAndCountRegions(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.AddRegion("chr1", 100, 200, "geneA"))
	require.NoError(t, s.AddRegion("chr1", 150, 250, "geneB"))
	require.NoError(t, s.AddRegion("chr2", 1000, 2000, "geneC"))

	count, err := s.CountRegions()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestAddRegion_RejectsInvalidBounds(t *testing.T) {
	s := openInMemory(t)

	err := s.AddRegion("chr1", 200, 100, "backwards")
	assert.ErrorIs(t, err, interval.ErrInvalidBounds)

	count, err := s.CountRegions()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestLoadRegionsIntoSet(t *testing.T) {
	s := openInMemory(t)
	require.NoError(t, s.AddRegion("chr1", 100, 200, "geneA"))
	require.NoError(t, s.AddRegion("chr1", 150, 250, "geneB"))
	require.NoError(t, s.AddRegion("chr2", 1000, 2000, "geneC"))

	set := genome.NewSet()
	loaded, err := s.LoadRegions(set)
	require.NoError(t, err)
	require.NoError(t, set.Build())

	assert.Equal(t, 3, loaded)
	assert.Equal(t, []string{"chr1", "chr2"}, set.Chromosomes())

	var names []string
	set.Search("chr1", 160, 180, func(min, max int64, name string) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)
	assert.Equal(t, []string{"geneA", "geneB"}, names)
}

func TestWriteOverlaps(t *testing.T) {
	s := openInMemory(t)

	buf := interval.NewResultBuffer[string](8)
	require.True(t, buf.Accept(100, 200, "geneA"))
	require.True(t, buf.Accept(150, 250, "geneB"))

	require.NoError(t, s.WriteOverlaps("chr1", 160, 180, buf))

	count, err := s.CountOverlaps()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	var name string
	var qstart int64
	err = s.DB().QueryRow(
		`SELECT name, query_start FROM "overlaps" WHERE range_start = 100`).Scan(&name, &qstart)
	require.NoError(t, err)
	assert.Equal(t, "geneA", name)
	assert.Equal(t, int64(160), qstart)
}

func TestWriteOverlaps_EmptyBuffer(t *testing.T) {
	s := openInMemory(t)

	buf := interval.NewResultBuffer[string](4)
	require.NoError(t, s.WriteOverlaps("chr1", 0, 10, buf))

	count, err := s.CountOverlaps()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
