package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRegion(t *testing.T) {
	tests := []struct {
		in    string
		chrom string
		qmin  int64
		qmax  int64
	}{
		{"chr1:100-200", "chr1", 100, 200},
		{"chr2:5000", "chr2", 5000, 5000},
		{"X:0-0", "X", 0, 0},
	}
	for _, tt := range tests {
		chrom, qmin, qmax, err := parseRegion(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.chrom, chrom, tt.in)
		assert.Equal(t, tt.qmin, qmin, tt.in)
		assert.Equal(t, tt.qmax, qmax, tt.in)
	}
}

func TestParseRegion_Invalid(t *testing.T) {
	for _, in := range []string{
		"chr1",
		":100-200",
		"chr1:abc",
		"chr1:100-abc",
		"chr1:200-100",
	} {
		_, _, _, err := parseRegion(in)
		assert.Error(t, err, in)
	}
}
