package interval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsInvalidBounds(t *testing.T) {
	_, err := New(10, 5, "bad")
	assert.ErrorIs(t, err, ErrInvalidBounds)

	iv, err := New(5, 10, "ok")
	require.NoError(t, err)
	assert.Equal(t, int64(5), iv.Min)
	assert.Equal(t, int64(10), iv.Max)
	assert.Equal(t, "ok", iv.Data)
}

func TestInterval_Contains(t *testing.T) {
	iv, err := New(100, 200, 0)
	require.NoError(t, err)

	assert.True(t, iv.Contains(150))
	assert.True(t, iv.Contains(100), "min boundary inclusive")
	assert.True(t, iv.Contains(200), "max boundary inclusive")
	assert.False(t, iv.Contains(99))
	assert.False(t, iv.Contains(201))
}

func TestInterval_Intersects(t *testing.T) {
	a := Interval[int]{Min: 0, Max: 10}
	b := Interval[int]{Min: 5, Max: 15}
	c := Interval[int]{Min: 11, Max: 20}

	assert.True(t, a.Intersects(b))
	assert.True(t, b.Intersects(a))
	assert.False(t, a.Intersects(c))
	assert.False(t, c.Intersects(a))

	// Touching at a single point counts as overlap.
	d := Interval[int]{Min: 10, Max: 12}
	assert.True(t, a.Intersects(d))
	assert.True(t, d.Intersects(a))

	assert.True(t, a.IntersectsBounds(10, 12))
	assert.False(t, a.IntersectsBounds(11, 12))
}

func TestInterval_Encloses(t *testing.T) {
	outer := Interval[int]{Min: 0, Max: 100}
	inner := Interval[int]{Min: 10, Max: 90}

	assert.True(t, outer.Encloses(inner))
	assert.False(t, inner.Encloses(outer))
	assert.True(t, outer.Encloses(outer), "interval encloses itself")
}

func TestInterval_Width(t *testing.T) {
	iv := Interval[int]{Min: -5, Max: 15}
	assert.Equal(t, int64(20), iv.Width())

	point := Interval[int]{Min: 7, Max: 7}
	assert.Equal(t, int64(0), point.Width())
}

func TestInterval_String(t *testing.T) {
	iv := Interval[string]{Min: 1, Max: 2, Data: "x"}
	assert.Equal(t, "[1, 2]", iv.String())
}
