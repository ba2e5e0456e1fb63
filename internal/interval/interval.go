// Package interval provides an immutable index over inclusive one-dimensional
// ranges, answering overlap queries in O(log n + k) time.
//
// The core type is Tree, a build-once/query-many structure backed entirely by
// parallel arrays: after construction a search touches no heap. Intervals are
// staged through a Builder and results stream into a Sink callback or a
// pre-allocated ResultBuffer.
package interval

import (
	"errors"
	"fmt"
)

// ErrInvalidBounds is returned when an interval's min bound exceeds its max.
var ErrInvalidBounds = errors.New("interval: min must be <= max")

// Interval is an inclusive range [Min, Max] carrying an opaque payload.
// Both bounds participate in overlap tests, so two intervals touching at a
// single point count as overlapping.
type Interval[T any] struct {
	Min  int64
	Max  int64
	Data T
}

// New creates an interval, rejecting min > max with ErrInvalidBounds.
func New[T any](min, max int64, data T) (Interval[T], error) {
	if min > max {
		return Interval[T]{}, fmt.Errorf("%w: min=%d max=%d", ErrInvalidBounds, min, max)
	}
	return Interval[T]{Min: min, Max: max, Data: data}, nil
}

// Contains returns true if Min <= point <= Max.
func (iv Interval[T]) Contains(point int64) bool {
	return iv.Min <= point && point <= iv.Max
}

// Intersects returns true if the two intervals overlap.
// [a,b] and [c,d] intersect iff a <= d and b >= c.
func (iv Interval[T]) Intersects(other Interval[T]) bool {
	return iv.Min <= other.Max && iv.Max >= other.Min
}

// IntersectsBounds is Intersects without constructing the other interval.
func (iv Interval[T]) IntersectsBounds(otherMin, otherMax int64) bool {
	return iv.Min <= otherMax && iv.Max >= otherMin
}

// Encloses returns true if this interval completely contains the other.
func (iv Interval[T]) Encloses(other Interval[T]) bool {
	return iv.Min <= other.Min && iv.Max >= other.Max
}

// Width returns Max - Min.
func (iv Interval[T]) Width() int64 {
	return iv.Max - iv.Min
}

func (iv Interval[T]) String() string {
	return fmt.Sprintf("[%d, %d]", iv.Min, iv.Max)
}
