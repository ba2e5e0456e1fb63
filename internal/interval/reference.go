package interval

import (
	"cmp"
	"slices"
)

// OrderedInterval is an inclusive range over any ordered bound type, used by
// the pointer-linked OrderedTree variant.
type OrderedInterval[C cmp.Ordered, T any] struct {
	Min  C
	Max  C
	Data T
}

// Contains returns true if Min <= point <= Max.
func (iv OrderedInterval[C, T]) Contains(point C) bool {
	return iv.Min <= point && point <= iv.Max
}

// Intersects returns true if the two intervals overlap.
func (iv OrderedInterval[C, T]) Intersects(other OrderedInterval[C, T]) bool {
	return iv.Min <= other.Max && iv.Max >= other.Min
}

// Encloses returns true if this interval completely contains the other.
func (iv OrderedInterval[C, T]) Encloses(other OrderedInterval[C, T]) bool {
	return iv.Min <= other.Min && iv.Max >= other.Max
}

// OrderedTree is the simple reference variant of Tree: pointer-linked nodes
// over any ordered bound type, results returned as slices. Use Tree for the
// performance-sensitive path; OrderedTree trades speed for flexibility and
// serves as an independent oracle in tests.
//
// Like Tree it is immutable after construction and safe for concurrent
// reads.
type OrderedTree[C cmp.Ordered, T any] struct {
	root *orderedNode[C, T]
	size int
}

type orderedNode[C cmp.Ordered, T any] struct {
	pivot C
	byMin []OrderedInterval[C, T] // owned, sorted ascending by Min
	byMax []OrderedInterval[C, T] // owned, sorted descending by Max
	left  *orderedNode[C, T]
	right *orderedNode[C, T]
}

// NewOrderedTree builds a tree over the given intervals. An interval with
// Min > Max fails construction with ErrInvalidBounds.
func NewOrderedTree[C cmp.Ordered, T any](intervals []OrderedInterval[C, T]) (*OrderedTree[C, T], error) {
	for _, iv := range intervals {
		if iv.Min > iv.Max {
			return nil, ErrInvalidBounds
		}
	}
	t := &OrderedTree[C, T]{size: len(intervals)}
	if len(intervals) > 0 {
		t.root = newOrderedNode(intervals)
	}
	return t, nil
}

// Len returns the number of indexed intervals.
func (t *OrderedTree[C, T]) Len() int {
	return t.size
}

// Search returns the payloads of every interval overlapping [min, max].
func (t *OrderedTree[C, T]) Search(min, max C) []T {
	var results []T
	t.root.search(min, max, &results)
	return results
}

// SearchPoint returns the payloads of every interval containing the point.
func (t *OrderedTree[C, T]) SearchPoint(point C) []T {
	return t.Search(point, point)
}

// All returns every indexed interval.
func (t *OrderedTree[C, T]) All() []OrderedInterval[C, T] {
	var results []OrderedInterval[C, T]
	t.root.collect(&results)
	return results
}

func newOrderedNode[C cmp.Ordered, T any](intervals []OrderedInterval[C, T]) *orderedNode[C, T] {
	n := &orderedNode[C, T]{pivot: medianDistinctEndpoint(intervals)}

	var owned, leftIvs, rightIvs []OrderedInterval[C, T]
	for _, iv := range intervals {
		switch {
		case iv.Max < n.pivot:
			leftIvs = append(leftIvs, iv)
		case iv.Min > n.pivot:
			rightIvs = append(rightIvs, iv)
		default:
			owned = append(owned, iv)
		}
	}

	n.byMin = slices.Clone(owned)
	slices.SortStableFunc(n.byMin, func(a, b OrderedInterval[C, T]) int {
		return cmp.Compare(a.Min, b.Min)
	})
	n.byMax = owned
	slices.SortStableFunc(n.byMax, func(a, b OrderedInterval[C, T]) int {
		return cmp.Compare(b.Max, a.Max)
	})

	if len(leftIvs) > 0 {
		n.left = newOrderedNode(leftIvs)
	}
	if len(rightIvs) > 0 {
		n.right = newOrderedNode(rightIvs)
	}
	return n
}

// medianDistinctEndpoint returns the middle of the sorted distinct endpoint
// values, the exact-median counterpart of the packed tree's sampled pivot.
func medianDistinctEndpoint[C cmp.Ordered, T any](intervals []OrderedInterval[C, T]) C {
	endpoints := make([]C, 0, 2*len(intervals))
	for _, iv := range intervals {
		endpoints = append(endpoints, iv.Min, iv.Max)
	}
	slices.Sort(endpoints)
	endpoints = slices.Compact(endpoints)
	return endpoints[len(endpoints)/2]
}

func (n *orderedNode[C, T]) search(min, max C, results *[]T) {
	if n == nil {
		return
	}

	// Same three cases as the packed tree's traversal.
	if min <= n.pivot && n.pivot <= max {
		for _, iv := range n.byMin {
			*results = append(*results, iv.Data)
		}
		n.left.search(min, max, results)
		n.right.search(min, max, results)
		return
	}

	if n.pivot < min {
		for _, iv := range n.byMax {
			if iv.Max < min {
				break
			}
			*results = append(*results, iv.Data)
		}
		n.right.search(min, max, results)
		return
	}

	for _, iv := range n.byMin {
		if iv.Min > max {
			break
		}
		*results = append(*results, iv.Data)
	}
	n.left.search(min, max, results)
}

func (n *orderedNode[C, T]) collect(results *[]OrderedInterval[C, T]) {
	if n == nil {
		return
	}
	*results = append(*results, n.byMin...)
	n.left.collect(results)
	n.right.collect(results)
}
