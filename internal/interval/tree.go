package interval

import (
	"fmt"
	"slices"
)

// nullNode marks a missing child.
const nullNode = int32(-1)

// Pivot selection sorts at most maxPivotSample endpoints per node, so its
// cost stays constant regardless of subset size.
const maxPivotSample = 256

// Tree is a centered interval tree flattened into parallel arrays.
//
// Every node owns the intervals that straddle its pivot; intervals entirely
// below the pivot go to the left child, entirely above to the right. Owned
// intervals are stored twice in one flattened id array, once sorted ascending
// by min and once descending by max, which lets a search scan only as many
// owned entries as actually match.
//
// Interval bounds live in a single [min0, max0, min1, max1, ...] array, 16
// bytes per interval; node metadata is packed the same way, addressed by
// int32 node ids. Nothing is allocated after construction and nothing is
// mutated, so concurrent searches need no locking.
type Tree[T any] struct {
	// bounds holds interval i at bounds[2i] (min) and bounds[2i+1] (max).
	bounds []int64
	data   []T
	count  int

	pivots   []int64
	minStart []int32 // per node: offset of the min-ascending segment in ownedIDs
	maxStart []int32 // per node: offset of the max-descending segment in ownedIDs
	ownedLen []int32
	left     []int32
	right    []int32
	ownedIDs []int32
}

// NewTree builds a tree from parallel bound and payload arrays. All rows are
// validated before any node is created; a min > max row fails the whole
// construction with ErrInvalidBounds.
//
// Building from identical input always produces a structurally identical
// tree: pivot sampling uses a fixed stride, never randomness.
func NewTree[T any](mins, maxs []int64, data []T) (*Tree[T], error) {
	if len(mins) != len(maxs) || len(mins) != len(data) {
		return nil, fmt.Errorf("interval: array lengths must match (mins=%d maxs=%d data=%d)",
			len(mins), len(maxs), len(data))
	}
	for i := range mins {
		if mins[i] > maxs[i] {
			return nil, fmt.Errorf("%w: row %d min=%d max=%d", ErrInvalidBounds, i, mins[i], maxs[i])
		}
	}

	n := len(mins)
	t := &Tree[T]{
		bounds: make([]int64, 2*n),
		data:   make([]T, n),
		count:  n,
	}
	for i := 0; i < n; i++ {
		t.bounds[2*i] = mins[i]
		t.bounds[2*i+1] = maxs[i]
	}
	copy(t.data, data)

	if n == 0 {
		return t, nil
	}

	// Each interval is owned by exactly one node and every node owns at
	// least one interval, so 2n bounds the node count and the flattened id
	// array is exactly 2n long.
	tb := &treeBuilder[T]{
		tree:     t,
		pivots:   make([]int64, 0, 2*n),
		minStart: make([]int32, 0, 2*n),
		maxStart: make([]int32, 0, 2*n),
		ownedLen: make([]int32, 0, 2*n),
		left:     make([]int32, 0, 2*n),
		right:    make([]int32, 0, 2*n),
		ownedIDs: make([]int32, 0, 2*n),
	}

	all := make([]int32, n)
	for i := range all {
		all[i] = int32(i)
	}
	tb.build(all)

	t.pivots = tb.pivots
	t.minStart = tb.minStart
	t.maxStart = tb.maxStart
	t.ownedLen = tb.ownedLen
	t.left = tb.left
	t.right = tb.right
	t.ownedIDs = tb.ownedIDs
	return t, nil
}

// Len returns the number of indexed intervals.
func (t *Tree[T]) Len() int {
	return t.count
}

// IsEmpty returns true if no intervals are indexed.
func (t *Tree[T]) IsEmpty() bool {
	return t.count == 0
}

// NodeCount returns the number of tree nodes.
func (t *Tree[T]) NodeCount() int {
	return len(t.pivots)
}

// Min returns the minimum bound of interval i in input order.
func (t *Tree[T]) Min(i int) int64 {
	return t.bounds[2*i]
}

// Max returns the maximum bound of interval i in input order.
func (t *Tree[T]) Max(i int) int64 {
	return t.bounds[2*i+1]
}

// Data returns the payload of interval i in input order.
func (t *Tree[T]) Data(i int) T {
	return t.data[i]
}

// EstimateMemoryBytes reports the footprint of all backing arrays plus fixed
// struct overhead. Intended for capacity planning, not accounting.
func (t *Tree[T]) EstimateMemoryBytes() int64 {
	const sliceHeader = 24
	bytes := int64(64) // struct fields
	bytes += sliceHeader + int64(len(t.bounds))*8
	bytes += sliceHeader + int64(len(t.data))*8
	bytes += sliceHeader + int64(len(t.pivots))*8
	bytes += sliceHeader + int64(len(t.minStart))*4
	bytes += sliceHeader + int64(len(t.maxStart))*4
	bytes += sliceHeader + int64(len(t.ownedLen))*4
	bytes += sliceHeader + int64(len(t.left))*4
	bytes += sliceHeader + int64(len(t.right))*4
	bytes += sliceHeader + int64(len(t.ownedIDs))*4
	return bytes
}

// treeBuilder holds the growing node arrays during recursive construction.
type treeBuilder[T any] struct {
	tree     *Tree[T]
	pivots   []int64
	minStart []int32
	maxStart []int32
	ownedLen []int32
	left     []int32
	right    []int32
	ownedIDs []int32
	sample   [maxPivotSample]int64
}

// build creates a node for the given interval ids and returns its id, or
// nullNode for an empty subset.
func (tb *treeBuilder[T]) build(ids []int32) int32 {
	if len(ids) == 0 {
		return nullNode
	}

	bounds := tb.tree.bounds
	pivot := tb.medianEndpoint(ids)

	// Three-way partition against the pivot. Ties are owned: the straddle
	// test is inclusive on both sides, consistent with inclusive bounds.
	owned := ids[:0]
	var leftIDs, rightIDs []int32
	for _, id := range ids {
		switch {
		case bounds[2*id+1] < pivot:
			leftIDs = append(leftIDs, id)
		case bounds[2*id] > pivot:
			rightIDs = append(rightIDs, id)
		default:
			owned = append(owned, id)
		}
	}

	nodeID := int32(len(tb.pivots))
	tb.pivots = append(tb.pivots, pivot)
	tb.ownedLen = append(tb.ownedLen, int32(len(owned)))
	tb.left = append(tb.left, nullNode)
	tb.right = append(tb.right, nullNode)

	tb.minStart = append(tb.minStart, int32(len(tb.ownedIDs)))
	tb.sortByMinAsc(owned, 0, len(owned)-1)
	tb.ownedIDs = append(tb.ownedIDs, owned...)

	tb.maxStart = append(tb.maxStart, int32(len(tb.ownedIDs)))
	tb.sortByMaxDesc(owned, 0, len(owned)-1)
	tb.ownedIDs = append(tb.ownedIDs, owned...)

	tb.left[nodeID] = tb.build(leftIDs)
	tb.right[nodeID] = tb.build(rightIDs)
	return nodeID
}

// medianEndpoint picks the approximate median of the subset's endpoint
// values. Small subsets contribute every endpoint; large ones an evenly
// strided sample capped at maxPivotSample. The approximation only affects
// balance, never correctness.
func (tb *treeBuilder[T]) medianEndpoint(ids []int32) int64 {
	bounds := tb.tree.bounds
	sample := tb.sample[:0]

	if 2*len(ids) <= maxPivotSample {
		for _, id := range ids {
			sample = append(sample, bounds[2*id], bounds[2*id+1])
		}
	} else {
		step := len(ids) / (maxPivotSample / 2)
		if step < 1 {
			step = 1
		}
		for i := 0; i < len(ids) && len(sample) < maxPivotSample; i += step {
			id := ids[i]
			sample = append(sample, bounds[2*id])
			if len(sample) < maxPivotSample {
				sample = append(sample, bounds[2*id+1])
			}
		}
	}

	slices.Sort(sample)
	return sample[len(sample)/2]
}

// sortByMinAsc is an in-place quicksort of interval ids by ascending min,
// comparing through the packed bound array. Equal keys fall back to id order
// so rebuilds of the same input are byte-identical.
func (tb *treeBuilder[T]) sortByMinAsc(ids []int32, lo, hi int) {
	if lo >= hi {
		return
	}
	bounds := tb.tree.bounds
	p := ids[lo+(hi-lo)/2]
	pivotMin, pivotID := bounds[2*p], p

	i, j := lo, hi
	for i <= j {
		for lessByMin(bounds, ids[i], pivotMin, pivotID) {
			i++
		}
		for lessByMin(bounds, pivotID, bounds[2*ids[j]], ids[j]) {
			j--
		}
		if i <= j {
			ids[i], ids[j] = ids[j], ids[i]
			i++
			j--
		}
	}
	tb.sortByMinAsc(ids, lo, j)
	tb.sortByMinAsc(ids, i, hi)
}

// lessByMin orders by min ascending, then id ascending for determinism.
func lessByMin(bounds []int64, id int32, otherMin int64, otherID int32) bool {
	min := bounds[2*id]
	return min < otherMin || (min == otherMin && id < otherID)
}

// sortByMaxDesc is the mirror sort: ids by descending max.
func (tb *treeBuilder[T]) sortByMaxDesc(ids []int32, lo, hi int) {
	if lo >= hi {
		return
	}
	bounds := tb.tree.bounds
	p := ids[lo+(hi-lo)/2]
	pivotMax, pivotID := bounds[2*p+1], p

	i, j := lo, hi
	for i <= j {
		for greaterByMax(bounds, ids[i], pivotMax, pivotID) {
			i++
		}
		for greaterByMax(bounds, pivotID, bounds[2*ids[j]+1], ids[j]) {
			j--
		}
		if i <= j {
			ids[i], ids[j] = ids[j], ids[i]
			i++
			j--
		}
	}
	tb.sortByMaxDesc(ids, lo, j)
	tb.sortByMaxDesc(ids, i, hi)
}

// greaterByMax orders by max descending, then id ascending for determinism.
func greaterByMax(bounds []int64, id int32, otherMax int64, otherID int32) bool {
	max := bounds[2*id+1]
	return max > otherMax || (max == otherMax && id < otherID)
}
