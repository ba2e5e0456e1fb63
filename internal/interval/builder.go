package interval

import (
	"errors"
	"fmt"
	"math"
)

const defaultBuilderCapacity = 16

// ErrCapacity is returned when a Builder cannot grow its backing arrays any
// further. Ordinary workloads never hit this; it exists so that the overflow
// path fails loudly instead of wrapping around.
var ErrCapacity = errors.New("interval: required capacity exceeds maximum")

// Builder accumulates intervals into growable parallel arrays and produces
// immutable Trees from them.
//
// A Builder is not safe for concurrent use. Build does not consume the
// builder: the staged rows remain and the builder can keep accepting
// intervals or be cleared for reuse.
type Builder[T any] struct {
	mins []int64
	maxs []int64
	data []T
	size int
}

// NewBuilder creates a builder pre-sized for the expected interval count.
func NewBuilder[T any](capacity int) *Builder[T] {
	if capacity < defaultBuilderCapacity {
		capacity = defaultBuilderCapacity
	}
	return &Builder[T]{
		mins: make([]int64, capacity),
		maxs: make([]int64, capacity),
		data: make([]T, capacity),
	}
}

// Add appends one interval. It fails with ErrInvalidBounds if min > max,
// leaving the builder untouched.
func (b *Builder[T]) Add(min, max int64, data T) error {
	if min > max {
		return fmt.Errorf("%w: min=%d max=%d", ErrInvalidBounds, min, max)
	}
	if err := b.ensureCapacity(b.size + 1); err != nil {
		return err
	}
	b.mins[b.size] = min
	b.maxs[b.size] = max
	b.data[b.size] = data
	b.size++
	return nil
}

// AddPoint appends a degenerate interval [point, point].
func (b *Builder[T]) AddPoint(point int64, data T) error {
	return b.Add(point, point, data)
}

// AddAll appends every interval staged in another builder. Rows in the other
// builder were validated when they were added, so no re-validation happens.
func (b *Builder[T]) AddAll(other *Builder[T]) error {
	if err := b.ensureCapacity(b.size + other.size); err != nil {
		return err
	}
	copy(b.mins[b.size:], other.mins[:other.size])
	copy(b.maxs[b.size:], other.maxs[:other.size])
	copy(b.data[b.size:], other.data[:other.size])
	b.size += other.size
	return nil
}

// AddBounds bulk-appends intervals from parallel arrays. Every row is
// validated before any is appended: either all rows are added or the builder
// is left unchanged.
func (b *Builder[T]) AddBounds(mins, maxs []int64, data []T) error {
	if len(mins) != len(maxs) || len(mins) != len(data) {
		return fmt.Errorf("interval: array lengths must match (mins=%d maxs=%d data=%d)",
			len(mins), len(maxs), len(data))
	}
	for i := range mins {
		if mins[i] > maxs[i] {
			return fmt.Errorf("%w: row %d min=%d max=%d", ErrInvalidBounds, i, mins[i], maxs[i])
		}
	}
	if err := b.ensureCapacity(b.size + len(mins)); err != nil {
		return err
	}
	copy(b.mins[b.size:], mins)
	copy(b.maxs[b.size:], maxs)
	copy(b.data[b.size:], data)
	b.size += len(mins)
	return nil
}

// Len returns the number of intervals staged so far.
func (b *Builder[T]) Len() int {
	return b.size
}

// Clear drops all staged intervals, keeping the backing arrays for reuse.
// Payload references are zeroed so they do not stay reachable.
func (b *Builder[T]) Clear() {
	var zero T
	for i := 0; i < b.size; i++ {
		b.data[i] = zero
	}
	b.size = 0
}

// Build constructs a Tree from the staged intervals. Exactly Len() rows are
// copied into trimmed arrays, so later mutation of the builder never leaks
// into a built tree.
func (b *Builder[T]) Build() (*Tree[T], error) {
	mins := make([]int64, b.size)
	maxs := make([]int64, b.size)
	data := make([]T, b.size)
	copy(mins, b.mins[:b.size])
	copy(maxs, b.maxs[:b.size])
	copy(data, b.data[:b.size])
	return NewTree(mins, maxs, data)
}

func (b *Builder[T]) ensureCapacity(minCapacity int) error {
	if minCapacity <= len(b.mins) {
		return nil
	}
	return b.grow(minCapacity)
}

// grow extends the backing arrays by 1.5x (never shrinking).
func (b *Builder[T]) grow(minCapacity int) error {
	if minCapacity < 0 {
		// int overflow from an addition in the caller.
		return ErrCapacity
	}
	oldCapacity := len(b.mins)
	newCapacity := oldCapacity + oldCapacity/2
	if newCapacity < minCapacity {
		newCapacity = minCapacity
	}
	if newCapacity > math.MaxInt-8 {
		return ErrCapacity
	}

	mins := make([]int64, newCapacity)
	maxs := make([]int64, newCapacity)
	data := make([]T, newCapacity)
	copy(mins, b.mins[:b.size])
	copy(maxs, b.maxs[:b.size])
	copy(data, b.data[:b.size])
	b.mins, b.maxs, b.data = mins, maxs, data
	return nil
}
