package interval

import "fmt"

// ResultBuffer collects search matches into fixed-capacity parallel arrays.
// Allocate one per caller, reuse it across searches, and pass buf.Accept as
// the sink. Once full, Accept returns false, which a Tree search treats as a
// stop signal.
//
// Not safe for concurrent use; give each concurrent search its own buffer.
type ResultBuffer[T any] struct {
	mins     []int64
	maxs     []int64
	data     []T
	size     int
	capacity int
}

// NewResultBuffer creates a buffer holding at most capacity results.
func NewResultBuffer[T any](capacity int) *ResultBuffer[T] {
	return &ResultBuffer[T]{
		mins:     make([]int64, capacity),
		maxs:     make([]int64, capacity),
		data:     make([]T, capacity),
		capacity: capacity,
	}
}

// Accept records one match. It reports false when the buffer is full.
// Accept satisfies Sink, so it can be passed to Tree.Search directly.
func (b *ResultBuffer[T]) Accept(min, max int64, data T) bool {
	if b.size >= b.capacity {
		return false
	}
	b.mins[b.size] = min
	b.maxs[b.size] = max
	b.data[b.size] = data
	b.size++
	return true
}

// Len returns the number of collected results.
func (b *ResultBuffer[T]) Len() int {
	return b.size
}

// IsEmpty returns true if no results are collected.
func (b *ResultBuffer[T]) IsEmpty() bool {
	return b.size == 0
}

// IsFull returns true once the buffer has reached capacity.
func (b *ResultBuffer[T]) IsFull() bool {
	return b.size >= b.capacity
}

// Clear resets the buffer for reuse without touching payload references.
// Use Reset to also release payloads.
func (b *ResultBuffer[T]) Clear() {
	b.size = 0
}

// Reset clears the buffer and zeroes payload references so they do not stay
// reachable through the backing array.
func (b *ResultBuffer[T]) Reset() {
	var zero T
	for i := 0; i < b.size; i++ {
		b.data[i] = zero
	}
	b.size = 0
}

// Min returns the minimum bound of result i. Panics if i >= Len().
func (b *ResultBuffer[T]) Min(i int) int64 {
	b.check(i)
	return b.mins[i]
}

// Max returns the maximum bound of result i. Panics if i >= Len().
func (b *ResultBuffer[T]) Max(i int) int64 {
	b.check(i)
	return b.maxs[i]
}

// Data returns the payload of result i. Panics if i >= Len().
func (b *ResultBuffer[T]) Data(i int) T {
	b.check(i)
	return b.data[i]
}

// ForEach replays the collected results into a sink, honoring its stop
// signal.
func (b *ResultBuffer[T]) ForEach(sink Sink[T]) {
	for i := 0; i < b.size; i++ {
		if !sink(b.mins[i], b.maxs[i], b.data[i]) {
			return
		}
	}
}

func (b *ResultBuffer[T]) check(i int) {
	if i < 0 || i >= b.size {
		panic(fmt.Sprintf("interval: result index %d out of range (len %d)", i, b.size))
	}
}
