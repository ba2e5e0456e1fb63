package interval

// Sink receives search matches one at a time. Returning false stops the
// traversal immediately; no further intervals or subtrees are visited.
//
// A sink may be called zero or more times, strictly for intervals that
// overlap the query, in an unspecified but deterministic order for a given
// tree.
type Sink[T any] func(min, max int64, data T) bool

// Search streams every indexed interval overlapping [queryMin, queryMax]
// into the sink and returns the number of matches emitted. If the sink
// returns false the count covers only the matches emitted up to that point.
//
// Cost is O(log n) node visits plus O(k) emissions: per node, the sorted
// owned lists are scanned only until the first non-match.
func (t *Tree[T]) Search(queryMin, queryMax int64, sink Sink[T]) int {
	if len(t.pivots) == 0 {
		return 0
	}
	count := 0
	t.searchNode(0, queryMin, queryMax, sink, &count)
	return count
}

// SearchPoint streams every interval containing the point into the sink.
func (t *Tree[T]) SearchPoint(point int64, sink Sink[T]) int {
	return t.Search(point, point, sink)
}

// searchNode returns false if the sink requested termination.
func (t *Tree[T]) searchNode(node int32, queryMin, queryMax int64, sink Sink[T], count *int) bool {
	if node == nullNode {
		return true
	}

	pivot := t.pivots[node]
	owned := int(t.ownedLen[node])
	minStart := int(t.minStart[node])
	maxStart := int(t.maxStart[node])

	// Query contains the pivot: every owned interval straddles the pivot and
	// therefore overlaps the query. Both children may still hold matches.
	if queryMin <= pivot && pivot <= queryMax {
		for i := 0; i < owned; i++ {
			id := t.ownedIDs[minStart+i]
			*count++
			if !sink(t.bounds[2*id], t.bounds[2*id+1], t.data[id]) {
				return false
			}
		}
		if !t.searchNode(t.left[node], queryMin, queryMax, sink, count) {
			return false
		}
		return t.searchNode(t.right[node], queryMin, queryMax, sink, count)
	}

	// Pivot below the query: an owned interval matches iff its max reaches
	// queryMin. Scan the max-descending list and stop at the first miss.
	// Left-child intervals all end below the pivot, so only the right child
	// can match.
	if pivot < queryMin {
		for i := 0; i < owned; i++ {
			id := t.ownedIDs[maxStart+i]
			max := t.bounds[2*id+1]
			if max < queryMin {
				break
			}
			*count++
			if !sink(t.bounds[2*id], max, t.data[id]) {
				return false
			}
		}
		return t.searchNode(t.right[node], queryMin, queryMax, sink, count)
	}

	// Pivot above the query: mirror case over the min-ascending list, then
	// only the left child.
	for i := 0; i < owned; i++ {
		id := t.ownedIDs[minStart+i]
		min := t.bounds[2*id]
		if min > queryMax {
			break
		}
		*count++
		if !sink(min, t.bounds[2*id+1], t.data[id]) {
			return false
		}
	}
	return t.searchNode(t.left[node], queryMin, queryMax, sink, count)
}
