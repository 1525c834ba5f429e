package introspection

import "iter"

// IndexedSubset is a read-only view over the positions of a backing slice
// named by indexes, in index order. Duplicates are kept.
type IndexedSubset[T any] struct {
	indexes []int
	backing []T
}

// NewIndexedSubset creates a subset view. Indexes must be valid positions of
// backing; the view does not copy backing.
func NewIndexedSubset[T any](indexes []int, backing []T) *IndexedSubset[T] {
	return &IndexedSubset[T]{indexes: indexes, backing: backing}
}

// Len returns the number of indexes
func (s *IndexedSubset[T]) Len() int {
	return len(s.indexes)
}

// At returns the i-th element of the subset
func (s *IndexedSubset[T]) At(i int) T {
	return s.backing[s.indexes[i]]
}

// Iterator returns a fresh iterator positioned before the first element
func (s *IndexedSubset[T]) Iterator() *Iterator[T] {
	return &Iterator[T]{subset: s, pos: -1}
}

// All returns a restartable sequence over the subset
func (s *IndexedSubset[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, i := range s.indexes {
			if !yield(s.backing[i]) {
				return
			}
		}
	}
}

// Slice copies the subset into a new slice
func (s *IndexedSubset[T]) Slice() []T {
	out := make([]T, len(s.indexes))
	for i, idx := range s.indexes {
		out[i] = s.backing[idx]
	}
	return out
}

// Iterator walks an IndexedSubset.
type Iterator[T any] struct {
	subset *IndexedSubset[T]
	pos    int
}

// HasNext reports whether Next will return an element
func (it *Iterator[T]) HasNext() bool {
	return it.pos+1 < len(it.subset.indexes)
}

// Next advances and returns the next element, or ErrNoSuchElement
func (it *Iterator[T]) Next() (T, error) {
	if !it.HasNext() {
		var zero T
		return zero, ErrNoSuchElement
	}
	it.pos++
	return it.subset.backing[it.subset.indexes[it.pos]], nil
}
