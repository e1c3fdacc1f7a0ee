package sequence

import (
	"iter"
	"slices"
)

// Iterator is a generic, immutable, chainable iterator for any type T.
type Iterator[T any] struct {
	seq iter.Seq[T]
}

// From creates a new Iterator over a slice, preserving its order.
func From[T any](data []T) *Iterator[T] {
	return &Iterator[T]{seq: slices.Values(data)}
}

// Seq returns the underlying sequence function for the iterator.
func (i *Iterator[T]) Seq() iter.Seq[T] {
	return i.seq
}

// Pull pulls the next element from the iterator and returns it along with a boolean indicating whether the element was valid.
func (i *Iterator[T]) Pull() (next func() (T, bool), stop func()) {
	return iter.Pull(i.Seq())
}

// Collect exhausts the iterator and returns a slice of all elements.
// The result is never nil.
func (i *Iterator[T]) Collect() []T {
	out := make([]T, 0)
	for v := range i.seq {
		out = append(out, v)
	}
	return out
}

// Filter returns a new Iterator containing only elements that satisfy the predicate.
func (i *Iterator[T]) Filter(pred func(T) bool) *Iterator[T] {
	return &Iterator[T]{
		seq: func(yield func(T) bool) {
			for v := range i.seq {
				if pred(v) && !yield(v) {
					return
				}
			}
		},
	}
}

// Count exhausts the iterator and returns the number of elements.
func (i *Iterator[T]) Count() int {
	n := 0
	for range i.seq {
		n++
	}
	return n
}

// Pairwise yields every adjacent pair (e[k], e[k+1]) in order. Fewer than two
// elements yield nothing.
func Pairwise[T any](it *Iterator[T]) iter.Seq2[T, T] {
	return func(yield func(T, T) bool) {
		var (
			prev    T
			hasPrev bool
		)
		for v := range it.seq {
			if hasPrev && !yield(prev, v) {
				return
			}
			prev, hasPrev = v, true
		}
	}
}

// ToArray converts the iterator into a slice, mapping elements from T to S
// with the callback.
func ToArray[T any, S any](it *Iterator[T], callback func(T) S) []S {
	arr := make([]S, 0)
	for v := range it.seq {
		arr = append(arr, callback(v))
	}
	return arr
}
