package split

import (
	"container/list"
	"iter"
	"slices"
)

// Range is the capability set the parallel algorithms need from an input:
// a length and forward iteration over a half-open index window.
// Implementations must allow concurrent iteration of disjoint windows.
type Range[T any] interface {
	Len() int
	All(lo, hi int) iter.Seq[T]
}

// MutableRange is a Range whose elements can be updated in place.
// Concurrent updates of disjoint windows must be safe.
type MutableRange[T any] interface {
	Range[T]
	Update(lo, hi int, fn func(*T))
}

// Slice adapts a Go slice to MutableRange.
type Slice[T any] []T

// Len returns the number of elements.
func (s Slice[T]) Len() int { return len(s) }

// All iterates over s[lo:hi].
func (s Slice[T]) All(lo, hi int) iter.Seq[T] { return slices.Values(s[lo:hi]) }

// Update applies fn to every element of s[lo:hi] in place.
func (s Slice[T]) Update(lo, hi int, fn func(*T)) {
	for i := lo; i < hi; i++ {
		fn(&s[i])
	}
}

// List adapts a container/list holding values of type T. Windows are located
// by walking from the front, so each call costs O(hi).
type List[T any] struct {
	l *list.List
}

// NewList wraps l. Every element of l must hold a T.
func NewList[T any](l *list.List) List[T] {
	return List[T]{l: l}
}

// Len returns the number of elements.
func (r List[T]) Len() int { return r.l.Len() }

// All iterates over the elements at positions [lo, hi).
func (r List[T]) All(lo, hi int) iter.Seq[T] {
	return func(yield func(T) bool) {
		e := r.seek(lo)
		for i := lo; i < hi && e != nil; i, e = i+1, e.Next() {
			if !yield(e.Value.(T)) {
				return
			}
		}
	}
}

// Update applies fn to the elements at positions [lo, hi).
func (r List[T]) Update(lo, hi int, fn func(*T)) {
	e := r.seek(lo)
	for i := lo; i < hi && e != nil; i, e = i+1, e.Next() {
		v := e.Value.(T)
		fn(&v)
		e.Value = v
	}
}

func (r List[T]) seek(pos int) *list.Element {
	e := r.l.Front()
	for i := 0; i < pos && e != nil; i++ {
		e = e.Next()
	}
	return e
}
