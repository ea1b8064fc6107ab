// Package split moves the elements of a container into independently owned
// parts and joins them back together.
//
// Parts follow the even split rule of partition.Sizes: with n elements and k
// parts, the first n%k parts hold one element more than the others.
package split

import (
	"github.com/tahsin716/stations/partition"
)

// ErrInvalidParts is returned when zero or fewer parts are requested.
var ErrInvalidParts = partition.ErrInvalidParts

// Split moves the contents of *s into parts owned slices, in order.
// On return *s is empty; its backing array is cleared so the moved values are
// only reachable through the returned parts.
func Split[T any](s *[]T, parts int) ([][]T, error) {
	sizes, err := partition.Sizes(len(*s), parts)
	if err != nil {
		return nil, err
	}

	src := *s
	out := make([][]T, parts)
	// take parts from the back so the source shrinks as it is consumed
	end := len(src)
	for i := parts - 1; i >= 0; i-- {
		start := end - sizes[i]
		out[i] = make([]T, sizes[i])
		copy(out[i], src[start:end])
		clear(src[start:end])
		end = start
	}
	*s = src[:0]
	return out, nil
}

// SplitRange copies the elements of r into parts newly allocated slices
// without modifying r.
func SplitRange[T any](r Range[T], parts int) ([][]T, error) {
	bounds, err := partition.Even(r.Len(), parts)
	if err != nil {
		return nil, err
	}

	out := make([][]T, parts)
	for i := range out {
		out[i] = make([]T, 0, bounds[i+1]-bounds[i])
		for v := range r.All(bounds[i], bounds[i+1]) {
			out[i] = append(out[i], v)
		}
	}
	return out, nil
}

// Join appends every part to *dst in index order and leaves the parts empty.
func Join[T any](dst *[]T, parts [][]T) {
	for i := range parts {
		*dst = append(*dst, parts[i]...)
		clear(parts[i])
		parts[i] = parts[i][:0]
	}
}

// JoinFunc feeds every element of every part, in index order, to merge and
// leaves the parts empty. It is the element-wise counterpart of Join for
// destinations that are not plain slices.
func JoinFunc[D, T any](dst D, parts [][]T, merge func(dst D, v T)) {
	for i := range parts {
		for _, v := range parts[i] {
			merge(dst, v)
		}
		clear(parts[i])
		parts[i] = parts[i][:0]
	}
}

// JoinMaps merges every entry of every part map into dst using merge, in
// part index order, then clears each part.
func JoinMaps[K comparable, V any](dst map[K]V, parts []map[K]V, merge func(dst map[K]V, k K, v V)) {
	for _, m := range parts {
		for k, v := range m {
			merge(dst, k, v)
		}
		clear(m)
	}
}
