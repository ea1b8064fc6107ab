// Package partition computes the boundaries used to cut a range of a given
// length into contiguous, gapless, non-overlapping parts.
//
// Boundaries are half-open: part i covers [b[i], b[i+1]). A boundary set for
// N parts always has N+1 entries, the first being 0 and the last the length.
package partition

import (
	"errors"
	"fmt"
)

// ErrInvalidParts is returned when a split into zero or a negative number of
// parts is requested.
var ErrInvalidParts = errors.New("partition: number of parts must be > 0")

// ErrInvalidChunkSize is returned for a chunk size that is not positive.
var ErrInvalidChunkSize = errors.New("partition: chunk size must be > 0")

// Sizes returns the length of each of the parts when n items are divided
// evenly. The first n%parts entries are one larger than the rest, so parts
// handed out first are never smaller than later ones.
func Sizes(n, parts int) ([]int, error) {
	if parts <= 0 {
		return nil, ErrInvalidParts
	}
	if n < 0 {
		return nil, fmt.Errorf("partition: negative length %d", n)
	}

	sizes := make([]int, parts)
	base, rem := n/parts, n%parts
	for i := range sizes {
		sizes[i] = base
		if i < rem {
			sizes[i]++
		}
	}
	return sizes, nil
}

// Even returns parts+1 boundaries splitting n items into parts pieces using
// the front-loaded remainder rule of Sizes.
func Even(n, parts int) ([]int, error) {
	sizes, err := Sizes(n, parts)
	if err != nil {
		return nil, err
	}

	bounds := make([]int, 1, parts+1)
	for _, sz := range sizes {
		bounds = append(bounds, bounds[len(bounds)-1]+sz)
	}
	return bounds, nil
}

// Chunked returns boundaries placed every size items. The final part may be
// shorter. An empty range yields the single boundary {0}.
func Chunked(n, size int) ([]int, error) {
	if size <= 0 {
		return nil, ErrInvalidChunkSize
	}
	if n < 0 {
		return nil, fmt.Errorf("partition: negative length %d", n)
	}

	bounds := make([]int, 0, n/size+2)
	for i := 0; i < n; i += size {
		bounds = append(bounds, i)
	}
	return append(bounds, n), nil
}

// Count returns the number of parts described by a boundary set.
func Count(bounds []int) int {
	if len(bounds) == 0 {
		return 0
	}
	return len(bounds) - 1
}

// HighestPowerOfTwo returns the largest power of two that is <= n.
// Zero and negative inputs return 1.
//
//	HighestPowerOfTwo(0) = 1
//	HighestPowerOfTwo(3) = 2
//	HighestPowerOfTwo(9) = 8
func HighestPowerOfTwo(n int) int {
	ret := 1
	for n >>= 1; n > 0; n >>= 1 {
		ret <<= 1
	}
	return ret
}
