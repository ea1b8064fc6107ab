package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizes(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		parts int
		want  []int
	}{
		{name: "ten into three", n: 10, parts: 3, want: []int{4, 3, 3}},
		{name: "three into two", n: 3, parts: 2, want: []int{2, 1}},
		{name: "exact", n: 9, parts: 3, want: []int{3, 3, 3}},
		{name: "fewer items than parts", n: 2, parts: 4, want: []int{1, 1, 0, 0}},
		{name: "empty", n: 0, parts: 3, want: []int{0, 0, 0}},
		{name: "single part", n: 7, parts: 1, want: []int{7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sizes(tt.n, tt.parts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSizes_Invariants(t *testing.T) {
	for n := 0; n < 64; n++ {
		for parts := 1; parts < 20; parts++ {
			sizes, err := Sizes(n, parts)
			require.NoError(t, err)
			require.Len(t, sizes, parts)

			sum, larger := 0, 0
			for i, sz := range sizes {
				sum += sz
				require.True(t, sz == n/parts || sz == n/parts+1, "n=%d parts=%d size=%d", n, parts, sz)
				if sz == n/parts+1 {
					larger++
					require.Less(t, i, n%parts, "larger parts must come first")
				}
			}
			assert.Equal(t, n, sum)
			assert.Equal(t, n%parts, larger)
		}
	}
}

func TestSizes_InvalidParts(t *testing.T) {
	_, err := Sizes(10, 0)
	require.ErrorIs(t, err, ErrInvalidParts)

	_, err = Sizes(10, -2)
	require.ErrorIs(t, err, ErrInvalidParts)

	_, err = Sizes(-1, 2)
	require.Error(t, err)
}

func TestEven(t *testing.T) {
	bounds, err := Even(10, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 4, 7, 10}, bounds)
	assert.Equal(t, 3, Count(bounds))

	bounds, err = Even(5, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 5}, bounds)
}

func TestChunked(t *testing.T) {
	tests := []struct {
		name string
		n    int
		size int
		want []int
	}{
		{name: "uneven tail", n: 10, size: 4, want: []int{0, 4, 8, 10}},
		{name: "exact", n: 9, size: 3, want: []int{0, 3, 6, 9}},
		{name: "per element", n: 3, size: 1, want: []int{0, 1, 2, 3}},
		{name: "chunk larger than range", n: 3, size: 10, want: []int{0, 3}},
		{name: "empty", n: 0, size: 4, want: []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Chunked(tt.n, tt.size)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Chunked(10, 0)
	require.ErrorIs(t, err, ErrInvalidChunkSize)
}

func TestCount(t *testing.T) {
	assert.Equal(t, 0, Count(nil))
	assert.Equal(t, 0, Count([]int{0}))
	assert.Equal(t, 2, Count([]int{0, 1, 2}))
}

func TestHighestPowerOfTwo(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 2, 4: 4, 7: 4, 8: 8, 9: 8, 17: 16, -3: 1}
	for in, want := range cases {
		assert.Equal(t, want, HighestPowerOfTwo(in), "input %d", in)
	}
}
