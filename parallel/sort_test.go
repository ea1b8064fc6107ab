package parallel

import (
	"cmp"
	"container/list"
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahsin716/stations"
	"github.com/tahsin716/stations/split"
)

func TestSort_Small(t *testing.T) {
	want := []float64{-0.2, 0.1, 0.2, 0.4, 0.5, 0.9, 100.0}

	for _, threads := range []int{1, 8} {
		xs := []float64{0.5, 0.2, 0.1, 100.0, -0.2, 0.4, 0.9}
		require.NoError(t, Sort[float64](split.Slice[float64](xs), stations.WithThreadCount(threads)))
		assert.Equal(t, want, xs, "threads=%d", threads)
	}
}

func TestSort_Random(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, n := range []int{2, 3, 17, 1000, 100_000} {
		for _, threads := range []int{1, 2, 3, 4, 7, 16} {
			t.Run(fmt.Sprintf("n=%d/threads=%d", n, threads), func(t *testing.T) {
				xs := make([]int, n)
				for i := range xs {
					xs[i] = rng.Intn(20_000_001) - 10_000_000
				}
				want := slices.Clone(xs)
				slices.Sort(want)

				require.NoError(t, Sort[int](split.Slice[int](xs), stations.WithThreadCount(threads)))
				assert.Equal(t, want, xs)

				// sorting sorted data is a no-op
				require.NoError(t, Sort[int](split.Slice[int](xs), stations.WithThreadCount(threads)))
				assert.Equal(t, want, xs)
			})
		}
	}
}

func TestSort_FewerItemsThanSegments(t *testing.T) {
	xs := []int{3, 1}
	require.NoError(t, Sort[int](split.Slice[int](xs), stations.WithThreadCount(16)))
	assert.Equal(t, []int{1, 3}, xs)
}

func TestSort_List(t *testing.T) {
	l := list.New()
	for _, v := range []string{"pear", "apple", "fig", "banana"} {
		l.PushBack(v)
	}

	require.NoError(t, Sort[string](split.NewList[string](l), stations.WithThreadCount(4)))

	var got []string
	for e := l.Front(); e != nil; e = e.Next() {
		got = append(got, e.Value.(string))
	}
	assert.Equal(t, []string{"apple", "banana", "fig", "pear"}, got)
}

func TestSortFunc_Stable(t *testing.T) {
	type item struct {
		key, seq int
	}

	xs := make([]item, 500)
	for i := range xs {
		xs[i] = item{key: (i * 7) % 5, seq: i}
	}
	byKey := func(a, b item) int { return cmp.Compare(a.key, b.key) }

	require.NoError(t, SortFunc[item](split.Slice[item](xs), byKey, stations.WithThreadCount(8)))

	for i := 1; i < len(xs); i++ {
		require.LessOrEqual(t, xs[i-1].key, xs[i].key)
		if xs[i-1].key == xs[i].key {
			require.Less(t, xs[i-1].seq, xs[i].seq, "equal keys must keep input order")
		}
	}
}

func TestSortFunc_Descending(t *testing.T) {
	xs := []int{4, 9, 1, 7}
	desc := func(a, b int) int { return cmp.Compare(b, a) }
	require.NoError(t, SortFunc[int](split.Slice[int](xs), desc, stations.WithThreadCount(2)))
	assert.Equal(t, []int{9, 7, 4, 1}, xs)
}

func TestMergeSorted(t *testing.T) {
	type pair struct{ k, src int }
	a := []pair{{1, 0}, {3, 0}, {3, 0}}
	b := []pair{{2, 1}, {3, 1}, {4, 1}}

	got := mergeSorted(a, b, func(x, y pair) int { return cmp.Compare(x.k, y.k) })
	assert.Equal(t, []pair{{1, 0}, {2, 1}, {3, 0}, {3, 0}, {3, 1}, {4, 1}}, got)

	assert.Equal(t, b, mergeSorted(nil, b, func(x, y pair) int { return 0 }))
	assert.Equal(t, a, mergeSorted(a, nil, func(x, y pair) int { return 0 }))
}
