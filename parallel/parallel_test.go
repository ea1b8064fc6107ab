package parallel

import (
	"container/list"
	"fmt"
	"math/rand"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahsin716/stations"
	"github.com/tahsin716/stations/split"
)

var policies = []stations.AdmissionPolicy{
	stations.EagerBoss,
	stations.PatientBoss,
	stations.OrganizedBoss,
}

// ============================================================================
// Count
// ============================================================================

func TestCount_Zeros(t *testing.T) {
	n := 10_000_000
	if testing.Short() {
		n = 100_000
	}

	xs := make([]int, n)
	for i := range 10 {
		xs[i*(n/10)] = i + 1
	}
	want := n - 10

	for threads := 1; threads <= 8; threads++ {
		t.Run(fmt.Sprintf("threads=%d", threads), func(t *testing.T) {
			got, err := Count[int](split.Slice[int](xs), 0, stations.WithThreadCount(threads))
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestCountIf_MatchesSerial(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	xs := make([]int, 12345)
	for i := range xs {
		xs[i] = rng.Intn(1000) - 500
	}
	even := func(v int) bool { return v%2 == 0 }

	want := 0
	for _, v := range xs {
		if even(v) {
			want++
		}
	}

	for _, policy := range policies {
		for _, chunk := range []int{0, 1, 100, 20000} {
			got, err := CountIf[int](split.Slice[int](xs), even,
				stations.WithThreadCount(4),
				stations.WithAdmissionPolicy(policy),
				stations.WithChunkSize(chunk),
			)
			require.NoError(t, err)
			assert.Equal(t, want, got, "%s chunk=%d", policy, chunk)
		}
	}
}

func TestCount_List(t *testing.T) {
	l := list.New()
	for i := range 100 {
		l.PushBack(i % 3)
	}

	got, err := Count[int](split.NewList[int](l), 2, stations.WithThreadCount(4))
	require.NoError(t, err)
	assert.Equal(t, 33, got)
}

// ============================================================================
// Predicates
// ============================================================================

func TestPredicates(t *testing.T) {
	positive := func(v int) bool { return v > 0 }

	tests := []struct {
		name           string
		in             []int
		all, any, none bool
	}{
		{"all positive", []int{1, 2, 3, 4, 5}, true, true, false},
		{"one negative", []int{1, 2, -3, 4, 5}, false, true, false},
		{"none positive", []int{-1, -2, 0}, false, false, true},
	}

	for _, tt := range tests {
		for threads := 1; threads <= 4; threads++ {
			opt := stations.WithThreadCount(threads)
			r := split.Slice[int](tt.in)

			all, err := AllOf[int](r, positive, opt)
			require.NoError(t, err)
			assert.Equal(t, tt.all, all, "%s AllOf threads=%d", tt.name, threads)

			anyOf, err := AnyOf[int](r, positive, opt)
			require.NoError(t, err)
			assert.Equal(t, tt.any, anyOf, "%s AnyOf threads=%d", tt.name, threads)

			none, err := NoneOf[int](r, positive, opt)
			require.NoError(t, err)
			assert.Equal(t, tt.none, none, "%s NoneOf threads=%d", tt.name, threads)
		}
	}
}

func TestEmptyRange_Identities(t *testing.T) {
	var empty split.Slice[int]
	never := func(int) bool {
		t.Fatal("predicate called on an empty range")
		return false
	}

	n, err := Count[int](empty, 0)
	require.NoError(t, err)
	assert.Zero(t, n)

	all, err := AllOf[int](empty, never)
	require.NoError(t, err)
	assert.True(t, all)

	anyOf, err := AnyOf[int](empty, never)
	require.NoError(t, err)
	assert.False(t, anyOf)

	none, err := NoneOf[int](empty, never)
	require.NoError(t, err)
	assert.True(t, none)

	require.NoError(t, ForEach[int](empty, func(int) { t.Fatal("called") }))
	require.NoError(t, Fill[int](empty, 1))
	require.NoError(t, Sort[int](empty))
}

func TestAnyOf_StopsSubmitting(t *testing.T) {
	xs := make([]int, 1000)
	xs[0] = 1

	var visited atomic.Int64
	found, err := AnyOf[int](split.Slice[int](xs), func(v int) bool {
		visited.Add(1)
		return v == 1
	}, stations.WithThreadCount(1), stations.WithChunkSize(10))
	require.NoError(t, err)

	assert.True(t, found)
	// a single thread runs every partition before the next submission
	assert.Equal(t, int64(1), visited.Load())
}

// ============================================================================
// Mutation
// ============================================================================

func TestFill(t *testing.T) {
	for _, policy := range policies {
		xs := make([]string, 1001)
		err := Fill[string](split.Slice[string](xs), "x",
			stations.WithThreadCount(3),
			stations.WithAdmissionPolicy(policy),
		)
		require.NoError(t, err)
		for i, v := range xs {
			require.Equal(t, "x", v, "index %d", i)
		}
	}
}

func TestFill_List(t *testing.T) {
	l := list.New()
	for range 10 {
		l.PushBack(0)
	}

	require.NoError(t, Fill[int](split.NewList[int](l), 7, stations.WithThreadCount(3)))
	for e := l.Front(); e != nil; e = e.Next() {
		assert.Equal(t, 7, e.Value)
	}
}

func TestForEach_VisitsEveryElement(t *testing.T) {
	xs := make([]int, 5000)
	for i := range xs {
		xs[i] = i
	}

	var sum atomic.Int64
	err := ForEach[int](split.Slice[int](xs), func(v int) { sum.Add(int64(v)) },
		stations.WithThreadCount(5),
		stations.WithChunkSize(7),
	)
	require.NoError(t, err)
	assert.Equal(t, int64(5000*4999/2), sum.Load())
}

func TestUpdate_Doubles(t *testing.T) {
	xs := []int{1, 2, 3, 4, 5, 6, 7}
	require.NoError(t, Update[int](split.Slice[int](xs), func(v *int) { *v *= 2 },
		stations.WithThreadCount(3)))
	assert.Equal(t, []int{2, 4, 6, 8, 10, 12, 14}, xs)
}

// ============================================================================
// Failures
// ============================================================================

func TestPanickingPredicate(t *testing.T) {
	xs := make([]int, 100)
	_, err := CountIf[int](split.Slice[int](xs), func(int) bool { panic("bad predicate") },
		stations.WithThreadCount(3))
	require.Error(t, err)

	var pe *stations.PanicError
	assert.ErrorAs(t, err, &pe)
}

func TestInvalidOptions(t *testing.T) {
	xs := []int{1, 2, 3}

	_, err := Count[int](split.Slice[int](xs), 1, stations.WithMaxQueueDepth(0))
	assert.ErrorIs(t, err, stations.ErrInvalidConfig)

	err = Sort[int](split.Slice[int](xs), stations.WithThreadCount(-2))
	assert.ErrorIs(t, err, stations.ErrInvalidConfig)
}
