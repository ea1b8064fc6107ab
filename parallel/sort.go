package parallel

import (
	"cmp"
	"slices"

	"github.com/tahsin716/stations"
	"github.com/tahsin716/stations/partition"
	"github.com/tahsin716/stations/split"
)

// Sort sorts r in ascending order.
func Sort[T cmp.Ordered](r split.MutableRange[T], opts ...stations.Option) error {
	return SortFunc(r, cmp.Compare[T], opts...)
}

// SortFunc sorts r using cmp.
//
// The input is copied into P segments, P being the largest power of two not
// above the thread count. Each segment is sorted on its own thread, then
// adjacent pairs are merged in rounds, each round on a station sized to the
// number of pairs, until one segment remains. The result is written back into
// r. Merging prefers the left segment on ties, so equal elements keep their
// original order.
func SortFunc[T any](r split.MutableRange[T], cmp func(a, b T) int, opts ...stations.Option) error {
	cfg, err := stations.BuildConfig(opts...)
	if err != nil {
		return err
	}

	n := r.Len()
	if n < 2 {
		return nil
	}

	segs, err := split.SplitRange(r, partition.HighestPowerOfTwo(cfg.ThreadCount))
	if err != nil {
		return err
	}

	err = fanOut(cfg, len(segs), func(i int) {
		slices.SortStableFunc(segs[i], cmp)
	})
	if err != nil {
		return err
	}

	for len(segs) > 1 {
		merged := make([][]T, len(segs)/2)
		err = fanOut(cfg, len(merged), func(i int) {
			merged[i] = mergeSorted(segs[2*i], segs[2*i+1], cmp)
		})
		if err != nil {
			return err
		}
		segs = merged
	}

	sorted := segs[0]
	i := 0
	r.Update(0, n, func(v *T) {
		*v = sorted[i]
		i++
	})
	return nil
}

// fanOut runs fn(0) .. fn(n-1) on a station of n threads, pinning call i to
// thread i. The last call runs on the boss.
func fanOut(cfg stations.Config, n int, fn func(i int)) error {
	st, err := stations.New(
		stations.WithConfig(cfg),
		stations.WithThreadCount(n),
		stations.WithMaxQueueDepth(1),
	)
	if err != nil {
		return err
	}
	defer st.Close()

	for i := range n {
		if err := st.SubmitTo(i, func() { fn(i) }); err != nil {
			return err
		}
	}

	_, err = st.Join()
	return err
}

// mergeSorted merges two sorted slices into a new one
func mergeSorted[T any](a, b []T, cmp func(a, b T) int) []T {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}

	out := make([]T, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if cmp(b[j], a[i]) < 0 {
			out = append(out, b[j])
			j++
		} else {
			out = append(out, a[i])
			i++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}
