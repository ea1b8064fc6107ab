package parallel

import (
	"sync/atomic"

	"github.com/tahsin716/stations"
	"github.com/tahsin716/stations/partition"
	"github.com/tahsin716/stations/split"
)

// plan resolves the options and partitions a range of n items.
func plan(n int, opts []stations.Option) (stations.Config, []int, error) {
	cfg, err := stations.BuildConfig(opts...)
	if err != nil {
		return stations.Config{}, nil, err
	}
	bounds, err := cfg.Partition(n)
	if err != nil {
		return stations.Config{}, nil, err
	}
	return cfg, bounds, nil
}

// dispatch submits task once per partition of bounds and joins the station.
// Submission stops early once stop reports true; partitions already handed
// out still run to completion.
func dispatch(cfg stations.Config, bounds []int, stop func() bool, task func(i, lo, hi int)) error {
	st, err := stations.New(stations.WithConfig(cfg))
	if err != nil {
		return err
	}
	defer st.Close()

	for i := range partition.Count(bounds) {
		if stop != nil && stop() {
			break
		}
		lo, hi := bounds[i], bounds[i+1]
		if err := st.Submit(func() { task(i, lo, hi) }); err != nil {
			return err
		}
	}

	_, err = st.Join()
	return err
}

// Count returns the number of elements of r equal to value.
func Count[T comparable](r split.Range[T], value T, opts ...stations.Option) (int, error) {
	return CountIf(r, func(v T) bool { return v == value }, opts...)
}

// CountIf returns the number of elements of r for which pred is true.
// Each partition counts into its own accumulator; the accumulators are summed
// after the station is joined.
func CountIf[T any](r split.Range[T], pred func(T) bool, opts ...stations.Option) (int, error) {
	cfg, bounds, err := plan(r.Len(), opts)
	if err != nil {
		return 0, err
	}
	if r.Len() == 0 {
		return 0, nil
	}

	counts := make([]int, partition.Count(bounds))
	err = dispatch(cfg, bounds, nil, func(i, lo, hi int) {
		n := 0
		for v := range r.All(lo, hi) {
			if pred(v) {
				n++
			}
		}
		counts[i] = n
	})
	if err != nil {
		return 0, err
	}

	sum := 0
	for _, n := range counts {
		sum += n
	}
	return sum, nil
}

// AllOf reports whether pred holds for every element of r.
// Once a partition finds a counterexample no further partitions are
// submitted.
func AllOf[T any](r split.Range[T], pred func(T) bool, opts ...stations.Option) (bool, error) {
	found, err := search(r, func(v T) bool { return !pred(v) }, opts)
	return !found, err
}

// AnyOf reports whether pred holds for at least one element of r.
// Once a partition finds a match no further partitions are submitted.
func AnyOf[T any](r split.Range[T], pred func(T) bool, opts ...stations.Option) (bool, error) {
	return search(r, pred, opts)
}

// NoneOf reports whether pred holds for no element of r.
func NoneOf[T any](r split.Range[T], pred func(T) bool, opts ...stations.Option) (bool, error) {
	found, err := AnyOf(r, pred, opts...)
	if err != nil {
		return false, err
	}
	return !found, nil
}

// search reports whether match holds for some element of r. The shared flag
// is checked before each submission.
func search[T any](r split.Range[T], match func(T) bool, opts []stations.Option) (bool, error) {
	cfg, bounds, err := plan(r.Len(), opts)
	if err != nil {
		return false, err
	}
	if r.Len() == 0 {
		return false, nil
	}

	var found atomic.Bool
	err = dispatch(cfg, bounds, found.Load, func(_, lo, hi int) {
		for v := range r.All(lo, hi) {
			if match(v) {
				found.Store(true)
				return
			}
		}
	})
	if err != nil {
		return false, err
	}
	return found.Load(), nil
}

// ForEach calls fn for every element of r. Calls for different partitions
// run concurrently, so fn must be safe for concurrent use.
func ForEach[T any](r split.Range[T], fn func(T), opts ...stations.Option) error {
	cfg, bounds, err := plan(r.Len(), opts)
	if err != nil {
		return err
	}
	if r.Len() == 0 {
		return nil
	}

	return dispatch(cfg, bounds, nil, func(_, lo, hi int) {
		for v := range r.All(lo, hi) {
			fn(v)
		}
	})
}

// Update calls fn with a pointer to every element of r, allowing in-place
// modification. Each partition is updated by exactly one task.
func Update[T any](r split.MutableRange[T], fn func(*T), opts ...stations.Option) error {
	cfg, bounds, err := plan(r.Len(), opts)
	if err != nil {
		return err
	}
	if r.Len() == 0 {
		return nil
	}

	return dispatch(cfg, bounds, nil, func(_, lo, hi int) {
		r.Update(lo, hi, fn)
	})
}

// Fill assigns value to every element of r.
func Fill[T any](r split.MutableRange[T], value T, opts ...stations.Option) error {
	return Update(r, func(v *T) { *v = value }, opts...)
}
