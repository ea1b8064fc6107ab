// Package parallel provides data-parallel algorithms built on stations.
//
// Every algorithm follows the same pipeline: the input range is cut into
// partitions by the station configuration (see stations.Config.Partition),
// one task per partition is submitted to a fresh station, the station is
// joined, and the partial results are reduced. Partial results are only read
// after Join returns.
//
// The configuration is given with the usual station options:
//
//	n, err := parallel.CountIf[int](split.Slice[int](ints), isPrime,
//	    stations.WithThreadCount(8),
//	    stations.WithChunkSize(len(ints)/100),
//	)
//
// A task that panics does not abort the others. The algorithm returns the
// *stations.AggregateError from Join and no result.
//
// Empty inputs return the identity of the reduction without starting any
// goroutine: 0 for the counts, true for AllOf and NoneOf, false for AnyOf.
package parallel
