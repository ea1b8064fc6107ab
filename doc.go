// Package stations provides a fixed-size worker pool, the station, built for
// data-parallel algorithms.
//
// A station of ThreadCount n starts n-1 worker goroutines, each bound to its
// own FIFO work queue. The goroutine that submits work is the boss and acts as
// the n-th thread: depending on the admission policy it runs tasks itself when
// every queue is full. Tasks on one queue run strictly in submission order;
// there is no ordering across queues.
//
// # Quick Start
//
//	st, err := stations.New(stations.WithThreadCount(4))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer st.Close()
//
//	for i := 0; i < 100; i++ {
//	    if err := st.Submit(func() { work(i) }); err != nil {
//	        log.Printf("submit failed: %v", err)
//	    }
//	}
//
//	stats, err := st.Join() // blocks until every worker drained its queue
//
// # Admission Policies
//
// Submit picks the worker with the fewest pending tasks (queued or running),
// lowest index first on ties. When that worker is at MaxQueueDepth:
//
//   - EagerBoss: the boss runs the task synchronously and never blocks.
//   - PatientBoss (default): the boss waits with bounded backoff until a
//     queue has room. It never runs tasks itself, so even partitioning gives
//     it no share of the work.
//   - OrganizedBoss: the task is queued anyway; the depth limit is ignored.
//
// SubmitTo routes a task to a fixed thread (id mod ThreadCount), bypassing
// load balancing and the depth limit. The last index is the boss.
//
// A task the boss runs executes outside the station lock, so it may submit
// further tasks or join the station. A task running on a worker must not
// call Join or Close: Join waits for that worker to exit.
//
// # Failures
//
// A panicking task is recovered, counted as failed for its thread and passed
// to the PanicHandler. It does not stop other tasks. Join returns every
// failure in an *AggregateError, boss first, then workers in thread order.
//
// # Diagnostics
//
// Verbosity 1 logs warnings (task panics, a patient boss waiting longer than
// MaxParkTime) and verbosity 2 also logs per-thread task counts on Join,
// through logrus. Prometheus collectors can be attached with WithMetrics.
//
// WithPinWorkerThreads locks each worker goroutine to its own OS thread. This
// can help cache locality for long CPU bound runs, at the cost of scheduler
// flexibility.
//
// # Partitioning
//
// Config.Partition cuts a range into the partitions an algorithm submits: an
// even split over the threads (minus the boss under PatientBoss) with the
// remainder spread over the first partitions, or fixed chunks of ChunkSize.
// The algorithms themselves live in the parallel subpackage.
package stations
