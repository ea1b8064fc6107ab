package stations

// Stats is a snapshot of station activity. Join returns the final Stats;
// Station.Stats returns a live one whose counters may be mid-update.
//
// Example:
//
//	stats, err := st.Join()
//	fmt.Printf("boss ran %d of %d tasks\n", stats.BossCompleted, stats.Completed)
type Stats struct {
	// ThreadCount is the pool size including the boss
	ThreadCount int

	// Completed is the number of tasks that finished on any thread,
	// including tasks that panicked
	Completed uint64

	// Failed is the number of tasks that panicked
	Failed uint64

	// Pending is the number of tasks queued or running on workers
	Pending int

	// BossCompleted is the number of tasks the boss ran itself
	BossCompleted uint64

	// BossFailed is the number of boss tasks that panicked
	BossFailed uint64

	// WorkerStats has one entry per worker thread, in thread order
	WorkerStats []WorkerStats
}

// WorkerStats contains statistics for one worker thread.
type WorkerStats struct {
	// Thread is the 1-based thread number; the boss is thread 0
	Thread int

	// Completed is the number of tasks this worker has executed
	Completed uint64

	// Failed is the number of those tasks that panicked
	Failed uint64

	// Pending is the number of tasks queued or running on this worker
	Pending int

	// State is the worker state: RUNNING, SPINNING, PARKED or STOPPED
	State string
}

// Stats returns a live snapshot of the station counters.
func (s *Station) Stats() Stats {
	out := Stats{
		ThreadCount:   s.config.ThreadCount,
		BossCompleted: s.bossCompleted.Load(),
		BossFailed:    s.bossFailed.Load(),
		WorkerStats:   make([]WorkerStats, len(s.workers)),
	}
	out.Completed = out.BossCompleted
	out.Failed = out.BossFailed

	for i, w := range s.workers {
		ws := WorkerStats{
			Thread:    w.id + 1,
			Completed: w.queue.completedCount(),
			Failed:    w.queue.failedCount(),
			Pending:   w.queue.pendingCount(),
			State:     w.getState().String(),
		}
		out.WorkerStats[i] = ws
		out.Completed += ws.Completed
		out.Failed += ws.Failed
		out.Pending += ws.Pending
	}
	return out
}
