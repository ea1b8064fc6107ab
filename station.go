package stations

import (
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Station is a fixed pool of worker goroutines, each bound to its own FIFO
// queue, plus the submitting goroutine acting as the boss.
//
// A station of ThreadCount n runs n-1 workers. With n == 1 every task runs
// synchronously on the caller.
type Station struct {
	config  Config
	workers []*worker
	log     *log.Entry

	// mu guards joined against in-flight submissions
	mu     sync.RWMutex
	joined bool
	eg     errgroup.Group

	// room is signalled by workers whenever a task finishes
	room chan struct{}

	bossCompleted atomic.Uint64
	bossFailed    atomic.Uint64
	bossMu        sync.Mutex
	bossErrs      []error

	joinOnce sync.Once
	stats    Stats
	joinErr  error
}

// New creates a station and starts its workers.
// It returns an error if the configuration is invalid; no goroutine is
// started in that case.
//
// Example:
//
//	st, err := stations.New(
//	    stations.WithThreadCount(4),
//	    stations.WithAdmissionPolicy(stations.EagerBoss),
//	)
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
func New(opts ...Option) (*Station, error) {
	cfg, err := BuildConfig(opts...)
	if err != nil {
		return nil, err
	}

	st := &Station{
		config:  cfg,
		workers: make([]*worker, cfg.ThreadCount-1),
		log:     cfg.Logger,
		room:    make(chan struct{}, 1),
	}

	for i := range st.workers {
		st.workers[i] = newWorker(i, st)
	}
	for _, w := range st.workers {
		st.eg.Go(w.run)
	}

	return st, nil
}

// Submit hands task to the least loaded worker, subject to the admission
// policy. With a single thread the task runs synchronously on the caller.
//
// A task run by the boss holds no station lock and may itself call Submit,
// Join or Close. A task run by a worker must not call Join or Close.
//
// Returns ErrNilTask if task is nil and ErrStationJoined after Join.
func (s *Station) Submit(task func()) error {
	if task == nil {
		return ErrNilTask
	}

	s.mu.RLock()
	if s.joined {
		s.mu.RUnlock()
		return ErrStationJoined
	}
	if w := s.admit(); w != nil {
		s.enqueue(w, task)
		s.mu.RUnlock()
		return nil
	}
	s.mu.RUnlock()

	s.runBoss(task)
	return nil
}

// admit picks the worker queue for the next task under the admission policy.
// It returns nil when the boss should run the task itself.
func (s *Station) admit() *worker {
	if len(s.workers) == 0 {
		return nil
	}

	w, pending := s.leastLoaded()
	if pending < s.config.MaxQueueDepth {
		return w
	}
	switch s.config.AdmissionPolicy {
	case EagerBoss:
		return nil
	case PatientBoss:
		return s.waitForRoom()
	default:
		return w
	}
}

// SubmitTo routes task to thread threadID mod ThreadCount, bypassing load
// balancing and MaxQueueDepth. The last thread index is the boss, which runs
// the task synchronously.
func (s *Station) SubmitTo(threadID int, task func()) error {
	if task == nil {
		return ErrNilTask
	}
	if threadID < 0 {
		return ErrInvalidThreadID
	}

	s.mu.RLock()
	if s.joined {
		s.mu.RUnlock()
		return ErrStationJoined
	}
	idx := threadID % s.config.ThreadCount
	if idx < len(s.workers) {
		s.enqueue(s.workers[idx], task)
		s.mu.RUnlock()
		return nil
	}
	s.mu.RUnlock()

	s.runBoss(task)
	return nil
}

// Join marks every queue terminated, waits for all workers to drain and
// exit, and returns the final statistics. Failed tasks are reported as an
// *AggregateError. Join is idempotent: later calls return the same result.
// A task the boss is still running when Join is called is not counted.
func (s *Station) Join() (Stats, error) {
	s.joinOnce.Do(func() {
		s.mu.Lock()
		s.joined = true
		s.mu.Unlock()

		for _, w := range s.workers {
			w.queue.markTerminated()
		}

		werr := s.eg.Wait()
		s.stats = s.Stats()

		s.bossMu.Lock()
		failed := werr != nil || len(s.bossErrs) > 0
		errs := append([]error(nil), s.bossErrs...)
		s.bossMu.Unlock()

		if failed {
			for _, w := range s.workers {
				errs = append(errs, w.errs...)
			}
			s.joinErr = &AggregateError{Errors: errs}
		}

		s.report()
	})
	return s.stats, s.joinErr
}

// Close joins the station and discards the statistics. It is meant for
// defer, so the workers are released on every return path.
func (s *Station) Close() error {
	_, err := s.Join()
	return err
}

// ThreadCount returns the pool size including the boss.
func (s *Station) ThreadCount() int {
	return s.config.ThreadCount
}

// Config returns the normalized configuration of the station.
func (s *Station) Config() Config {
	return s.config
}

// leastLoaded returns the worker with the fewest pending tasks. Ties go to
// the lowest index, and an idle worker ends the scan since nothing beats it.
func (s *Station) leastLoaded() (*worker, int) {
	best := s.workers[0]
	bestN := best.queue.pendingCount()
	for _, w := range s.workers[1:] {
		if bestN == 0 {
			break
		}
		if n := w.queue.pendingCount(); n < bestN {
			best, bestN = w, n
		}
	}
	return best, bestN
}

// waitForRoom blocks until some worker is below MaxQueueDepth. It yields
// first, then waits for a completion signal with a timeout that doubles up to
// MaxParkTime, rescanning the queues after every wake-up.
func (s *Station) waitForRoom() *worker {
	start := time.Now()
	warned := false
	delay := time.Microsecond
	timer := time.NewTimer(delay)
	defer timer.Stop()

	for attempt := 0; ; attempt++ {
		if attempt < s.config.SpinCount {
			runtime.Gosched()
		} else {
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(delay)
			select {
			case <-s.room:
			case <-timer.C:
			}
			delay = min(delay*2, s.config.MaxParkTime)
		}

		if w, n := s.leastLoaded(); n < s.config.MaxQueueDepth {
			return w
		}

		if !warned && s.config.Verbosity >= 1 && time.Since(start) > s.config.MaxParkTime {
			warned = true
			s.log.WithField("max_queue_depth", s.config.MaxQueueDepth).
				Warn("boss is waiting for room in the worker queues")
		}
	}
}

// signalRoom wakes a waiting boss, if any
func (s *Station) signalRoom() {
	select {
	case s.room <- struct{}{}:
	default:
	}
}

func (s *Station) enqueue(w *worker, task func()) {
	w.pending.Inc()
	w.queue.enqueue(task)
	s.config.Metrics.submitted("worker")
}

// runBoss executes task on the calling goroutine
func (s *Station) runBoss(task func()) {
	s.config.Metrics.submitted("boss")

	start := time.Now()
	err := s.invoke(task)
	s.config.Metrics.observe(time.Since(start), err != nil)

	if err != nil {
		s.bossFailed.Add(1)
		s.bossMu.Lock()
		s.bossErrs = append(s.bossErrs, &TaskError{Thread: 0, Err: err})
		s.bossMu.Unlock()
	}
	s.bossCompleted.Add(1)
}

// invoke runs a task with panic recovery
func (s *Station) invoke(task func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: string(debug.Stack())}
			if s.config.PanicHandler != nil {
				s.config.PanicHandler(r)
			}
			if s.config.Verbosity >= 1 {
				s.log.WithField("panic", r).Warn("task panicked")
			}
		}
	}()

	task()
	return nil
}

// report logs the per-thread counters at verbosity 2
func (s *Station) report() {
	if s.config.Verbosity < 2 {
		return
	}

	s.log.Infof("Boss thread processed %d chunks.", s.stats.BossCompleted)
	for _, ws := range s.stats.WorkerStats {
		s.log.WithField("failed", ws.Failed).
			Infof("Thread %d processed %d chunks.", ws.Thread, ws.Completed)
	}
}
