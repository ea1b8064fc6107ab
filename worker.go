package stations

import (
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// WorkerState represents the current state of a worker
type WorkerState int32

const (
	StateRunning WorkerState = iota
	StateSpinning
	StateParked
	StateStopped
)

// String returns the state name used in WorkerStats.
func (s WorkerState) String() string {
	switch s {
	case StateRunning:
		return "RUNNING"
	case StateSpinning:
		return "SPINNING"
	case StateParked:
		return "PARKED"
	case StateStopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}

// worker drives one workQueue on its own goroutine
type worker struct {
	id      int // 0-based; reported as thread id+1, the boss is thread 0
	station *Station
	queue   *workQueue
	state   atomic.Int32
	pending prometheus.Gauge

	// errs is owned by the worker goroutine until run returns
	errs []error
}

func newWorker(id int, st *Station) *worker {
	w := &worker{
		id:      id,
		station: st,
		queue:   newWorkQueue(),
		pending: st.config.Metrics.pendingGauge(id + 1),
	}
	w.state.Store(int32(StateRunning))
	return w
}

// run is the main worker loop. It executes tasks in FIFO order until the
// queue is both empty and terminated.
func (w *worker) run() error {
	cfg := &w.station.config
	if cfg.PinWorkerThreads {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
	}
	if cfg.OnWorkerStart != nil {
		cfg.OnWorkerStart(w.id)
	}

	idle := 0
	for {
		task, done := w.queue.take()
		if task != nil {
			idle = 0
			w.setState(StateRunning)
			w.execute(task)
			continue
		}
		if done {
			break
		}

		// Phase 1: yield a few times, work usually arrives in bursts
		if idle < cfg.SpinCount {
			w.setState(StateSpinning)
			idle++
			runtime.Gosched()
			continue
		}

		// Phase 2: park until woken by enqueue or the timeout
		w.setState(StateParked)
		w.queue.park(cfg.MaxParkTime)
	}

	w.setState(StateStopped)
	if cfg.OnWorkerStop != nil {
		cfg.OnWorkerStop(w.id)
	}

	if len(w.errs) > 0 {
		return fmt.Errorf("thread %d: %w", w.id+1, errors.Join(w.errs...))
	}
	return nil
}

// execute runs one task and records its outcome
func (w *worker) execute(task func()) {
	start := time.Now()
	err := w.station.invoke(task)
	w.station.config.Metrics.observe(time.Since(start), err != nil)

	if err != nil {
		w.errs = append(w.errs, &TaskError{Thread: w.id + 1, Err: err})
	}
	w.queue.finish(err != nil)
	w.pending.Dec()
	w.station.signalRoom()
}

func (w *worker) setState(s WorkerState) {
	w.state.Store(int32(s))
}

func (w *worker) getState() WorkerState {
	return WorkerState(w.state.Load())
}
