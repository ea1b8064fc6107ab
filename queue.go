package stations

import (
	"sync"
	"sync/atomic"
	"time"
)

// node holds one task. Nodes are only ever appended to the tail, so a node
// the consumer holds stays valid while the producer links new ones.
type node struct {
	task func()
	next *node
}

// workQueue is the FIFO of one worker. Producers append under mu; the single
// consumer (the bound worker) removes under mu. The pending counter is read
// without the lock for load comparisons across queues.
type workQueue struct {
	mu         sync.Mutex
	cond       *sync.Cond
	head       *node // sentinel; head.next is the oldest pending task
	tail       *node
	terminated bool

	// pending counts enqueued tasks that have not finished, including the
	// one currently running
	pending   atomic.Int64
	completed atomic.Uint64
	failed    atomic.Uint64
}

func newWorkQueue() *workQueue {
	s := &node{}
	q := &workQueue{head: s, tail: s}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// enqueue appends task and wakes the consumer. It never blocks on the
// consumer and is safe to call while the consumer drains.
func (q *workQueue) enqueue(task func()) {
	n := &node{task: task}

	q.mu.Lock()
	q.tail.next = n
	q.tail = n
	q.pending.Add(1)
	q.cond.Signal()
	q.mu.Unlock()
}

// take removes the oldest task. It returns done=true once the queue is empty
// and terminated. Consumer only.
func (q *workQueue) take() (task func(), done bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := q.head.next
	if n == nil {
		return nil, q.terminated
	}
	q.head.next = n.next
	if q.head.next == nil {
		q.tail = q.head
	}
	return n.task, false
}

// finish records the end of a task returned by take. Consumer only.
func (q *workQueue) finish(failed bool) {
	q.completed.Add(1)
	if failed {
		q.failed.Add(1)
	}
	q.pending.Add(-1)
}

// park blocks until a task is enqueued, the queue is terminated, or d
// elapses, whichever comes first.
func (q *workQueue) park(d time.Duration) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head.next != nil || q.terminated {
		return
	}

	// the timer needs mu to signal, so it cannot fire before Wait releases it
	timer := time.AfterFunc(d, func() {
		q.mu.Lock()
		q.cond.Broadcast()
		q.mu.Unlock()
	})
	q.cond.Wait()
	timer.Stop()
}

// markTerminated signals that no further enqueue will occur. Tasks already
// pending still run. Idempotent.
func (q *workQueue) markTerminated() {
	q.mu.Lock()
	q.terminated = true
	q.cond.Broadcast()
	q.mu.Unlock()
}

func (q *workQueue) pendingCount() int {
	return int(q.pending.Load())
}

func (q *workQueue) completedCount() uint64 {
	return q.completed.Load()
}

func (q *workQueue) failedCount() uint64 {
	return q.failed.Load()
}
