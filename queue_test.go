package stations

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Basic Functionality
// ============================================================================

func TestWorkQueue_FIFO(t *testing.T) {
	q := newWorkQueue()

	var order []int
	for i := range 5 {
		q.enqueue(func() { order = append(order, i) })
	}
	assert.Equal(t, 5, q.pendingCount())

	for range 5 {
		task, done := q.take()
		require.NotNil(t, task)
		require.False(t, done)
		task()
		q.finish(false)
	}

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
	assert.Equal(t, 0, q.pendingCount())
	assert.Equal(t, uint64(5), q.completedCount())
	assert.Equal(t, uint64(0), q.failedCount())
}

func TestWorkQueue_PendingIncludesRunning(t *testing.T) {
	q := newWorkQueue()
	q.enqueue(func() {})

	task, _ := q.take()
	require.NotNil(t, task)
	assert.Equal(t, 1, q.pendingCount(), "a taken task counts until finish")

	q.finish(true)
	assert.Equal(t, 0, q.pendingCount())
	assert.Equal(t, uint64(1), q.failedCount())
}

func TestWorkQueue_EmptyAndTerminated(t *testing.T) {
	q := newWorkQueue()

	task, done := q.take()
	assert.Nil(t, task)
	assert.False(t, done, "empty but not terminated")

	q.enqueue(func() {})
	q.markTerminated()
	q.markTerminated() // idempotent

	task, done = q.take()
	assert.NotNil(t, task, "termination must not discard pending tasks")
	assert.False(t, done)
	q.finish(false)

	task, done = q.take()
	assert.Nil(t, task)
	assert.True(t, done)
}

// ============================================================================
// Parking
// ============================================================================

func TestWorkQueue_ParkWakesOnEnqueue(t *testing.T) {
	q := newWorkQueue()

	parked := make(chan struct{})
	woke := make(chan struct{})
	go func() {
		close(parked)
		q.park(10 * time.Second)
		close(woke)
	}()

	<-parked
	q.enqueue(func() {})

	select {
	case <-woke:
	case <-time.After(5 * time.Second):
		t.Fatal("park did not return after enqueue")
	}
}

func TestWorkQueue_ParkTimesOut(t *testing.T) {
	q := newWorkQueue()

	start := time.Now()
	q.park(5 * time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
}

func TestWorkQueue_ParkReturnsWhenTerminated(t *testing.T) {
	q := newWorkQueue()
	q.markTerminated()

	start := time.Now()
	q.park(10 * time.Second)
	assert.Less(t, time.Since(start), 5*time.Second)
}

// ============================================================================
// Concurrency
// ============================================================================

func TestWorkQueue_ProducerConsumer(t *testing.T) {
	const numTasks = 10000
	q := newWorkQueue()

	var got []int
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			task, done := q.take()
			if task != nil {
				task()
				q.finish(false)
				continue
			}
			if done {
				return
			}
			q.park(time.Millisecond)
		}
	}()

	for i := range numTasks {
		q.enqueue(func() { got = append(got, i) })
	}
	q.markTerminated()
	wg.Wait()

	require.Len(t, got, numTasks)
	for i, v := range got {
		require.Equal(t, i, v)
	}
	assert.Equal(t, uint64(numTasks), q.completedCount())
	assert.Equal(t, 0, q.pendingCount())
}
