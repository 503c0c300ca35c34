package event

import (
	"errors"
	"sync"

	"github.com/zyedidia/generic/queue"
)

// ErrQueueClosed is returned by Push once teardown has begun.
var ErrQueueClosed = errors.New("event queue closed")

// Queue is an unbounded FIFO of UIEvents.
// Thread-Safety:
//   - Push: any number of producers, never blocks
//   - Pop: single consumer (the engine goroutine), blocks until an event
//     arrives or the queue closes
//   - Close: idempotent, safe alongside an in-flight Pop
type Queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	events *queue.Queue[UIEvent]
	n      int
	closed bool
}

// NewQueue creates an empty open queue.
func NewQueue() *Queue {
	q := &Queue{events: queue.New[UIEvent]()}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends ev. It fails only after Close.
func (q *Queue) Push(ev UIEvent) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}
	q.events.Enqueue(ev)
	q.n++
	q.cond.Signal()
	return nil
}

// Pop removes and returns the oldest event, waiting for one if the queue is
// empty. Once the queue is closed it returns Shutdown immediately; events
// still buffered at that point are dropped.
func (q *Queue) Pop() UIEvent {
	q.mu.Lock()
	defer q.mu.Unlock()

	for !q.closed && q.events.Empty() {
		q.cond.Wait()
	}
	if q.closed {
		return Shutdown
	}
	q.n--
	return q.events.Dequeue()
}

// Close wakes every waiting Pop with Shutdown and rejects further pushes.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	q.cond.Broadcast()
}

// Closed reports whether Close has been called.
func (q *Queue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Len returns the number of buffered events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return 0
	}
	return q.n
}
