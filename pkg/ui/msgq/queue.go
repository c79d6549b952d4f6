// Package msgq provides the FIFO message queue shared between input
// producers and the single dispatcher goroutine.
package msgq

import (
	"sync"

	"github.com/emirpasic/gods/lists/doublylinkedlist"

	"github.com/odvcencio/wndkit/pkg/errors"
)

// Queue is a thread-safe FIFO. Enqueue never blocks; the consumer waits
// on Ready and then drains with Dequeue.
type Queue[T any] struct {
	mu       sync.Mutex
	list     *doublylinkedlist.List
	capacity int
	closed   bool
	ready    chan struct{}
}

// New creates a queue. A capacity of zero or less means unbounded.
func New[T any](capacity int) *Queue[T] {
	return &Queue[T]{
		list:     doublylinkedlist.New(),
		capacity: capacity,
		ready:    make(chan struct{}, 1),
	}
}

// Enqueue appends v at the tail.
func (q *Queue[T]) Enqueue(v T) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return errors.New(errors.ErrCodeQueueClosed, "queue closed")
	}
	if q.capacity > 0 && q.list.Size() >= q.capacity {
		q.mu.Unlock()
		return errors.Newf(errors.ErrCodeUnavailable, "queue full (%d)", q.capacity)
	}
	q.list.Append(v)
	q.mu.Unlock()

	q.notify()
	return nil
}

// Dequeue pops the head. The second result is false when the queue is
// empty.
func (q *Queue[T]) Dequeue() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	v, ok := q.list.Get(0)
	if !ok {
		return zero, false
	}
	q.list.Remove(0)
	return v.(T), true
}

// Remove evicts every queued value for which match returns true and
// reports how many were removed. Relative order of the rest is kept.
func (q *Queue[T]) Remove(match func(T) bool) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	before := q.list.Size()
	if before == 0 {
		return 0
	}
	q.list = q.list.Select(func(_ int, v interface{}) bool {
		return !match(v.(T))
	})
	return before - q.list.Size()
}

// Len returns the number of queued values.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.list.Size()
}

// Ready is signalled after every Enqueue and on Close. Several
// enqueues may collapse into one signal.
func (q *Queue[T]) Ready() <-chan struct{} {
	return q.ready
}

// Close rejects further Enqueue calls. Queued values stay available to
// Dequeue and Drain.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.notify()
}

// Closed reports whether Close has been called.
func (q *Queue[T]) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Drain removes and returns everything queued, head first.
func (q *Queue[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]T, 0, q.list.Size())
	it := q.list.Iterator()
	for it.Next() {
		out = append(out, it.Value().(T))
	}
	q.list.Clear()
	return out
}

func (q *Queue[T]) notify() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}
