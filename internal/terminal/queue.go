package terminal

import (
	"context"
	"errors"
	"sync"
)

// ErrQueueClosed is returned by Pop once the queue is closed and drained.
var ErrQueueClosed = errors.New("key queue closed")

// Queue is an unbounded FIFO of key events connecting one producer to one
// consumer. Push never blocks; Pop blocks until an event is available, the
// queue is closed, or the context is done.
type Queue struct {
	mu     sync.Mutex
	items  []KeyEvent
	closed bool
	notify chan struct{}
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{notify: make(chan struct{}, 1)}
}

// Push appends an event. Events pushed after Close are dropped.
func (q *Queue) Push(ev KeyEvent) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.items = append(q.items, ev)
	q.mu.Unlock()

	q.signal()
}

// Close marks the end of input. Pending events can still be popped.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	q.signal()
}

// Len returns the number of buffered events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Pop removes and returns the oldest event. Buffered events are always
// returned before a context or close error.
func (q *Queue) Pop(ctx context.Context) (KeyEvent, error) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			ev := q.items[0]
			q.items[0] = KeyEvent{}
			q.items = q.items[1:]
			q.mu.Unlock()
			return ev, nil
		}
		closed := q.closed
		q.mu.Unlock()

		if closed {
			return KeyEvent{}, ErrQueueClosed
		}

		select {
		case <-q.notify:
		case <-ctx.Done():
			return KeyEvent{}, ctx.Err()
		}
	}
}

func (q *Queue) signal() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}
