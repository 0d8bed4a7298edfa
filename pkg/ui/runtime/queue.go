package runtime

import (
	"context"
	"sync"
	"time"

	"github.com/odvcencio/cellkit/pkg/ui/event"
)

// item is one unit of work for the dispatch loop: an event, a task, or the
// stop marker.
type item struct {
	ev       event.Event
	task     func()
	stop     bool
	enqueued time.Time
}

func (it item) kind() string {
	switch {
	case it.stop:
		return "stop"
	case it.task != nil:
		return "task"
	default:
		return "event"
	}
}

// Queue is the unbounded FIFO feeding the dispatch loop. Posting never
// blocks and is safe from any goroutine; items from one goroutine are popped
// in the order they were posted.
type Queue struct {
	mu      sync.Mutex
	items   []item
	stopped bool
	wake    chan struct{}

	onDepth func(int)
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{wake: make(chan struct{}, 1)}
}

func (q *Queue) push(it item) bool {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return false
	}
	it.enqueued = time.Now()
	q.items = append(q.items, it)
	depth := len(q.items)
	q.mu.Unlock()

	q.notify(depth)
	return true
}

func (q *Queue) notify(depth int) {
	if q.onDepth != nil {
		q.onDepth(depth)
	}
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Post enqueues ev. Posts after Stop are dropped.
func (q *Queue) Post(ev event.Event) {
	if ev == nil {
		return
	}
	q.push(item{ev: ev})
}

// TryPost is Post that reports whether ev was accepted.
func (q *Queue) TryPost(ev event.Event) bool {
	if ev == nil {
		return false
	}
	return q.push(item{ev: ev})
}

// InvokeLater enqueues fn to run on the dispatch loop.
func (q *Queue) InvokeLater(fn func()) {
	if fn == nil {
		return
	}
	q.push(item{task: fn})
}

// Stop discards every queued item and leaves only the stop marker. An item
// already being dispatched finishes; anything posted afterwards is dropped.
func (q *Queue) Stop() {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return
	}
	q.stopped = true
	for i := range q.items {
		q.items[i] = item{}
	}
	q.items = append(q.items[:0], item{stop: true, enqueued: time.Now()})
	q.mu.Unlock()

	q.notify(1)
}

// Stopped reports whether Stop has been called.
func (q *Queue) Stopped() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.stopped
}

// Len returns the number of queued items.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// pop blocks until an item is available or ctx is done.
func (q *Queue) pop(ctx context.Context) (item, error) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			it := q.items[0]
			q.items[0] = item{}
			q.items = q.items[1:]
			depth := len(q.items)
			q.mu.Unlock()
			if q.onDepth != nil {
				q.onDepth(depth)
			}
			return it, nil
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return item{}, ctx.Err()
		case <-q.wake:
		}
	}
}
