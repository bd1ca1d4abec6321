package concurrency

import "sync"

// invalidationQueue is an unbounded FIFO of holders. Membership is tracked
// by holder identity so a holder is never queued twice.
type invalidationQueue[K comparable, V any] struct {
	mu      sync.Mutex
	cond    *sync.Cond
	items   []*holder[K, V]
	members map[*holder[K, V]]struct{}
	closed  bool
}

func newInvalidationQueue[K comparable, V any]() *invalidationQueue[K, V] {
	q := &invalidationQueue[K, V]{
		members: make(map[*holder[K, V]]struct{}),
	}
	q.cond = sync.NewCond(&q.mu)

	return q
}

type reserveResult int

const (
	reserved reserveResult = iota
	reserveQueued
	reserveClosed
)

// reserve marks h as queued unless it already is or the queue is closed.
func (q *invalidationQueue[K, V]) reserve(h *holder[K, V]) reserveResult {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return reserveClosed
	}

	if _, ok := q.members[h]; ok {
		return reserveQueued
	}

	q.members[h] = struct{}{}

	return reserved
}

// push appends a reserved holder. It reports false when the queue was
// closed after the reservation; the reservation is dropped in that case.
func (q *invalidationQueue[K, V]) push(h *holder[K, V]) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		delete(q.members, h)

		return false
	}

	q.items = append(q.items, h)
	q.cond.Signal()

	return true
}

// pop blocks until a holder is available. It clears the holder's queued
// mark before returning and reports false once the queue is closed and
// drained.
func (q *invalidationQueue[K, V]) pop() (*holder[K, V], bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}

	if len(q.items) == 0 {
		return nil, false
	}

	h := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	delete(q.members, h)

	return h, true
}

func (q *invalidationQueue[K, V]) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	q.cond.Broadcast()
}

func (q *invalidationQueue[K, V]) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items)
}
