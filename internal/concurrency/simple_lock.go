package concurrency

import "context"

// SimpleLock is a non-reentrant two-state lock. Unlike sync.Mutex it can be
// released by a goroutine other than the one that acquired it, and Lock
// honours context cancellation.
type SimpleLock struct {
	slot chan struct{}
}

func NewSimpleLock() SimpleLock {
	return SimpleLock{slot: make(chan struct{}, 1)}
}

func (l SimpleLock) Lock(ctx context.Context) error {
	select {
	case l.slot <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l SimpleLock) TryLock() bool {
	select {
	case l.slot <- struct{}{}:
		return true
	default:
		return false
	}
}

// Unlock panics when the lock is not held.
func (l SimpleLock) Unlock() {
	select {
	case <-l.slot:
	default:
		panic("concurrency: unlock of unlocked SimpleLock")
	}
}

func (l SimpleLock) Locked() bool {
	return len(l.slot) == 1
}
