package concurrency_test

import (
	"context"
	"testing"
	"time"

	"github.com/pitosalas/blogbridge-sub012/internal/concurrency"
	"github.com/stretchr/testify/require"
)

func TestSimpleLock_TryLock(t *testing.T) {
	t.Parallel()

	lock := concurrency.NewSimpleLock()

	require.True(t, lock.TryLock())
	require.True(t, lock.Locked())
	require.False(t, lock.TryLock())

	lock.Unlock()
	require.False(t, lock.Locked())
}

func TestSimpleLock_ReleasedByAnotherGoroutine(t *testing.T) {
	t.Parallel()

	lock := concurrency.NewSimpleLock()
	require.NoError(t, lock.Lock(context.Background()))

	go lock.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, lock.Lock(ctx))
}

func TestSimpleLock_LockHonoursContext(t *testing.T) {
	t.Parallel()

	lock := concurrency.NewSimpleLock()
	require.True(t, lock.TryLock())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	require.ErrorIs(t, lock.Lock(ctx), context.DeadlineExceeded)
}

func TestSimpleLock_UnlockOfUnlockedPanics(t *testing.T) {
	t.Parallel()

	lock := concurrency.NewSimpleLock()

	require.Panics(t, lock.Unlock)
}
