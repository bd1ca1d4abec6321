// Package concurrency provides a keyed value cache whose entries are
// recomputed in the background after invalidation.
package concurrency

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var ErrCalculatorClosed = errors.New("calculator is closed")

// CalculateFunc produces the value for a key. It is called from caller
// goroutines on first access and from pool workers after invalidation,
// concurrently for different keys but never twice at once for one key.
type CalculateFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

type holder[K comparable, V any] struct {
	key     K
	lock    SimpleLock
	value   V
	err     error
	ready   bool
	removed atomic.Bool
}

// Calculator caches one value per key. A miss computes inline; an
// invalidation locks the holder and hands it to the worker pool, so
// readers wait for the fresh value while at most one recompute per key
// is outstanding.
type Calculator[K comparable, V any] struct {
	calculate CalculateFunc[K, V]
	opts      options

	mu      sync.Mutex
	holders map[K]*holder[K, V]
	// retired holds removed holders that were still computing, until a new
	// holder for the same key has waited them out.
	retired map[K]*holder[K, V]

	queue   *invalidationQueue[K, V]
	workers errgroup.Group
	closing sync.Once
	done    chan struct{}
}

func NewCalculator[K comparable, V any](calculate CalculateFunc[K, V], opts ...Option) *Calculator[K, V] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Calculator[K, V]{
		calculate: calculate,
		opts:      o,
		holders:   make(map[K]*holder[K, V]),
		retired:   make(map[K]*holder[K, V]),
		queue:     newInvalidationQueue[K, V](),
		done:      make(chan struct{}),
	}

	for id := range o.workers {
		c.workers.Go(func() error {
			c.work(id)

			return nil
		})
	}

	return c
}

// GetValue returns the cached value for key, computing it in the calling
// goroutine when the key is new. A failed first computation is returned
// and not cached.
func (c *Calculator[K, V]) GetValue(ctx context.Context, key K) (V, error) {
	var zero V

	h, created, retired := c.holderFor(key)
	for retired != nil {
		if err := retired.lock.Lock(ctx); err != nil {
			return zero, err
		}
		retired.lock.Unlock()

		c.forget(retired)
		h, created, retired = c.holderFor(key)
	}

	if created {
		return c.initialize(ctx, h)
	}

	if err := h.lock.Lock(ctx); err != nil {
		return zero, err
	}
	defer h.lock.Unlock()

	if !h.ready {
		return h.value, h.err
	}

	return h.value, nil
}

// InvalidateKey schedules a background recompute of key. Unknown keys are
// ignored.
func (c *Calculator[K, V]) InvalidateKey(key K) {
	c.mu.Lock()
	h, ok := c.holders[key]
	c.mu.Unlock()

	if ok {
		c.invalidateHolder(h)
	}
}

// InvalidateAll schedules a recompute of every cached key.
func (c *Calculator[K, V]) InvalidateAll() {
	c.mu.Lock()
	snapshot := make([]*holder[K, V], 0, len(c.holders))
	for _, h := range c.holders {
		snapshot = append(snapshot, h)
	}
	c.mu.Unlock()

	for _, h := range snapshot {
		c.invalidateHolder(h)
	}
}

// RemoveKey evicts key. A recompute already queued for it is dropped, and
// one already running finishes before the key is computed again.
func (c *Calculator[K, V]) RemoveKey(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	h, ok := c.holders[key]
	if !ok {
		return
	}

	h.removed.Store(true)
	delete(c.holders, key)

	if h.lock.TryLock() {
		h.lock.Unlock()

		return
	}

	c.retired[key] = h
}

// Len returns the number of cached keys.
func (c *Calculator[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.holders)
}

// Pending returns the number of holders waiting for a worker.
func (c *Calculator[K, V]) Pending() int {
	return c.queue.len()
}

// Close stops accepting invalidations and waits until the workers have
// drained the queue or ctx is done.
func (c *Calculator[K, V]) Close(ctx context.Context) error {
	c.closing.Do(func() {
		c.queue.close()

		go func() {
			_ = c.workers.Wait()
			close(c.done)
		}()
	})

	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for %s calculator workers: %w", c.opts.name, ctx.Err())
	}
}

// holderFor returns the live holder for key, creating it locked when
// missing. A retired holder still computing key is returned instead so the
// caller can wait for it first.
func (c *Calculator[K, V]) holderFor(key K) (h *holder[K, V], created bool, retired *holder[K, V]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if h, ok := c.holders[key]; ok {
		return h, false, nil
	}

	if r, ok := c.retired[key]; ok {
		return nil, false, r
	}

	h = &holder[K, V]{key: key, lock: NewSimpleLock()}
	h.lock.TryLock()
	c.holders[key] = h

	return h, true, nil
}

func (c *Calculator[K, V]) forget(retired *holder[K, V]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if current, ok := c.retired[retired.key]; ok && current == retired {
		delete(c.retired, retired.key)
	}
}

func (c *Calculator[K, V]) initialize(ctx context.Context, h *holder[K, V]) (V, error) {
	defer h.lock.Unlock()

	value, err := c.calculate(ctx, h.key)
	if err != nil {
		h.err = err
		c.discard(h)

		var zero V

		return zero, err
	}

	h.value = value
	h.ready = true

	return value, nil
}

func (c *Calculator[K, V]) discard(h *holder[K, V]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	h.removed.Store(true)

	if current, ok := c.holders[h.key]; ok && current == h {
		delete(c.holders, h.key)
	}
}

// invalidateHolder queues h unless it is already queued. The holder lock is
// taken before queueing and released by the worker.
func (c *Calculator[K, V]) invalidateHolder(h *holder[K, V]) {
	switch c.queue.reserve(h) {
	case reserveClosed:
		c.opts.metrics.Inc(context.Background(), c.metricKey("invalidation.rejected"), 1)

		return
	case reserveQueued:
		c.opts.metrics.Inc(context.Background(), c.metricKey("invalidation.skipped"), 1)

		return
	}

	_ = h.lock.Lock(context.Background())

	if !c.queue.push(h) {
		h.lock.Unlock()
	}
}

func (c *Calculator[K, V]) work(id int) {
	log := c.opts.logger.With().
		Str("calculator", c.opts.name).
		Int("worker", id).
		Logger()

	for {
		h, ok := c.queue.pop()
		if !ok {
			return
		}

		c.recompute(h, log)
	}
}

func (c *Calculator[K, V]) recompute(h *holder[K, V], log zerolog.Logger) {
	defer h.lock.Unlock()

	if h.removed.Load() {
		return
	}

	ctx := context.Background()
	start := time.Now()

	value, err := c.safeCalculate(ctx, h.key)
	if err != nil {
		log.Warn().
			Err(err).
			Str("key", fmt.Sprint(h.key)).
			Dur("duration", time.Since(start)).
			Msg("recompute failed, keeping previous value")
		c.opts.metrics.Inc(ctx, c.metricKey("recompute.failure"), 1)

		return
	}

	h.value = value
	h.err = nil
	h.ready = true

	log.Debug().
		Str("key", fmt.Sprint(h.key)).
		Dur("duration", time.Since(start)).
		Msg("recomputed value")
	c.opts.metrics.Inc(ctx, c.metricKey("recompute.success"), 1)
}

// safeCalculate turns a panicking CalculateFunc into an error so a worker
// survives it.
func (c *Calculator[K, V]) safeCalculate(ctx context.Context, key K) (value V, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("calculate panicked: %v", r)
		}
	}()

	return c.calculate(ctx, key)
}

func (c *Calculator[K, V]) metricKey(event string) string {
	return "calculator." + c.opts.name + "." + event
}
