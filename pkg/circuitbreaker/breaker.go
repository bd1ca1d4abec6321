// Package circuitbreaker guards calls to a backing store so repeated
// failures fail fast instead of piling up on a struggling dependency.
package circuitbreaker

import (
	"context"
	"errors"

	"github.com/pitosalas/blogbridge-sub012/pkg/logger"
	"github.com/sony/gobreaker/v2"
)

type (
	CircuitBreaker[T any] struct {
		cb *gobreaker.CircuitBreaker[T]
	}

	Option func(*options)

	options struct {
		logger   logger.Logger
		ignored  []error
		hasLog   bool
		onChange func(name, from, to string)
	}
)

// WithLogger logs every state transition.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		o.logger = l
		o.hasLog = true
	}
}

// WithIgnoredErrors lists errors that are answers rather than failures,
// such as not found. They never count towards tripping the breaker.
func WithIgnoredErrors(errs ...error) Option {
	return func(o *options) {
		o.ignored = append(o.ignored, errs...)
	}
}

// WithStateChangeHook is called after each transition.
func WithStateChangeHook(fn func(name, from, to string)) Option {
	return func(o *options) {
		o.onChange = fn
	}
}

// New returns nil when the breaker is disabled; Execute then calls through.
func New[T any](cfg Config, opts ...Option) *CircuitBreaker[T] {
	if !cfg.Enabled {
		return nil
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	cb := gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}

			for _, ignored := range o.ignored {
				if errors.Is(err, ignored) {
					return true
				}
			}

			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if o.hasLog {
				o.logger.Warn().
					Str("breaker", name).
					Str("from", from.String()).
					Str("to", to.String()).
					Msg("circuit breaker state changed")
			}

			if o.onChange != nil {
				o.onChange(name, from.String(), to.String())
			}
		},
	})

	return &CircuitBreaker[T]{cb: cb}
}

func (c *CircuitBreaker[T]) Name() string {
	return c.cb.Name()
}

// State is "closed", "half-open" or "open". A disabled breaker is always
// closed.
func (c *CircuitBreaker[T]) State() string {
	if c == nil {
		return gobreaker.StateClosed.String()
	}

	return c.cb.State().String()
}

// Execute runs fn through cb. An already cancelled context is returned
// without calling fn.
func Execute[T any](ctx context.Context, cb *CircuitBreaker[T], fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	if cb == nil {
		return fn(ctx)
	}

	result, err := cb.cb.Execute(func() (T, error) {
		return fn(ctx)
	})

	switch {
	case errors.Is(err, gobreaker.ErrOpenState):
		return zero, ErrCircuitOpen
	case errors.Is(err, gobreaker.ErrTooManyRequests):
		return zero, ErrTooManyRequests
	}

	return result, err
}
