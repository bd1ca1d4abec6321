package concurrency

import (
	"github.com/pitosalas/blogbridge-sub012/pkg/logger"
	"github.com/pitosalas/blogbridge-sub012/pkg/metrics"
	"github.com/pitosalas/blogbridge-sub012/pkg/metrics/noop"
	"github.com/rs/zerolog"
)

const (
	DefaultWorkers = 2
	DefaultName    = "default"
)

type (
	Option func(*options)

	options struct {
		workers int
		name    string
		logger  logger.Logger
		metrics metrics.Client
	}
)

func defaultOptions() options {
	return options{
		workers: DefaultWorkers,
		name:    DefaultName,
		logger:  logger.Logger{Logger: zerolog.Nop()},
		metrics: noop.NewMetricsClient(),
	}
}

// WithWorkers sets the size of the recompute pool. Values below one are
// ignored.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithName labels log entries and metric keys of the calculator.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func WithMetrics(m metrics.Client) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}
