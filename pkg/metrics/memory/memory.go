// Package memory provides an in-process metrics client that keeps running
// totals per key. It backs tests that assert on emitted counters.
package memory

import (
	"context"
	"net/http"
	"sync"

	"github.com/pitosalas/blogbridge-sub012/pkg/metrics"
	"go.opentelemetry.io/otel/attribute"
)

type MetricsClient struct {
	mu     sync.Mutex
	totals map[string]int64
}

func NewMetricsClient() *MetricsClient {
	return &MetricsClient{totals: make(map[string]int64)}
}

func (c *MetricsClient) Inc(_ context.Context, key string, value any, _ ...attribute.KeyValue) {
	delta, ok := metrics.ToInt64(value)
	if !ok {
		return
	}

	c.mu.Lock()
	c.totals[key] += delta
	c.mu.Unlock()
}

// Total returns the accumulated value for key.
func (c *MetricsClient) Total(key string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.totals[key]
}

func (c *MetricsClient) Handler() http.Handler {
	return http.NotFoundHandler()
}

func (c *MetricsClient) Shutdown(context.Context) error {
	return nil
}
