// Package otel provides a metrics client backed by the OpenTelemetry SDK
// and exposed in the Prometheus text format.
package otel

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/pitosalas/blogbridge-sub012/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

type MetricsClient struct {
	provider *sdkmetric.MeterProvider
	meter    metric.Meter
	registry *prometheus.Registry

	mu       sync.Mutex
	counters map[string]metric.Int64Counter
}

func NewMetricsClient(serviceName string) (*MetricsClient, error) {
	registry := prometheus.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))

	return &MetricsClient{
		provider: provider,
		meter:    provider.Meter(serviceName),
		registry: registry,
		counters: make(map[string]metric.Int64Counter),
	}, nil
}

func (c *MetricsClient) Inc(ctx context.Context, key string, value any, attributes ...attribute.KeyValue) {
	delta, ok := metrics.ToInt64(value)
	if !ok {
		return
	}

	counter, err := c.counter(key)
	if err != nil {
		return
	}

	counter.Add(ctx, delta, metric.WithAttributes(attributes...))
}

func (c *MetricsClient) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *MetricsClient) Shutdown(ctx context.Context) error {
	return c.provider.Shutdown(ctx)
}

func (c *MetricsClient) counter(key string) (metric.Int64Counter, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if counter, ok := c.counters[key]; ok {
		return counter, nil
	}

	counter, err := metrics.RegisterInt64Counter(c.meter, metrics.Descriptor{}, key)
	if err != nil {
		return nil, err
	}

	c.counters[key] = counter

	return counter, nil
}
