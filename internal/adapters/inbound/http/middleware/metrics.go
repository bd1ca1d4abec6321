package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pitosalas/blogbridge-sub012/pkg/metrics"
	"go.opentelemetry.io/otel/attribute"
)

const (
	httpMethodKey     = "http.method"
	httpRouteKey      = "http.route"
	httpStatusCodeKey = "http.status_code"

	httpRequestTotal      = "http_requests_total"
	httpRequestDurationMs = "http_request_duration_ms"
)

// Metrics counts requests per route pattern, so IDs do not explode the
// label set.
func Metrics(client metrics.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := NewStatusRecorder(w)

			next.ServeHTTP(wrapped, r)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}

			attrs := []attribute.KeyValue{
				attribute.String(httpMethodKey, r.Method),
				attribute.String(httpRouteKey, route),
				attribute.String(httpStatusCodeKey, strconv.Itoa(wrapped.StatusCode())),
			}

			client.Inc(r.Context(), httpRequestTotal, int64(1), attrs...)
			client.Inc(r.Context(), httpRequestDurationMs, time.Since(start).Milliseconds(), attrs...)
		})
	}
}
