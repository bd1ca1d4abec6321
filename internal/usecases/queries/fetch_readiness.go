package queries

import (
	"context"
	"sort"

	"github.com/pitosalas/blogbridge-sub012/internal/ports"
	"github.com/pitosalas/blogbridge-sub012/pkg/decorator"
	"github.com/pitosalas/blogbridge-sub012/pkg/logger"
	"github.com/pitosalas/blogbridge-sub012/pkg/metrics"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	FetchReadinessQuery struct{}

	ReadinessResult struct {
		Status string `json:"status"`
		Ready  bool   `json:"ready"`

		// Unavailable names the dependencies that failed their ping.
		Unavailable []string `json:"unavailable,omitempty"`
	}

	FetchReadinessQueryHandler = decorator.QueryHandler[FetchReadinessQuery, *ReadinessResult]

	fetchReadinessQueryHandler struct {
		dependencies map[string]ports.DatabaseHealthChecker
	}
)

func NewFetchReadinessQueryHandler(
	dependencies map[string]ports.DatabaseHealthChecker,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) FetchReadinessQueryHandler {
	return decorator.ApplyQueryDecorators[FetchReadinessQuery, *ReadinessResult](
		fetchReadinessQueryHandler{dependencies: dependencies},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h fetchReadinessQueryHandler) Execute(ctx context.Context, _ FetchReadinessQuery) (*ReadinessResult, error) {
	var unavailable []string

	for name, checker := range h.dependencies {
		if err := checker.Ping(ctx); err != nil {
			unavailable = append(unavailable, name)
		}
	}

	if len(unavailable) > 0 {
		sort.Strings(unavailable)

		return &ReadinessResult{
			Status:      "unavailable",
			Ready:       false,
			Unavailable: unavailable,
		}, nil
	}

	return &ReadinessResult{
		Status: "ok",
		Ready:  true,
	}, nil
}
