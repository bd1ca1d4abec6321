package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/pitosalas/blogbridge-sub012/internal/ports"
	"github.com/pitosalas/blogbridge-sub012/pkg/decorator"
	"github.com/pitosalas/blogbridge-sub012/pkg/logger"
	"github.com/pitosalas/blogbridge-sub012/pkg/metrics"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	FetchHealthReportQuery struct{}

	HealthResult struct {
		Status       string                            `json:"status"`
		Version      string                            `json:"version"`
		Uptime       string                            `json:"uptime"`
		Dependencies map[string]ports.DependencyStatus `json:"dependencies"`
	}

	FetchHealthReportQueryHandler = decorator.QueryHandler[FetchHealthReportQuery, *HealthResult]

	fetchHealthReportQueryHandler struct {
		dependencies map[string]ports.DatabaseHealthChecker
		version      string
		startTime    time.Time
	}
)

func NewFetchHealthReportQueryHandler(
	dependencies map[string]ports.DatabaseHealthChecker,
	version string,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) FetchHealthReportQueryHandler {
	return decorator.ApplyQueryDecorators[FetchHealthReportQuery, *HealthResult](
		fetchHealthReportQueryHandler{
			dependencies: dependencies,
			version:      version,
			startTime:    time.Now(),
		},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h fetchHealthReportQueryHandler) Execute(ctx context.Context, _ FetchHealthReportQuery) (*HealthResult, error) {
	dependencies := make(map[string]ports.DependencyStatus, len(h.dependencies))
	overallStatus := "healthy"

	for name, checker := range h.dependencies {
		start := time.Now()
		err := checker.Ping(ctx)
		latency := time.Since(start)

		status := ports.DependencyStatus{
			Healthy: err == nil,
			Latency: fmt.Sprintf("%dms", latency.Milliseconds()),
		}

		if err != nil {
			status.Message = err.Error()
			overallStatus = "unhealthy"
		}

		dependencies[name] = status
	}

	return &HealthResult{
		Status:       overallStatus,
		Version:      h.version,
		Uptime:       time.Since(h.startTime).String(),
		Dependencies: dependencies,
	}, nil
}
