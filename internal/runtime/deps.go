package runtime

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pitosalas/blogbridge-sub012/internal/adapters/repos"
	"github.com/pitosalas/blogbridge-sub012/internal/config"
	"github.com/pitosalas/blogbridge-sub012/internal/infrastructure"
	"github.com/pitosalas/blogbridge-sub012/internal/ports"
	"github.com/pitosalas/blogbridge-sub012/internal/services"
	"github.com/pitosalas/blogbridge-sub012/internal/usecases"
	"github.com/pitosalas/blogbridge-sub012/pkg/logger"
	"github.com/pitosalas/blogbridge-sub012/pkg/metrics"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	infrastructureDep struct {
		httpServer     *http.Server
		dbPool         *pgxpool.Pool
		cacheClient    *infrastructure.KeydbClient
		logger         logger.Logger
		metricsClient  metrics.Client
		tracerProvider otelTrace.TracerProvider
	}

	repositories struct {
		articlesRepo   *repos.ArticlesRepository
		smartFeedsRepo *repos.SmartFeedsRepository
	}

	servicesDep struct {
		smartFeeds *services.SmartFeedsService
	}

	cleanupFunc struct {
		resource string
		fn       func(ctx context.Context) error
	}

	dependencies struct {
		config *config.ServiceConfig

		// clock is shared by SQL translation and in-memory matching so both
		// resolve synthetic date ranges against the same day.
		clock func() time.Time

		infra infrastructureDep

		repos repositories

		services servicesDep

		app *usecases.Application

		// cleanupFuncs run in reverse registration order, so the HTTP
		// server stops before the stores it reads from.
		cleanupFuncs []cleanupFunc
	}

	DependencyOption func(*dependencies) error
)

func initializeDependencies(ctx context.Context, opts ...DependencyOption) (*dependencies, error) {
	deps := &dependencies{clock: time.Now}

	allOpts := append(defaultOptions(ctx), opts...)

	for _, opt := range allOpts {
		if err := opt(deps); err != nil {
			return nil, fmt.Errorf("failed to apply dependency option: %w", err)
		}
	}

	return deps, nil
}

func (d *dependencies) addCleanup(resource string, fn func(ctx context.Context) error) {
	d.cleanupFuncs = append(d.cleanupFuncs, cleanupFunc{resource: resource, fn: fn})
}

// healthCheckers names each backing store for the readiness and health
// reports.
func (d *dependencies) healthCheckers() map[string]ports.DatabaseHealthChecker {
	return map[string]ports.DatabaseHealthChecker{
		"postgres": d.repos.articlesRepo,
		"keydb":    d.repos.smartFeedsRepo,
	}
}
