package runtime

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"

	inboundhttp "github.com/pitosalas/blogbridge-sub012/internal/adapters/inbound/http"
	"github.com/pitosalas/blogbridge-sub012/internal/adapters/repos"
	"github.com/pitosalas/blogbridge-sub012/internal/concurrency"
	"github.com/pitosalas/blogbridge-sub012/internal/config"
	"github.com/pitosalas/blogbridge-sub012/internal/infrastructure"
	infraPostgres "github.com/pitosalas/blogbridge-sub012/internal/infrastructure/postgres"
	"github.com/pitosalas/blogbridge-sub012/internal/services"
	"github.com/pitosalas/blogbridge-sub012/internal/usecases"
	"github.com/pitosalas/blogbridge-sub012/pkg/circuitbreaker"
	"github.com/pitosalas/blogbridge-sub012/pkg/logger"
	"github.com/pitosalas/blogbridge-sub012/pkg/metrics/noop"
	otelMetrics "github.com/pitosalas/blogbridge-sub012/pkg/metrics/otel"
)

func defaultOptions(ctx context.Context) []DependencyOption {
	return []DependencyOption{
		WithConfig(),
		WithLogger(),
		WithTracing(),
		WithMetrics(),
		WithDatabase(ctx),
		WithCache(),
		WithRepositories(),
		WithSmartFeedsService(),
		WithApplication(),
		WithHTTPServer(),
	}
}

func WithConfig() DependencyOption {
	return func(d *dependencies) error {
		cfg, err := config.Init()
		if err != nil {
			return fmt.Errorf("initializing configuration: %w", err)
		}

		d.config = cfg

		return nil
	}
}

func WithLogger() DependencyOption {
	return func(d *dependencies) error {
		format := d.config.Logging.Format
		if d.config.IsProduction() {
			format = logger.JSONLoggingFormat
		}

		d.infra.logger = logger.New(d.config.Logging.Level, format)

		return nil
	}
}

func WithTracing() DependencyOption {
	return func(d *dependencies) error {
		if !d.config.Telemetry.Traces.Enabled {
			d.infra.tracerProvider = infrastructure.NewNoopTracerProvider()

			return nil
		}

		tp, shutdown, err := infrastructure.NewTracerProvider(d.config.App, d.config.Telemetry)
		if err != nil {
			return fmt.Errorf("initializing tracer: %w", err)
		}

		d.infra.tracerProvider = tp
		d.addCleanup("tracer", shutdown)

		return nil
	}
}

func WithMetrics() DependencyOption {
	return func(d *dependencies) error {
		if !d.config.Telemetry.Metrics.Enabled {
			d.infra.metricsClient = noop.NewMetricsClient()

			return nil
		}

		client, err := otelMetrics.NewMetricsClient(d.config.Telemetry.ServiceName)
		if err != nil {
			return fmt.Errorf("initializing metrics: %w", err)
		}

		d.infra.metricsClient = client
		d.addCleanup("metrics", client.Shutdown)

		return nil
	}
}

func WithDatabase(ctx context.Context) DependencyOption {
	return func(d *dependencies) error {
		pool, err := infraPostgres.NewPool(ctx, d.config.Database, d.config.Backoff, d.infra.logger)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}

		d.infra.dbPool = pool
		d.addCleanup("postgres", func(context.Context) error {
			pool.Close()

			return nil
		})

		return nil
	}
}

func WithCache() DependencyOption {
	return func(d *dependencies) error {
		d.infra.cacheClient = infrastructure.NewKeyDBClient(d.config.Cache, d.infra.logger)
		d.addCleanup("keydb", func(context.Context) error {
			return d.infra.cacheClient.Close()
		})

		return nil
	}
}

func WithRepositories() DependencyOption {
	return func(d *dependencies) error {
		translatorLogger := d.infra.logger.Component("query_translator")

		d.repos.articlesRepo = repos.NewArticlesRepository(
			d.infra.dbPool,
			repos.NewPgxScanner(),
			repos.NewQueryTranslator(&translatorLogger, d.clock),
			d.infra.logger.Component("articles_repository"),
		)

		d.repos.smartFeedsRepo = repos.NewSmartFeedsRepository(
			d.infra.cacheClient,
			d.config.Cache.KeyPrefix,
			d.infra.logger.Component("smart_feeds_repository"),
		)

		return nil
	}
}

func WithSmartFeedsService() DependencyOption {
	return func(d *dependencies) error {
		breaker := d.config.CircuitBreaker

		d.services.smartFeeds = services.NewSmartFeedsService(
			d.repos.articlesRepo,
			d.repos.smartFeedsRepo,
			circuitbreaker.Config{
				Name:             "articles",
				Enabled:          breaker.Enabled,
				MaxRequests:      breaker.MaxRequests,
				Interval:         breaker.Interval,
				Timeout:          breaker.Timeout,
				FailureThreshold: breaker.FailureThreshold,
			},
			d.clock,
			d.infra.logger,
			concurrency.WithName("match_counts"),
			concurrency.WithWorkers(d.config.Calculator.Workers),
			concurrency.WithLogger(d.infra.logger),
			concurrency.WithMetrics(d.infra.metricsClient),
		)

		d.addCleanup("calculator", func(ctx context.Context) error {
			closeCtx, cancel := context.WithTimeout(ctx, d.config.Calculator.CloseTimeout)
			defer cancel()

			return d.services.smartFeeds.Close(closeCtx)
		})

		return nil
	}
}

func WithApplication() DependencyOption {
	return func(d *dependencies) error {
		d.app = usecases.NewApplication(
			d.services.smartFeeds,
			d.healthCheckers(),
			d.config.App.ServiceVersion,
			d.infra.logger,
			d.infra.metricsClient,
			d.infra.tracerProvider,
		)

		return nil
	}
}

func WithHTTPServer() DependencyOption {
	return func(d *dependencies) error {
		cfg := d.config.HTTPServer

		d.infra.httpServer = &http.Server{
			Addr: net.JoinHostPort(cfg.Host, strconv.FormatUint(uint64(cfg.Port), 10)),
			Handler: inboundhttp.NewRouter(inboundhttp.RouterConfig{
				App:           d.app,
				Logger:        d.infra.logger,
				MetricsClient: d.infra.metricsClient,
				Config:        d.config,
			}),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		}

		d.addCleanup("http server", d.infra.httpServer.Shutdown)

		return nil
	}
}
