package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/pitosalas/blogbridge-sub012/internal/adapters/inbound/http/handlers"
	"github.com/pitosalas/blogbridge-sub012/internal/adapters/inbound/http/middleware"
	"github.com/pitosalas/blogbridge-sub012/internal/config"
	"github.com/pitosalas/blogbridge-sub012/internal/usecases"
	"github.com/pitosalas/blogbridge-sub012/pkg/logger"
	"github.com/pitosalas/blogbridge-sub012/pkg/metrics"
)

const baseURL = "/v1"

type RouterConfig struct {
	App           *usecases.Application
	Logger        logger.Logger
	MetricsClient metrics.Client
	Config        *config.ServiceConfig
}

func NewRouter(cfg RouterConfig) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID())
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Recovery(cfg.Logger))
	router.Use(chimiddleware.Timeout(cfg.Config.HTTPServer.RequestTimeout))

	if cfg.Config.Telemetry.Metrics.Enabled {
		router.Use(middleware.Metrics(cfg.MetricsClient))
		cfg.Logger.Info().Msg("HTTP metrics collection enabled")
	}

	if cfg.Config.Logging.AccessLog.Enabled {
		router.Use(middleware.AccessLogger(cfg.Logger, cfg.Config.Logging.AccessLog.LogHealthChecks))
		cfg.Logger.Info().
			Bool("log_health_checks", cfg.Config.Logging.AccessLog.LogHealthChecks).
			Msg("structured access logging enabled")
	}

	smartFeeds := handlers.NewSmartFeedsHandler(cfg.App)
	health := handlers.NewHealthHandler(cfg.App)

	router.Route(baseURL, func(r chi.Router) {
		r.With(middleware.ConditionalGET()).Get("/properties", smartFeeds.DescribeProperties)

		r.Route("/smart-feeds", func(r chi.Router) {
			r.Get("/", smartFeeds.ListSmartFeeds)
			r.With(middleware.ConditionalGET()).Get("/{id}", smartFeeds.GetSmartFeed)
			r.Put("/{id}", smartFeeds.SaveSmartFeed)
			r.Delete("/{id}", smartFeeds.DeleteSmartFeed)
			r.Get("/{id}/articles", smartFeeds.ListSmartFeedArticles)
		})

		r.Route("/articles/{id}", func(r chi.Router) {
			r.Post("/read", smartFeeds.MarkArticleRead)
			r.Post("/arrived", smartFeeds.ArticleArrived)
		})
	})

	router.Get("/health", health.Report)
	router.Get("/health/liveness", health.Liveness)
	router.Get("/health/readiness", health.Readiness)
	router.Handle("/metrics", cfg.MetricsClient.Handler())

	return router
}
