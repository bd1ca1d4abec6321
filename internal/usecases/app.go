package usecases

import (
	"github.com/pitosalas/blogbridge-sub012/internal/ports"
	"github.com/pitosalas/blogbridge-sub012/internal/usecases/commands"
	"github.com/pitosalas/blogbridge-sub012/internal/usecases/queries"
	"github.com/pitosalas/blogbridge-sub012/pkg/logger"
	"github.com/pitosalas/blogbridge-sub012/pkg/metrics"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	Commands struct {
		SaveSmartFeed   commands.SaveSmartFeedCommandHandler
		DeleteSmartFeed commands.DeleteSmartFeedCommandHandler
		MarkArticleRead commands.MarkArticleReadCommandHandler
		ArticleArrived  commands.ArticleArrivedCommandHandler
	}

	Queries struct {
		GetSmartFeed          queries.GetSmartFeedQueryHandler
		ListSmartFeeds        queries.ListSmartFeedsQueryHandler
		ListSmartFeedArticles queries.ListSmartFeedArticlesQueryHandler
		DescribeProperties    queries.DescribePropertiesQueryHandler
		FetchLiveness         queries.FetchLivenessQueryHandler
		FetchReadiness        queries.FetchReadinessQueryHandler
		FetchHealthReport     queries.FetchHealthReportQueryHandler
	}

	Application struct {
		Commands Commands
		Queries  Queries
	}
)

// NewApplication wires every use case. dependencies maps a backing store
// name to its ping for the health queries.
func NewApplication(
	smartFeedsSvc ports.SmartFeedsService,
	dependencies map[string]ports.DatabaseHealthChecker,
	version string,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) *Application {
	return &Application{
		Commands: Commands{
			SaveSmartFeed:   commands.NewSaveSmartFeedCommandHandler(smartFeedsSvc, log, metricsClient, tracerProvider),
			DeleteSmartFeed: commands.NewDeleteSmartFeedCommandHandler(smartFeedsSvc, log, metricsClient, tracerProvider),
			MarkArticleRead: commands.NewMarkArticleReadCommandHandler(smartFeedsSvc, log, metricsClient, tracerProvider),
			ArticleArrived:  commands.NewArticleArrivedCommandHandler(smartFeedsSvc, log, metricsClient, tracerProvider),
		},
		Queries: Queries{
			GetSmartFeed:          queries.NewGetSmartFeedQueryHandler(smartFeedsSvc, log, metricsClient, tracerProvider),
			ListSmartFeeds:        queries.NewListSmartFeedsQueryHandler(smartFeedsSvc, log, metricsClient, tracerProvider),
			ListSmartFeedArticles: queries.NewListSmartFeedArticlesQueryHandler(smartFeedsSvc, log, metricsClient, tracerProvider),
			DescribeProperties:    queries.NewDescribePropertiesQueryHandler(smartFeedsSvc, log, metricsClient, tracerProvider),
			FetchLiveness:         queries.NewFetchLivenessQueryHandler(log, metricsClient, tracerProvider),
			FetchReadiness:        queries.NewFetchReadinessQueryHandler(dependencies, log, metricsClient, tracerProvider),
			FetchHealthReport:     queries.NewFetchHealthReportQueryHandler(dependencies, version, log, metricsClient, tracerProvider),
		},
	}
}
