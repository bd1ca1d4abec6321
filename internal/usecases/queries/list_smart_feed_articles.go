package queries

import (
	"context"

	"github.com/pitosalas/blogbridge-sub012/internal/domain/model"
	"github.com/pitosalas/blogbridge-sub012/internal/ports"
	"github.com/pitosalas/blogbridge-sub012/pkg/decorator"
	"github.com/pitosalas/blogbridge-sub012/pkg/logger"
	"github.com/pitosalas/blogbridge-sub012/pkg/metrics"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	ListSmartFeedArticlesQuery struct {
		ID   model.SmartFeedID
		Page model.PageRequest
	}

	ListSmartFeedArticlesQueryHandler = decorator.QueryHandler[ListSmartFeedArticlesQuery, *model.ArticleList]

	listSmartFeedArticlesQueryHandler struct {
		smartFeedsService ports.SmartFeedsService
	}
)

func NewListSmartFeedArticlesQueryHandler(
	svc ports.SmartFeedsService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) ListSmartFeedArticlesQueryHandler {
	return decorator.ApplyQueryDecorators[ListSmartFeedArticlesQuery, *model.ArticleList](
		listSmartFeedArticlesQueryHandler{smartFeedsService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h listSmartFeedArticlesQueryHandler) Execute(ctx context.Context, query ListSmartFeedArticlesQuery) (*model.ArticleList, error) {
	return h.smartFeedsService.ListArticles(ctx, query.ID, query.Page.Normalize())
}
