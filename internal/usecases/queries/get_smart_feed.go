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
	GetSmartFeedQuery struct {
		ID model.SmartFeedID
	}

	GetSmartFeedQueryHandler = decorator.QueryHandler[GetSmartFeedQuery, *model.SmartFeedView]

	getSmartFeedQueryHandler struct {
		smartFeedsService ports.SmartFeedsService
	}
)

func NewGetSmartFeedQueryHandler(
	svc ports.SmartFeedsService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) GetSmartFeedQueryHandler {
	return decorator.ApplyQueryDecorators[GetSmartFeedQuery, *model.SmartFeedView](
		getSmartFeedQueryHandler{smartFeedsService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h getSmartFeedQueryHandler) Execute(ctx context.Context, query GetSmartFeedQuery) (*model.SmartFeedView, error) {
	return h.smartFeedsService.GetSmartFeed(ctx, query.ID)
}
