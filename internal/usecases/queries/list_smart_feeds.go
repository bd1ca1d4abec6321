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
	ListSmartFeedsQuery struct{}

	ListSmartFeedsQueryHandler = decorator.QueryHandler[ListSmartFeedsQuery, []*model.SmartFeed]

	listSmartFeedsQueryHandler struct {
		smartFeedsService ports.SmartFeedsService
	}
)

func NewListSmartFeedsQueryHandler(
	svc ports.SmartFeedsService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) ListSmartFeedsQueryHandler {
	return decorator.ApplyQueryDecorators[ListSmartFeedsQuery, []*model.SmartFeed](
		listSmartFeedsQueryHandler{smartFeedsService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h listSmartFeedsQueryHandler) Execute(ctx context.Context, _ ListSmartFeedsQuery) ([]*model.SmartFeed, error) {
	return h.smartFeedsService.ListSmartFeeds(ctx)
}
