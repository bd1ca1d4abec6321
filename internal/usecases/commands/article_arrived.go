package commands

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
	// ArticleArrivedCommand announces a newly stored article so the smart
	// feeds it belongs to are recounted.
	ArticleArrivedCommand struct {
		ID model.ArticleID
	}

	ArticleArrivedCommandHandler = decorator.CommandHandler[ArticleArrivedCommand, []model.SmartFeedID]

	articleArrivedCommandHandler struct {
		smartFeedsService ports.SmartFeedsService
	}
)

func NewArticleArrivedCommandHandler(
	svc ports.SmartFeedsService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) ArticleArrivedCommandHandler {
	return decorator.ApplyCommandDecorators[ArticleArrivedCommand, []model.SmartFeedID](
		articleArrivedCommandHandler{smartFeedsService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h articleArrivedCommandHandler) Handle(ctx context.Context, cmd ArticleArrivedCommand) ([]model.SmartFeedID, error) {
	return h.smartFeedsService.ArticleArrived(ctx, cmd.ID)
}
