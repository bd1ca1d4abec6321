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
	MarkArticleReadCommand struct {
		ID   model.ArticleID
		Read bool
	}

	MarkArticleReadCommandHandler = decorator.CommandHandler[MarkArticleReadCommand, struct{}]

	markArticleReadCommandHandler struct {
		smartFeedsService ports.SmartFeedsService
	}
)

func NewMarkArticleReadCommandHandler(
	svc ports.SmartFeedsService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) MarkArticleReadCommandHandler {
	return decorator.ApplyCommandDecorators[MarkArticleReadCommand, struct{}](
		markArticleReadCommandHandler{smartFeedsService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h markArticleReadCommandHandler) Handle(ctx context.Context, cmd MarkArticleReadCommand) (struct{}, error) {
	if err := h.smartFeedsService.MarkArticleRead(ctx, cmd.ID, cmd.Read); err != nil {
		return struct{}{}, err
	}

	return struct{}{}, nil
}
