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
	DeleteSmartFeedCommand struct {
		ID model.SmartFeedID
	}

	DeleteSmartFeedCommandHandler = decorator.CommandHandler[DeleteSmartFeedCommand, struct{}]

	deleteSmartFeedCommandHandler struct {
		smartFeedsService ports.SmartFeedsService
	}
)

func NewDeleteSmartFeedCommandHandler(
	svc ports.SmartFeedsService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) DeleteSmartFeedCommandHandler {
	return decorator.ApplyCommandDecorators[DeleteSmartFeedCommand, struct{}](
		deleteSmartFeedCommandHandler{smartFeedsService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h deleteSmartFeedCommandHandler) Handle(ctx context.Context, cmd DeleteSmartFeedCommand) (struct{}, error) {
	if err := h.smartFeedsService.DeleteSmartFeed(ctx, cmd.ID); err != nil {
		return struct{}{}, err
	}

	return struct{}{}, nil
}
