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
	// SaveSmartFeedCommand creates the smart feed or replaces its title and
	// query. Query is in the serialized form.
	SaveSmartFeedCommand struct {
		ID    model.SmartFeedID
		Title string
		Query string
	}

	SaveSmartFeedCommandHandler = decorator.CommandHandler[SaveSmartFeedCommand, *model.SmartFeed]

	saveSmartFeedCommandHandler struct {
		smartFeedsService ports.SmartFeedsService
	}
)

func NewSaveSmartFeedCommandHandler(
	svc ports.SmartFeedsService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) SaveSmartFeedCommandHandler {
	return decorator.ApplyCommandDecorators[SaveSmartFeedCommand, *model.SmartFeed](
		saveSmartFeedCommandHandler{smartFeedsService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h saveSmartFeedCommandHandler) Handle(ctx context.Context, cmd SaveSmartFeedCommand) (*model.SmartFeed, error) {
	return h.smartFeedsService.SaveSmartFeed(ctx, cmd.ID, cmd.Title, cmd.Query)
}
