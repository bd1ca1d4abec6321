package ports

import (
	"context"

	"github.com/pitosalas/blogbridge-sub012/internal/domain/model"
)

// SmartFeedsRepository persists smart feed definitions.
type SmartFeedsRepository interface {
	Save(ctx context.Context, feed *model.SmartFeed) error
	FetchByID(ctx context.Context, id model.SmartFeedID) (*model.SmartFeed, error)
	List(ctx context.Context) ([]*model.SmartFeed, error)
	Delete(ctx context.Context, id model.SmartFeedID) error
	Ping(ctx context.Context) error
}
