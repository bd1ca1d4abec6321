package ports

import (
	"context"

	"github.com/pitosalas/blogbridge-sub012/internal/domain/model"
	"github.com/pitosalas/blogbridge-sub012/internal/domain/query"
)

// SmartFeedsService defines the smart feed business operations.
type SmartFeedsService interface {
	// SaveSmartFeed parses and validates rawQuery, then creates or replaces
	// the smart feed stored under id.
	SaveSmartFeed(ctx context.Context, id model.SmartFeedID, title, rawQuery string) (*model.SmartFeed, error)

	// GetSmartFeed returns the definition together with its cached match count.
	GetSmartFeed(ctx context.Context, id model.SmartFeedID) (*model.SmartFeedView, error)

	ListSmartFeeds(ctx context.Context) ([]*model.SmartFeed, error)

	// ListArticles returns a page of the articles the smart feed matches.
	ListArticles(ctx context.Context, id model.SmartFeedID, page model.PageRequest) (*model.ArticleList, error)

	DeleteSmartFeed(ctx context.Context, id model.SmartFeedID) error

	// MarkArticleRead flips the read flag and refreshes every match count.
	MarkArticleRead(ctx context.Context, id model.ArticleID, read bool) error

	// ArticleArrived refreshes the counts of the smart feeds that match the
	// article and returns their IDs.
	ArticleArrived(ctx context.Context, id model.ArticleID) ([]model.SmartFeedID, error)

	// Describe lists the properties a smart feed query can use.
	Describe() []query.Property
}
