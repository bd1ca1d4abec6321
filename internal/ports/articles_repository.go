package ports

import (
	"context"

	"github.com/pitosalas/blogbridge-sub012/internal/domain/model"
	"github.com/pitosalas/blogbridge-sub012/internal/domain/query"
)

type (
	ArticleFetcher interface {
		FetchByID(ctx context.Context, id model.ArticleID) (*model.Article, error)
	}

	ArticleMatcher interface {
		// ListMatching returns one page of articles matching q, newest first.
		ListMatching(ctx context.Context, q *query.Query, page model.PageRequest) (*model.ArticleList, error)

		// CountMatching returns the number of articles matching q.
		CountMatching(ctx context.Context, q *query.Query) (int, error)
	}

	ArticleFlagger interface {
		MarkRead(ctx context.Context, id model.ArticleID, read bool) error
		SetPinned(ctx context.Context, id model.ArticleID, pinned bool) error
	}

	ArticlesRepository interface {
		ArticleFetcher
		ArticleMatcher
		ArticleFlagger
		DatabaseHealthChecker
	}
)
