package repos

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pitosalas/blogbridge-sub012/internal/domain/model"
	"github.com/pitosalas/blogbridge-sub012/internal/domain/query"
	"github.com/pitosalas/blogbridge-sub012/pkg/logger"
)

const (
	articlesTable = "articles"
	articlesJoin  = "articles a JOIN feeds f ON f.id = a.feed_id"
)

var (
	psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	articleColumns = []string{
		"a.id", "a.feed_id", "a.title", "a.body", "a.author", "a.link", "a.tags",
		"a.published_at", "a.read", "a.pinned", "a.sentiment",
		"f.title AS feed_title", "f.url AS feed_url", "f.starz AS feed_starz",
		unreadCountExpr + " AS feed_unread_count",
	}
)

type (
	// PoolOps is the subset of pgxpool.Pool the repository needs.
	PoolOps interface {
		QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
		Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
		Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
		Ping(ctx context.Context) error
	}

	ArticlesRepository struct {
		pool       PoolOps
		scanner    Scanner
		logger     logger.Logger
		translator *QueryTranslator
	}

	articleRow struct {
		ID              string    `db:"id"`
		FeedID          string    `db:"feed_id"`
		Title           string    `db:"title"`
		Body            string    `db:"body"`
		Author          string    `db:"author"`
		Link            string    `db:"link"`
		Tags            []string  `db:"tags"`
		PublishedAt     time.Time `db:"published_at"`
		Read            bool      `db:"read"`
		Pinned          bool      `db:"pinned"`
		Sentiment       string    `db:"sentiment"`
		FeedTitle       string    `db:"feed_title"`
		FeedURL         string    `db:"feed_url"`
		FeedStarz       int       `db:"feed_starz"`
		FeedUnreadCount int       `db:"feed_unread_count"`
	}

	articleRowWithCount struct {
		articleRow
		TotalCount uint `db:"total_count"`
	}
)

func NewArticlesRepository(
	pool PoolOps,
	scanner Scanner,
	translator *QueryTranslator,
	log logger.Logger,
) *ArticlesRepository {
	return &ArticlesRepository{
		pool:       pool,
		scanner:    scanner,
		translator: translator,
		logger:     log,
	}
}

func (r *ArticlesRepository) FetchByID(ctx context.Context, id model.ArticleID) (*model.Article, error) {
	sqlQuery, args, err := psql.Select(articleColumns...).
		From(articlesJoin).
		Where(sq.Eq{"a.id": id.String()}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.pool.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}
	defer rows.Close()

	var row articleRow
	if err := r.scanner.ScanOne(&row, rows); err != nil {
		if r.scanner.IsNotFound(err) {
			return nil, model.ErrArticleNotFound
		}

		return nil, fmt.Errorf("%w: article %s: %v", model.ErrDatabaseQuery, id, err)
	}

	return convertRowToArticle(row)
}

func (r *ArticlesRepository) ListMatching(ctx context.Context, q *query.Query, page model.PageRequest) (*model.ArticleList, error) {
	page = page.Normalize()

	columns := append(append([]string(nil), articleColumns...), "COUNT(*) OVER() AS total_count")

	sqlQuery, args, err := psql.Select(columns...).
		From(articlesJoin).
		Where(r.translator.Translate(q)).
		OrderBy("a.published_at DESC", "a.id").
		Limit(uint64(page.Size)).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.pool.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}
	defer rows.Close()

	var articleRows []articleRowWithCount
	if err := r.scanner.ScanAll(&articleRows, rows); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	var totalItems uint
	articles := make([]*model.Article, 0, len(articleRows))

	for index := range articleRows {
		totalItems = articleRows[index].TotalCount

		article, err := convertRowToArticle(articleRows[index].articleRow)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
		}

		articles = append(articles, article)
	}

	return &model.ArticleList{
		Articles:   articles,
		Pagination: model.NewPagination(page, totalItems),
	}, nil
}

func (r *ArticlesRepository) CountMatching(ctx context.Context, q *query.Query) (int, error) {
	sqlQuery, args, err := psql.Select("COUNT(*)").
		From(articlesJoin).
		Where(r.translator.Translate(q)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int
	if err := r.pool.QueryRow(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	return count, nil
}

func (r *ArticlesRepository) MarkRead(ctx context.Context, id model.ArticleID, read bool) error {
	return r.updateFlag(ctx, id, "read", read)
}

func (r *ArticlesRepository) SetPinned(ctx context.Context, id model.ArticleID, pinned bool) error {
	return r.updateFlag(ctx, id, "pinned", pinned)
}

func (r *ArticlesRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *ArticlesRepository) updateFlag(ctx context.Context, id model.ArticleID, column string, value bool) error {
	sqlQuery, args, err := psql.Update(articlesTable).
		Set(column, value).
		Where(sq.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	result, err := r.pool.Exec(ctx, sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrArticleNotFound
	}

	r.logger.Debug().
		Str("article_id", id.String()).
		Str("column", column).
		Bool("value", value).
		Msg("article flag updated")

	return nil
}

func convertRowToArticle(row articleRow) (*model.Article, error) {
	id, err := model.ParseArticleID(row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse article ID: %w", err)
	}

	feedID, err := model.ParseFeedID(row.FeedID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed ID: %w", err)
	}

	sentiment, err := model.ParseSentiment(row.Sentiment)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sentiment: %w", err)
	}

	return &model.Article{
		ID:     id,
		FeedID: feedID,
		Feed: &model.Feed{
			ID:          feedID,
			Title:       row.FeedTitle,
			URL:         row.FeedURL,
			Starz:       row.FeedStarz,
			UnreadCount: row.FeedUnreadCount,
		},
		Title:       row.Title,
		Text:        row.Body,
		Author:      row.Author,
		Link:        row.Link,
		Tags:        row.Tags,
		PublishedAt: row.PublishedAt,
		Read:        row.Read,
		Pinned:      row.Pinned,
		Sentiment:   sentiment,
	}, nil
}
