package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pitosalas/blogbridge-sub012/internal/concurrency"
	"github.com/pitosalas/blogbridge-sub012/internal/domain/model"
	"github.com/pitosalas/blogbridge-sub012/internal/domain/query"
	"github.com/pitosalas/blogbridge-sub012/internal/ports"
	"github.com/pitosalas/blogbridge-sub012/pkg/circuitbreaker"
	"github.com/pitosalas/blogbridge-sub012/pkg/logger"
)

type SmartFeedsService struct {
	articles   ports.ArticlesRepository
	smartFeeds ports.SmartFeedsRepository
	counts     *concurrency.Calculator[model.SmartFeedID, int]
	countCB    *circuitbreaker.CircuitBreaker[int]
	listCB     *circuitbreaker.CircuitBreaker[*model.ArticleList]
	now        func() time.Time
	logger     logger.Logger
}

// NewSmartFeedsService starts the match count calculator. Close stops it.
// now resolves synthetic date ranges during in-memory matching and should be
// the clock the article repository translates queries with; nil means
// time.Now.
func NewSmartFeedsService(
	articles ports.ArticlesRepository,
	smartFeeds ports.SmartFeedsRepository,
	breaker circuitbreaker.Config,
	now func() time.Time,
	log logger.Logger,
	calculatorOpts ...concurrency.Option,
) *SmartFeedsService {
	log = log.Component("smart_feeds_service")

	if now == nil {
		now = time.Now
	}

	s := &SmartFeedsService{
		articles:   articles,
		smartFeeds: smartFeeds,
		now:        now,
		logger:     log,
	}

	countCfg := breaker
	countCfg.Name = breaker.Name + ".count"
	s.countCB = circuitbreaker.New[int](countCfg, circuitbreaker.WithLogger(log))

	listCfg := breaker
	listCfg.Name = breaker.Name + ".list"
	s.listCB = circuitbreaker.New[*model.ArticleList](listCfg, circuitbreaker.WithLogger(log))

	s.counts = concurrency.NewCalculator[model.SmartFeedID, int](s.countMatches, calculatorOpts...)

	return s
}

func (s *SmartFeedsService) SaveSmartFeed(ctx context.Context, id model.SmartFeedID, title, rawQuery string) (*model.SmartFeed, error) {
	q, err := query.Parse(rawQuery)
	if err != nil {
		return nil, err
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}

	feed, err := s.smartFeeds.FetchByID(ctx, id)

	switch {
	case errors.Is(err, model.ErrSmartFeedNotFound):
		feed, err = model.NewSmartFeed(id, title, q)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		feed.Rename(title)
		feed.ReplaceQuery(q)

		if err := feed.Validate(); err != nil {
			return nil, err
		}
	}

	if err := s.smartFeeds.Save(ctx, feed); err != nil {
		return nil, err
	}

	s.counts.InvalidateKey(id)

	return feed, nil
}

func (s *SmartFeedsService) GetSmartFeed(ctx context.Context, id model.SmartFeedID) (*model.SmartFeedView, error) {
	feed, err := s.smartFeeds.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.counts.GetValue(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("counting matches of smart feed %s: %w", id, err)
	}

	return &model.SmartFeedView{SmartFeed: feed, MatchCount: count}, nil
}

func (s *SmartFeedsService) ListSmartFeeds(ctx context.Context) ([]*model.SmartFeed, error) {
	return s.smartFeeds.List(ctx)
}

func (s *SmartFeedsService) ListArticles(ctx context.Context, id model.SmartFeedID, page model.PageRequest) (*model.ArticleList, error) {
	feed, err := s.smartFeeds.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return circuitbreaker.Execute(ctx, s.listCB, func(ctx context.Context) (*model.ArticleList, error) {
		return s.articles.ListMatching(ctx, feed.Query, page.Normalize())
	})
}

func (s *SmartFeedsService) DeleteSmartFeed(ctx context.Context, id model.SmartFeedID) error {
	if err := s.smartFeeds.Delete(ctx, id); err != nil {
		return err
	}

	s.counts.RemoveKey(id)

	return nil
}

func (s *SmartFeedsService) MarkArticleRead(ctx context.Context, id model.ArticleID, read bool) error {
	if err := s.articles.MarkRead(ctx, id, read); err != nil {
		return err
	}

	// Read status feeds both articleStatus and feedUnreadCount, so any
	// smart feed may have moved.
	s.counts.InvalidateAll()

	return nil
}

func (s *SmartFeedsService) ArticleArrived(ctx context.Context, id model.ArticleID) ([]model.SmartFeedID, error) {
	article, err := s.articles.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	feeds, err := s.smartFeeds.List(ctx)
	if err != nil {
		return nil, err
	}

	affected := make([]model.SmartFeedID, 0, len(feeds))
	now := s.now()

	for _, feed := range feeds {
		log := s.logger.WithContext(ctx).With().
			Str("smart_feed_id", feed.ID.String()).
			Str("article_id", id.String()).
			Logger()

		if usesProperty(feed.Query, query.FeedUnreadCountProperty) {
			s.counts.InvalidateKey(feed.ID)
			affected = append(affected, feed.ID)

			continue
		}

		matched, err := feed.Query.MatchAt(article, now)
		if err != nil {
			log.Warn().Err(err).Msg("skipping smart feed that cannot be evaluated")

			continue
		}

		if matched {
			s.counts.InvalidateKey(feed.ID)
			affected = append(affected, feed.ID)
		}
	}

	log := s.logger.WithContext(ctx)
	log.Debug().
		Str("article_id", id.String()).
		Int("affected", len(affected)).
		Msg("article arrival processed")

	return affected, nil
}

func (s *SmartFeedsService) Describe() []query.Property {
	return query.Properties()
}

// CountBreakerState reports the breaker guarding match counts.
func (s *SmartFeedsService) CountBreakerState() string {
	return s.countCB.State()
}

func (s *SmartFeedsService) Close(ctx context.Context) error {
	return s.counts.Close(ctx)
}

func (s *SmartFeedsService) countMatches(ctx context.Context, id model.SmartFeedID) (int, error) {
	feed, err := s.smartFeeds.FetchByID(ctx, id)
	if err != nil {
		return 0, err
	}

	return circuitbreaker.Execute(ctx, s.countCB, func(ctx context.Context) (int, error) {
		return s.articles.CountMatching(ctx, feed.Query)
	})
}

func usesProperty(q *query.Query, property query.Property) bool {
	if q == nil {
		return false
	}

	for _, c := range q.All() {
		if c.Property() == property {
			return true
		}
	}

	return false
}
