package repos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/pitosalas/blogbridge-sub012/internal/domain/model"
	"github.com/pitosalas/blogbridge-sub012/internal/domain/query"
	"github.com/pitosalas/blogbridge-sub012/internal/infrastructure"
	"github.com/pitosalas/blogbridge-sub012/pkg/logger"
)

const (
	DefaultSmartFeedKeyPrefix = "smartfeed:v1:"

	scanBatchSize = 100
)

// ErrCorruptSmartFeed marks a stored document that cannot be decoded.
var ErrCorruptSmartFeed = errors.New("corrupt smart feed document")

type (
	// KeyValueStore is the subset of infrastructure.KeydbClient used to
	// persist smart feeds.
	KeyValueStore interface {
		Get(ctx context.Context, key string) ([]byte, error)
		Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
		Delete(ctx context.Context, key string) (bool, error)
		Scan(ctx context.Context, cursor uint64, pattern string, count int64) ([]string, uint64, error)
		Ping(ctx context.Context) error
	}

	SmartFeedsRepository struct {
		store     KeyValueStore
		keyPrefix string
		logger    logger.Logger
	}

	// smartFeedDocument is the stored form; the query is kept in its
	// serialized string form.
	smartFeedDocument struct {
		ID        string    `json:"id"`
		Title     string    `json:"title"`
		Query     string    `json:"query"`
		CreatedAt time.Time `json:"createdAt"`
		UpdatedAt time.Time `json:"updatedAt"`
	}
)

func NewSmartFeedsRepository(store KeyValueStore, keyPrefix string, log logger.Logger) *SmartFeedsRepository {
	if keyPrefix == "" {
		keyPrefix = DefaultSmartFeedKeyPrefix
	}

	return &SmartFeedsRepository{
		store:     store,
		keyPrefix: keyPrefix,
		logger:    log,
	}
}

func (r *SmartFeedsRepository) Save(ctx context.Context, feed *model.SmartFeed) error {
	payload, err := json.Marshal(smartFeedDocument{
		ID:        feed.ID.String(),
		Title:     feed.Title,
		Query:     query.Serialize(feed.Query),
		CreatedAt: feed.CreatedAt,
		UpdatedAt: feed.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("encoding smart feed %s: %w", feed.ID, err)
	}

	if err := r.store.Set(ctx, r.key(feed.ID), payload, 0); err != nil {
		return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	return nil
}

func (r *SmartFeedsRepository) FetchByID(ctx context.Context, id model.SmartFeedID) (*model.SmartFeed, error) {
	return r.fetchKey(ctx, r.key(id))
}

// List returns every stored smart feed ordered by creation time.
func (r *SmartFeedsRepository) List(ctx context.Context) ([]*model.SmartFeed, error) {
	var (
		cursor uint64
		feeds  []*model.SmartFeed
	)

	for {
		keys, next, err := r.store.Scan(ctx, cursor, r.keyPrefix+"*", scanBatchSize)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
		}

		for _, key := range keys {
			feed, err := r.fetchKey(ctx, key)
			if errors.Is(err, model.ErrSmartFeedNotFound) {
				continue
			}

			if errors.Is(err, ErrCorruptSmartFeed) {
				r.logger.Warn().
					Err(err).
					Str("key", key).
					Msg("skipping smart feed document that cannot be decoded")

				continue
			}

			if err != nil {
				return nil, err
			}

			feeds = append(feeds, feed)
		}

		if next == 0 {
			break
		}

		cursor = next
	}

	slices.SortFunc(feeds, func(a, b *model.SmartFeed) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}

		return strings.Compare(a.ID.String(), b.ID.String())
	})

	return feeds, nil
}

func (r *SmartFeedsRepository) Delete(ctx context.Context, id model.SmartFeedID) error {
	removed, err := r.store.Delete(ctx, r.key(id))
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	if !removed {
		return model.ErrSmartFeedNotFound
	}

	return nil
}

func (r *SmartFeedsRepository) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}

func (r *SmartFeedsRepository) fetchKey(ctx context.Context, key string) (*model.SmartFeed, error) {
	payload, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, infrastructure.ErrCacheMiss) {
			return nil, model.ErrSmartFeedNotFound
		}

		return nil, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	var doc smartFeedDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrCorruptSmartFeed, key, err)
	}

	id, err := model.ParseSmartFeedID(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrCorruptSmartFeed, key, err)
	}

	q, err := query.Parse(doc.Query)
	if err != nil {
		r.logger.Warn().
			Err(err).
			Str("smart_feed_id", doc.ID).
			Msg("stored query is malformed, loading it as an empty OR query")

		q = query.New()
		q.SetAnd(false)
	}

	return &model.SmartFeed{
		ID:        id,
		Title:     doc.Title,
		Query:     q,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

func (r *SmartFeedsRepository) key(id model.SmartFeedID) string {
	return r.keyPrefix + id.String()
}
