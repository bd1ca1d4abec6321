package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pitosalas/blogbridge-sub012/internal/config"
	appLogger "github.com/pitosalas/blogbridge-sub012/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

type KeydbClient struct {
	client *redis.Client
	logger appLogger.Logger
}

func NewKeyDBClient(cfg config.Cache, logger appLogger.Logger) *KeydbClient {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	return NewKeyDBClientFrom(client, logger)
}

// NewKeyDBClientFrom wraps an existing client, for tests against miniredis.
func NewKeyDBClientFrom(client *redis.Client, logger appLogger.Logger) *KeydbClient {
	return &KeydbClient{
		client: client,
		logger: logger,
	}
}

func (c *KeydbClient) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *KeydbClient) Close() error {
	return c.client.Close()
}

// Get returns ErrCacheMiss when key does not exist.
func (c *KeydbClient) Get(ctx context.Context, key string) ([]byte, error) {
	startTime := time.Now()

	result, err := c.client.Get(ctx, key).Bytes()

	c.logger.Debug().
		Str("key", key).
		Int64("duration_ms", time.Since(startTime).Milliseconds()).
		Bool("hit", err == nil).
		Msg("keydb get operation")

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}

		c.logger.Error().
			Err(err).
			Str("key", key).
			Msg("keydb get operation failed")

		return nil, fmt.Errorf("getting %s: %w", key, err)
	}

	return result, nil
}

// Set stores value without expiry when ttl is zero.
func (c *KeydbClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	startTime := time.Now()
	var err error

	defer func() {
		c.logger.Debug().
			Str("key", key).
			Int64("duration_ms", time.Since(startTime).Milliseconds()).
			Bool("success", err == nil).
			Msg("keydb set operation")
	}()

	err = c.client.Set(ctx, key, value, ttl).Err()

	return err
}

// Delete reports whether key existed.
func (c *KeydbClient) Delete(ctx context.Context, key string) (bool, error) {
	startTime := time.Now()
	var err error

	defer func() {
		c.logger.Debug().
			Str("key", key).
			Int64("duration_ms", time.Since(startTime).Milliseconds()).
			Bool("success", err == nil).
			Msg("keydb delete operation")
	}()

	removed, err := c.client.Del(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("deleting %s: %w", key, err)
	}

	return removed > 0, nil
}

// Scan iterates over keys matching a pattern.
func (c *KeydbClient) Scan(ctx context.Context, cursor uint64, pattern string, count int64) ([]string, uint64, error) {
	keys, nextCursor, err := c.client.Scan(ctx, cursor, pattern, count).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("scanning keys: %w", err)
	}

	return keys, nextCursor, nil
}
