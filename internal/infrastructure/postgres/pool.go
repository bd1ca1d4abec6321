package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pitosalas/blogbridge-sub012/internal/config"
	"github.com/pitosalas/blogbridge-sub012/pkg/logger"
)

// NewPool connects to Postgres, retrying with exponential backoff until the
// database answers a ping or the configured number of attempts is spent.
func NewPool(ctx context.Context, cfg config.Database, retry config.Backoff, log logger.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(ConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolConfig.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	connect := func() (*pgxpool.Pool, error) {
		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("creating connection pool: %w", err))
		}

		if err := pool.Ping(ctx); err != nil {
			pool.Close()

			return nil, fmt.Errorf("pinging database: %w", err)
		}

		return pool, nil
	}

	notify := func(err error, next time.Duration) {
		log.Warn().
			Err(err).
			Str("host", cfg.Host).
			Dur("retry_in", next).
			Msg("database not ready")
	}

	return backoff.Retry(ctx, connect,
		backoff.WithBackOff(NewExponentialBackOff(retry)),
		backoff.WithMaxTries(cfg.ConnectRetries+1),
		backoff.WithNotify(notify),
	)
}

func NewExponentialBackOff(cfg config.Backoff) *backoff.ExponentialBackOff {
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = cfg.BaseDelay
	expBackoff.Multiplier = cfg.Multiplier
	expBackoff.RandomizationFactor = cfg.Jitter
	expBackoff.MaxInterval = cfg.MaxDelay
	expBackoff.Reset()

	return expBackoff
}

func ConnString(cfg config.Database) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Username,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)
}
