package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v4/pgxpool"
)

const connectAttempts = 5

// NewDb connects to Postgres, retrying with exponential backoff while the server comes up.
func NewDb(ctx context.Context, dsn string) (*Database, error) {
	attempt := 0
	pool, err := backoff.Retry(ctx, func() (*pgxpool.Pool, error) {
		attempt++
		pool, err := pgxpool.Connect(ctx, dsn)
		if err != nil {
			log.Printf("Database connect attempt %d failed: %v", attempt, err)
			return nil, err
		}
		return pool, nil
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(connectAttempts),
		backoff.WithMaxElapsedTime(30*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewDatabase(pool), nil
}
