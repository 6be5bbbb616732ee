package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is a Store backed by a PostgreSQL table, letting several
// engine instances share travel cache entries and breaker counters.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool and verifies it.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Init creates the backing table if it does not exist.
func (s *PostgresStore) Init(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS cache_entries (
			key        TEXT PRIMARY KEY,
			value      BYTEA,
			count      BIGINT NOT NULL DEFAULT 0,
			expires_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to create cache_entries table: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Get returns the live value at key.
func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM cache_entries WHERE key = $1 AND expires_at > NOW()`,
		key,
	).Scan(&value)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, true, nil
}

// Set writes value under key with the given TTL.
func (s *PostgresStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO cache_entries (key, value, count, expires_at)
		 VALUES ($1, $2, 0, NOW() + $3)
		 ON CONFLICT (key) DO UPDATE SET value = $2, count = 0, expires_at = NOW() + $3`,
		key, value, ttl,
	)
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Incr increments the counter at key inside a fixed window. An expired
// counter restarts at 1 with a fresh window, a live one keeps its expiry.
func (s *PostgresStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO cache_entries (key, count, expires_at)
		 VALUES ($1, 1, NOW() + $2)
		 ON CONFLICT (key) DO UPDATE SET
			count = CASE WHEN cache_entries.expires_at <= NOW() THEN 1 ELSE cache_entries.count + 1 END,
			expires_at = CASE WHEN cache_entries.expires_at <= NOW() THEN NOW() + $2 ELSE cache_entries.expires_at END
		 RETURNING count`,
		key, window,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to increment %s: %w", key, err)
	}
	return count, nil
}

// Count returns the live counter value at key.
func (s *PostgresStore) Count(ctx context.Context, key string) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx,
		`SELECT count FROM cache_entries WHERE key = $1 AND expires_at > NOW()`,
		key,
	).Scan(&count)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to count %s: %w", key, err)
	}
	return count, nil
}
