// Package persistence stores curated competitor lists keyed by niche.
package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

const (
	// DefaultPingTimeout bounds the connectivity check on startup
	DefaultPingTimeout = 5 * time.Second
)

// Config holds database connection settings
type Config struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

const schema = `
CREATE TABLE IF NOT EXISTS niche_competitors (
	niche       TEXT        NOT NULL,
	position    INTEGER     NOT NULL,
	name        TEXT        NOT NULL,
	url         TEXT        NOT NULL,
	domain      TEXT        NOT NULL,
	description TEXT        NOT NULL DEFAULT '',
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (niche, domain)
);
CREATE INDEX IF NOT EXISTS idx_niche_competitors_niche_position ON niche_competitors (niche, position);
`

// NewPostgresConnection opens and verifies a PostgreSQL connection pool
func NewPostgresConnection(cfg Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), DefaultPingTimeout)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", pingErr)
	}

	return db, nil
}

// EnsureSchema creates the curated competitor table when missing
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
