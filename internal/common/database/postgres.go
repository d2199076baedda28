// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"assessment-workers/internal/common/config"
)

// schema creates the assessment collection. seq preserves submission order.
const schema = `
CREATE TABLE IF NOT EXISTS assessments (
	id                UUID PRIMARY KEY,
	seq               BIGSERIAL NOT NULL,
	email             TEXT NOT NULL,
	business_name     TEXT NOT NULL DEFAULT '',
	account_type      TEXT NOT NULL,
	monthly_revenue   DOUBLE PRECISION NOT NULL DEFAULT 0,
	monthly_fees      DOUBLE PRECISION NOT NULL DEFAULT 0,
	cash_deposits     BOOLEAN NOT NULL DEFAULT FALSE,
	wants_grants      BOOLEAN NOT NULL DEFAULT FALSE,
	zip_code          TEXT NOT NULL DEFAULT '',
	veteran_owned     BOOLEAN NOT NULL DEFAULT FALSE,
	immigrant_founder BOOLEAN NOT NULL DEFAULT FALSE,
	bank_suggestion   TEXT NOT NULL DEFAULT '',
	grant_suggestion  TEXT NOT NULL DEFAULT '',
	submitted_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_assessments_email_seq ON assessments (lower(email), seq DESC);
`

// PostgresClient wraps the SQL database connection.
type PostgresClient struct {
	DB *sql.DB
}

func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

// NewPostgresFromDB wraps an existing handle, e.g. a sqlmock connection.
func NewPostgresFromDB(db *sql.DB) *PostgresClient {
	return &PostgresClient{DB: db}
}

func (c *PostgresClient) Ping(ctx context.Context) error {
	if err := c.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres ping failed: %w", err)
	}
	return nil
}

// Migrate creates the tables the stores need. It is idempotent.
func (c *PostgresClient) Migrate(ctx context.Context) error {
	if _, err := c.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("postgres migrate failed: %w", err)
	}
	return nil
}

func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
