package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the DDL for the order store. status is nullable so rows written
// before the column had a default still load; readers treat NULL as Pending.
const Schema = `
	CREATE TABLE IF NOT EXISTS orders (
		seq           BIGSERIAL UNIQUE,
		id            TEXT PRIMARY KEY,
		customer_name TEXT NOT NULL,
		phone         TEXT NOT NULL,
		address       TEXT NOT NULL,
		products      TEXT NOT NULL,
		courier       TEXT,
		total_price   DOUBLE PRECISION CHECK (total_price >= 0),
		status        TEXT DEFAULT 'Pending',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC);
`

// EnsureSchema creates the order tables if they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
