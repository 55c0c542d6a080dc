// Package database opens the PostgreSQL pool backing the order store.
package database

import (
	"context"
	"fmt"
	"time"

	"orderdesk/internal/config"
	"orderdesk/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// NewPool creates a PostgreSQL connection pool, verifies it with a ping and makes
// sure the order schema exists.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime) * time.Second
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Int("max_connections", cfg.MaxConnections).
		Msg("connecting to order store")

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := repository.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info().Msg("order store ready")

	return pool, nil
}

// OpenOrderStore returns the order repository selected by cfg.Store and a function releasing it.
func OpenOrderStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.OrderRepository, func(), error) {
	if cfg.Store.Backend == config.BackendMemory {
		logger.Warn().Msg("using in-memory order store, orders are lost on restart")
		return repository.NewMemoryOrderRepository(logger), func() {}, nil
	}

	pool, err := NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return repository.NewOrderRepository(pool, logger), pool.Close, nil
}
