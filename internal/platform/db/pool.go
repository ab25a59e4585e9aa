package db

import (
	"context"
	"fmt"
	"fxconvert/internal/config"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const maxConnIdleTime = 5 * time.Minute

// CreatePoolAndPing opens the preferences pool and fails fast when the server is unreachable.
func CreatePoolAndPing(ctx context.Context, cfg config.DbServer) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.GetConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("failed to parse db config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	// preferences see a handful of writes per user action
	poolCfg.MaxConnIdleTime = maxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}
	return pool, nil
}
