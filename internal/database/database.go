package database

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool interface for database connection pool operations
type Pool interface {
	Ping(ctx context.Context) error
	Close()
}

// PoolConfig sizes the PostgreSQL connection pool.
type PoolConfig struct {
	MaxConns int
	MaxIdle  time.Duration
	MaxLife  time.Duration
}

// NewPool creates a new PostgreSQL connection pool and verifies it answers.
func NewPool(ctx context.Context, connString string, cfg PoolConfig) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgParseConnString, err)
	}

	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = DefaultMaxConnections
	}
	if maxConns > math.MaxInt32 {
		maxConns = math.MaxInt32
	}
	config.MaxConns = int32(maxConns)
	config.MinConns = min(DefaultMinConnections, config.MaxConns)
	if cfg.MaxLife > 0 {
		config.MaxConnLifetime = cfg.MaxLife
	}
	if cfg.MaxIdle > 0 {
		config.MaxConnIdleTime = cfg.MaxIdle
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCreatePool, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf(ErrMsgPingDatabase, err)
	}

	slog.Default().Info(LogMsgConnectedToDatabase, "max_conns", maxConns)
	return pool, nil
}
