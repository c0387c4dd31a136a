package postgres

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/osse101/TheDigger_Go/internal/database"
	"github.com/osse101/TheDigger_Go/migrations"
)

// Migrate applies the embedded PostgreSQL migrations through the pool.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	fsys, err := fs.Sub(migrations.Postgres, migrations.PostgresDir)
	if err != nil {
		return fmt.Errorf(ErrMsgMigrationsSubFailed, err)
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	return database.Migrate(ctx, db, goose.DialectPostgres, fsys)
}

// Open connects, migrates and returns a ready store.
func Open(ctx context.Context, connString string, cfg database.PoolConfig) (*Store, error) {
	pool, err := database.NewPool(ctx, connString, cfg)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return NewStore(pool), nil
}
