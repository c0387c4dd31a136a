package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

// Migrate applies every pending goose migration found in fsys.
func Migrate(ctx context.Context, db *sql.DB, dialect goose.Dialect, fsys fs.FS) error {
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf(ErrMsgMigrationProvider, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgApplyMigrations, err)
	}
	for _, r := range results {
		slog.Default().Info(LogMsgMigrationApplied, "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}
