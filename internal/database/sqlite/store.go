// Package sqlite implements kvstore.Store on an embedded SQLite file for
// single-node deployments.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/osse101/TheDigger_Go/internal/database"
	"github.com/osse101/TheDigger_Go/internal/domain"
	"github.com/osse101/TheDigger_Go/internal/kvstore"
	"github.com/osse101/TheDigger_Go/migrations"
)

// Store is a kvstore.Store over one SQLite connection.
type Store struct {
	db *sql.DB
}

var _ kvstore.Store = (*Store)(nil)

// Open creates the file if needed, applies pragmas and migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, errors.New(ErrMsgEmptyPath)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf(ErrMsgCreateDirFailed, err)
	}

	db, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgOpenFailed, err)
	}
	// SQLite has a single writer; one connection keeps writes ordered.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf(ErrMsgPragmaFailed, p, err)
		}
	}

	fsys, err := fs.Sub(migrations.SQLite, migrations.SQLiteDir)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf(ErrMsgMigrationsSubFailed, err)
	}
	if err := database.Migrate(ctx, db, goose.DialectSQLite3, fsys); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func queryErr(op, key string, err error) error {
	return fmt.Errorf(ErrMsgQueryFailed, op, key, err)
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, sqlGetBlob, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, kvstore.ErrNotFound
	}
	if err != nil {
		return nil, queryErr(opGet, key, err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, sqlSetBlob, key, value); err != nil {
		return queryErr(opSet, key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range []string{sqlDeleteBlob, sqlDeleteCounter, sqlZDelete, sqlHDelete} {
		if _, err := tx.ExecContext(ctx, q, key); err != nil {
			return queryErr(opDelete, key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf(ErrMsgCommitTxFailed, err)
	}
	return nil
}

func (s *Store) IncrBy(ctx context.Context, key string, delta int64) (int64, error) {
	var value int64
	if err := s.db.QueryRowContext(ctx, sqlIncrCounter, key, delta).Scan(&value); err != nil {
		return 0, queryErr(opIncr, key, err)
	}
	return value, nil
}

func (s *Store) IncrByMany(ctx context.Context, deltas map[string]int64) (map[string]int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer func() { _ = tx.Rollback() }()

	out := make(map[string]int64, len(deltas))
	for _, key := range slices.Sorted(maps.Keys(deltas)) {
		var value int64
		if err := tx.QueryRowContext(ctx, sqlIncrCounter, key, deltas[key]).Scan(&value); err != nil {
			return nil, queryErr(opIncr, key, err)
		}
		out[key] = value
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTxFailed, err)
	}
	return out, nil
}

func (s *Store) GetCounter(ctx context.Context, key string) (int64, error) {
	var value int64
	err := s.db.QueryRowContext(ctx, sqlGetCounter, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, queryErr(opGetCounter, key, err)
	}
	return value, nil
}

func (s *Store) ZAdd(ctx context.Context, key, member string, score float64) error {
	if _, err := s.db.ExecContext(ctx, sqlZAdd, key, member, score); err != nil {
		return queryErr(opZAdd, key, err)
	}
	return nil
}

func (s *Store) ZRem(ctx context.Context, key, member string) error {
	if _, err := s.db.ExecContext(ctx, sqlZRem, key, member); err != nil {
		return queryErr(opZRem, key, err)
	}
	return nil
}

func (s *Store) ZRange(ctx context.Context, key string, start, stop int64, desc bool) ([]domain.ScoredMember, error) {
	card, err := s.ZCard(ctx, key)
	if err != nil {
		return nil, err
	}
	from, to, ok := kvstore.NormalizeRange(start, stop, card)
	if !ok {
		return []domain.ScoredMember{}, nil
	}

	query := sqlZRangeAsc
	if desc {
		query = sqlZRangeDsc
	}
	rows, err := s.db.QueryContext(ctx, query, key, to-from+1, from)
	if err != nil {
		return nil, queryErr(opZRange, key, err)
	}
	defer rows.Close()

	out := make([]domain.ScoredMember, 0, to-from+1)
	for rows.Next() {
		var sm domain.ScoredMember
		if err := rows.Scan(&sm.Member, &sm.Score); err != nil {
			return nil, queryErr(opZRange, key, err)
		}
		out = append(out, sm)
	}
	if err := rows.Err(); err != nil {
		return nil, queryErr(opZRange, key, err)
	}
	return out, nil
}

func (s *Store) ZCard(ctx context.Context, key string) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, sqlZCard, key).Scan(&n); err != nil {
		return 0, queryErr(opZCard, key, err)
	}
	return n, nil
}

func (s *Store) ZRank(ctx context.Context, key, member string) (int64, error) {
	var rank int64
	err := s.db.QueryRowContext(ctx, sqlZRank, key, member).Scan(&rank)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, kvstore.ErrNotFound
	}
	if err != nil {
		return 0, queryErr(opZRank, key, err)
	}
	return rank, nil
}

func (s *Store) ZRemRangeByRank(ctx context.Context, key string, start, stop int64) error {
	card, err := s.ZCard(ctx, key)
	if err != nil {
		return err
	}
	from, to, ok := kvstore.NormalizeRange(start, stop, card)
	if !ok {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, sqlZRemRange, key, to-from+1, from); err != nil {
		return queryErr(opZRemRange, key, err)
	}
	return nil
}

func (s *Store) HGet(ctx context.Context, key, field string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, sqlHGet, key, field).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", kvstore.ErrNotFound
	}
	if err != nil {
		return "", queryErr(opHGet, key, err)
	}
	return value, nil
}

func (s *Store) HSet(ctx context.Context, key, field, value string) error {
	if _, err := s.db.ExecContext(ctx, sqlHSet, key, field, value); err != nil {
		return queryErr(opHSet, key, err)
	}
	return nil
}

func (s *Store) HSetNX(ctx context.Context, key, field, value string) (bool, error) {
	res, err := s.db.ExecContext(ctx, sqlHSetNX, key, field, value)
	if err != nil {
		return false, queryErr(opHSet, key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, queryErr(opHSet, key, err)
	}
	return n == 1, nil
}

func (s *Store) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, sqlHGetAll, key)
	if err != nil {
		return nil, queryErr(opHGetAll, key, err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var field, value string
		if err := rows.Scan(&field, &value); err != nil {
			return nil, queryErr(opHGetAll, key, err)
		}
		out[field] = value
	}
	if err := rows.Err(); err != nil {
		return nil, queryErr(opHGetAll, key, err)
	}
	return out, nil
}

func (s *Store) HLen(ctx context.Context, key string) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, sqlHLen, key).Scan(&n); err != nil {
		return 0, queryErr(opHLen, key, err)
	}
	return n, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
