// Package postgres implements kvstore.Store on PostgreSQL tables.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/TheDigger_Go/internal/domain"
	"github.com/osse101/TheDigger_Go/internal/kvstore"
	"github.com/osse101/TheDigger_Go/internal/logger"
)

// Store is a kvstore.Store and kvstore.Locker backed by a pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

var (
	_ kvstore.Store  = (*Store)(nil)
	_ kvstore.Locker = (*Store)(nil)
)

// NewStore wraps an open pool. The schema must already be migrated.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type txKey struct{}

// q returns the transaction WithLock bound to ctx, or the pool. Calls made
// under a lock therefore reuse the lock's connection and commit with it.
func (s *Store) q(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return s.pool
}

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error(LogMsgRollbackFailed, "error", err)
	}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.q(ctx).QueryRow(ctx, sqlGetBlob, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, kvstore.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetBlobFailed, key, err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.q(ctx).Exec(ctx, sqlSetBlob, key, value); err != nil {
		return fmt.Errorf(ErrMsgSetBlobFailed, key, err)
	}
	return nil
}

// Delete removes key whatever type it holds.
func (s *Store) Delete(ctx context.Context, key string) error {
	tx, err := s.q(ctx).Begin(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer SafeRollback(ctx, tx)

	for _, q := range []string{sqlDeleteBlob, sqlDeleteCounter, sqlZDelete, sqlHDelete} {
		if _, err := tx.Exec(ctx, q, key); err != nil {
			return fmt.Errorf(ErrMsgDeleteKeyFailed, key, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitTxFailed, err)
	}
	return nil
}

func (s *Store) IncrBy(ctx context.Context, key string, delta int64) (int64, error) {
	var value int64
	if err := s.q(ctx).QueryRow(ctx, sqlIncrCounter, key, delta).Scan(&value); err != nil {
		return 0, fmt.Errorf(ErrMsgIncrCounterFailed, key, err)
	}
	return value, nil
}

func (s *Store) IncrByMany(ctx context.Context, deltas map[string]int64) (map[string]int64, error) {
	tx, err := s.q(ctx).Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer SafeRollback(ctx, tx)

	// Sorted keys keep row locks in one order across concurrent callers.
	out := make(map[string]int64, len(deltas))
	for _, key := range slices.Sorted(maps.Keys(deltas)) {
		var value int64
		if err := tx.QueryRow(ctx, sqlIncrCounter, key, deltas[key]).Scan(&value); err != nil {
			return nil, fmt.Errorf(ErrMsgIncrCounterFailed, key, err)
		}
		out[key] = value
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTxFailed, err)
	}
	return out, nil
}

func (s *Store) GetCounter(ctx context.Context, key string) (int64, error) {
	var value int64
	err := s.q(ctx).QueryRow(ctx, sqlGetCounter, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf(ErrMsgGetCounterFailed, key, err)
	}
	return value, nil
}

func (s *Store) ZAdd(ctx context.Context, key, member string, score float64) error {
	if _, err := s.q(ctx).Exec(ctx, sqlZAdd, key, member, score); err != nil {
		return fmt.Errorf(ErrMsgZAddFailed, key, err)
	}
	return nil
}

func (s *Store) ZRem(ctx context.Context, key, member string) error {
	if _, err := s.q(ctx).Exec(ctx, sqlZRem, key, member); err != nil {
		return fmt.Errorf(ErrMsgZRemFailed, key, err)
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
	rows, err := s.q(ctx).Query(ctx, query, key, to-from+1, from)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgZRangeFailed, key, err)
	}
	members, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ScoredMember, error) {
		var sm domain.ScoredMember
		err := row.Scan(&sm.Member, &sm.Score)
		return sm, err
	})
	if err != nil {
		return nil, fmt.Errorf(ErrMsgZRangeFailed, key, err)
	}
	return members, nil
}

func (s *Store) ZCard(ctx context.Context, key string) (int64, error) {
	var n int64
	if err := s.q(ctx).QueryRow(ctx, sqlZCard, key).Scan(&n); err != nil {
		return 0, fmt.Errorf(ErrMsgZCardFailed, key, err)
	}
	return n, nil
}

func (s *Store) ZRank(ctx context.Context, key, member string) (int64, error) {
	var rank int64
	err := s.q(ctx).QueryRow(ctx, sqlZRank, key, member).Scan(&rank)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, kvstore.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf(ErrMsgZRankFailed, key, err)
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
	if _, err := s.q(ctx).Exec(ctx, sqlZRemRange, key, to-from+1, from); err != nil {
		return fmt.Errorf(ErrMsgZRemRangeFailed, key, err)
	}
	return nil
}

func (s *Store) HGet(ctx context.Context, key, field string) (string, error) {
	var value string
	err := s.q(ctx).QueryRow(ctx, sqlHGet, key, field).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", kvstore.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf(ErrMsgHGetFailed, key, err)
	}
	return value, nil
}

func (s *Store) HSet(ctx context.Context, key, field, value string) error {
	if _, err := s.q(ctx).Exec(ctx, sqlHSet, key, field, value); err != nil {
		return fmt.Errorf(ErrMsgHSetFailed, key, err)
	}
	return nil
}

// HSetNX reports whether this call created the field.
func (s *Store) HSetNX(ctx context.Context, key, field, value string) (bool, error) {
	tag, err := s.q(ctx).Exec(ctx, sqlHSetNX, key, field, value)
	if err != nil {
		return false, fmt.Errorf(ErrMsgHSetFailed, key, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	rows, err := s.q(ctx).Query(ctx, sqlHGetAll, key)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgHGetAllFailed, key, err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var field, value string
		if err := rows.Scan(&field, &value); err != nil {
			return nil, fmt.Errorf(ErrMsgHGetAllFailed, key, err)
		}
		out[field] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(ErrMsgHGetAllFailed, key, err)
	}
	return out, nil
}

func (s *Store) HLen(ctx context.Context, key string) (int64, error) {
	var n int64
	if err := s.q(ctx).QueryRow(ctx, sqlHLen, key).Scan(&n); err != nil {
		return 0, fmt.Errorf(ErrMsgHLenFailed, key, err)
	}
	return n, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
