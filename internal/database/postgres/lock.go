package postgres

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// WithLock runs fn while holding a transaction-scoped advisory lock on key.
// Store calls made with the ctx passed to fn run inside that transaction, so
// a save holds one connection and its writes commit or roll back together.
func (s *Store) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	tx, err := s.q(ctx).Begin(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer SafeRollback(ctx, tx)

	if _, err := tx.Exec(ctx, SQLAdvisoryLock, lockKey(key)); err != nil {
		return fmt.Errorf(ErrMsgAcquireLockFailed, key, err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitTxFailed, err)
	}
	return nil
}

// lockKey hashes key into the positive int64 range pg_advisory_xact_lock takes.
func lockKey(key string) int64 {
	h := sha256.Sum256([]byte(key))
	return int64(binary.BigEndian.Uint64(h[:8]) & HashMaskPositiveInt64)
}
