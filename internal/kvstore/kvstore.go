// Package kvstore is the persistence surface the reconciliation service is
// written against: blobs, counters, sorted sets and hashes, in the shape of
// a Redis-style key-value store.
package kvstore

import (
	"context"
	"errors"

	"github.com/osse101/TheDigger_Go/internal/domain"
)

// ErrNotFound is returned for missing blobs, hash fields and sorted-set members.
var ErrNotFound = errors.New("kvstore: not found")

// Store is implemented by every adapter. Sorted sets order by score, then
// by member, and accept Redis-style rank ranges where negative indexes count
// from the end.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key whatever its type. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// IncrBy adds delta to a counter, creating it at zero, and returns the new value.
	IncrBy(ctx context.Context, key string, delta int64) (int64, error)
	// GetCounter returns 0 for a missing counter.
	GetCounter(ctx context.Context, key string) (int64, error)
	// IncrByMany applies every delta or none of them and returns the new
	// values keyed like deltas.
	IncrByMany(ctx context.Context, deltas map[string]int64) (map[string]int64, error)

	ZAdd(ctx context.Context, key, member string, score float64) error
	ZRem(ctx context.Context, key, member string) error
	ZRange(ctx context.Context, key string, start, stop int64, desc bool) ([]domain.ScoredMember, error)
	ZCard(ctx context.Context, key string) (int64, error)
	// ZRank is the 0-based ascending rank of member.
	ZRank(ctx context.Context, key, member string) (int64, error)
	ZRemRangeByRank(ctx context.Context, key string, start, stop int64) error

	HGet(ctx context.Context, key, field string) (string, error)
	HSet(ctx context.Context, key, field, value string) error
	// HSetNX sets field only when it is absent and reports whether it did.
	HSetNX(ctx context.Context, key, field, value string) (bool, error)
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HLen(ctx context.Context, key string) (int64, error)

	Ping(ctx context.Context) error
	Close() error
}

// Locker provides mutual exclusion across processes sharing one store.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// NormalizeRange resolves a Redis-style inclusive rank range against a set
// of n members. ok is false when the range selects nothing.
func NormalizeRange(start, stop, n int64) (from, to int64, ok bool) {
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if n == 0 || start > stop || start >= n {
		return 0, 0, false
	}
	return start, stop, true
}
