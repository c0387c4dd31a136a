package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/TheDigger_Go/internal/domain"
)

// ObserveFunc receives the outcome of every store call.
type ObserveFunc func(op string, d time.Duration, err error)

// Observed decorates a Store: each call is timed and reported, and adapter
// failures are wrapped in domain.ErrStoreUnavailable. ErrNotFound passes
// through untouched.
type Observed struct {
	next    Store
	observe ObserveFunc
}

var _ Store = (*Observed)(nil)

// Observe wraps next. A nil observe only wraps errors.
func Observe(next Store, observe ObserveFunc) *Observed {
	if observe == nil {
		observe = func(string, time.Duration, error) {}
	}
	return &Observed{next: next, observe: observe}
}

func (o *Observed) done(op string, start time.Time, err error) error {
	o.observe(op, time.Since(start), err)
	if err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, domain.ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
}

func (o *Observed) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	v, err := o.next.Get(ctx, key)
	return v, o.done("get", start, err)
}

func (o *Observed) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	return o.done("set", start, o.next.Set(ctx, key, value))
}

func (o *Observed) Delete(ctx context.Context, key string) error {
	start := time.Now()
	return o.done("delete", start, o.next.Delete(ctx, key))
}

func (o *Observed) IncrBy(ctx context.Context, key string, delta int64) (int64, error) {
	start := time.Now()
	v, err := o.next.IncrBy(ctx, key, delta)
	return v, o.done("incrby", start, err)
}

func (o *Observed) IncrByMany(ctx context.Context, deltas map[string]int64) (map[string]int64, error) {
	start := time.Now()
	v, err := o.next.IncrByMany(ctx, deltas)
	return v, o.done("incrbymany", start, err)
}

func (o *Observed) GetCounter(ctx context.Context, key string) (int64, error) {
	start := time.Now()
	v, err := o.next.GetCounter(ctx, key)
	return v, o.done("getcounter", start, err)
}

func (o *Observed) ZAdd(ctx context.Context, key, member string, score float64) error {
	start := time.Now()
	return o.done("zadd", start, o.next.ZAdd(ctx, key, member, score))
}

func (o *Observed) ZRem(ctx context.Context, key, member string) error {
	start := time.Now()
	return o.done("zrem", start, o.next.ZRem(ctx, key, member))
}

func (o *Observed) ZRange(ctx context.Context, key string, start, stop int64, desc bool) ([]domain.ScoredMember, error) {
	t := time.Now()
	v, err := o.next.ZRange(ctx, key, start, stop, desc)
	return v, o.done("zrange", t, err)
}

func (o *Observed) ZCard(ctx context.Context, key string) (int64, error) {
	start := time.Now()
	v, err := o.next.ZCard(ctx, key)
	return v, o.done("zcard", start, err)
}

func (o *Observed) ZRank(ctx context.Context, key, member string) (int64, error) {
	start := time.Now()
	v, err := o.next.ZRank(ctx, key, member)
	return v, o.done("zrank", start, err)
}

func (o *Observed) ZRemRangeByRank(ctx context.Context, key string, start, stop int64) error {
	t := time.Now()
	return o.done("zremrangebyrank", t, o.next.ZRemRangeByRank(ctx, key, start, stop))
}

func (o *Observed) HGet(ctx context.Context, key, field string) (string, error) {
	start := time.Now()
	v, err := o.next.HGet(ctx, key, field)
	return v, o.done("hget", start, err)
}

func (o *Observed) HSet(ctx context.Context, key, field, value string) error {
	start := time.Now()
	return o.done("hset", start, o.next.HSet(ctx, key, field, value))
}

func (o *Observed) HSetNX(ctx context.Context, key, field, value string) (bool, error) {
	start := time.Now()
	v, err := o.next.HSetNX(ctx, key, field, value)
	return v, o.done("hsetnx", start, err)
}

func (o *Observed) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	start := time.Now()
	v, err := o.next.HGetAll(ctx, key)
	return v, o.done("hgetall", start, err)
}

func (o *Observed) HLen(ctx context.Context, key string) (int64, error) {
	start := time.Now()
	v, err := o.next.HLen(ctx, key)
	return v, o.done("hlen", start, err)
}

func (o *Observed) Ping(ctx context.Context) error {
	start := time.Now()
	return o.done("ping", start, o.next.Ping(ctx))
}

func (o *Observed) Close() error {
	return o.next.Close()
}
