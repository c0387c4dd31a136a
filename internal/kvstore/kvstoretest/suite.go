// Package kvstoretest holds the behaviour every kvstore adapter must share.
package kvstoretest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TheDigger_Go/internal/domain"
	"github.com/osse101/TheDigger_Go/internal/kvstore"
)

// Factory returns a fresh, empty store. It is called once per subtest.
type Factory func(t *testing.T) kvstore.Store

// Run exercises an adapter against the shared contract.
func Run(t *testing.T, newStore Factory) {
	t.Run("blobs", func(t *testing.T) { testBlobs(t, newStore(t)) })
	t.Run("counters", func(t *testing.T) { testCounters(t, newStore(t)) })
	t.Run("sorted sets", func(t *testing.T) { testSortedSets(t, newStore(t)) })
	t.Run("sorted set ranges", func(t *testing.T) { testRanges(t, newStore(t)) })
	t.Run("hashes", func(t *testing.T) { testHashes(t, newStore(t)) })
	t.Run("delete any type", func(t *testing.T) { testDelete(t, newStore(t)) })
	t.Run("concurrent HSetNX", func(t *testing.T) { testConcurrentHSetNX(t, newStore(t)) })
	t.Run("concurrent IncrBy", func(t *testing.T) { testConcurrentIncr(t, newStore(t)) })
	t.Run("IncrByMany", func(t *testing.T) { testIncrByMany(t, newStore(t)) })
	t.Run("concurrent IncrByMany", func(t *testing.T) { testConcurrentIncrByMany(t, newStore(t)) })
}

func testBlobs(t *testing.T, s kvstore.Store) {
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)

	require.NoError(t, s.Set(ctx, "k", []byte("v1")))
	require.NoError(t, s.Set(ctx, "k", []byte("v2")))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)
	assert.NoError(t, s.Delete(ctx, "k"))
	assert.NoError(t, s.Ping(ctx))
}

func testCounters(t *testing.T, s kvstore.Store) {
	ctx := context.Background()

	n, err := s.GetCounter(ctx, "c")
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = s.IncrBy(ctx, "c", 50)
	require.NoError(t, err)
	assert.Equal(t, int64(50), n)

	n, err = s.IncrBy(ctx, "c", -8)
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	n, err = s.GetCounter(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
}

func testSortedSets(t *testing.T, s kvstore.Store) {
	ctx := context.Background()
	const key = "z"

	require.NoError(t, s.ZAdd(ctx, key, "alice", 300))
	require.NoError(t, s.ZAdd(ctx, key, "bob", 100))
	require.NoError(t, s.ZAdd(ctx, key, "carol", 200))
	require.NoError(t, s.ZAdd(ctx, key, "bob", 400)) // update

	card, err := s.ZCard(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(3), card)

	desc, err := s.ZRange(ctx, key, 0, -1, true)
	require.NoError(t, err)
	assert.Equal(t, []domain.ScoredMember{
		{Member: "bob", Score: 400},
		{Member: "alice", Score: 300},
		{Member: "carol", Score: 200},
	}, desc)

	rank, err := s.ZRank(ctx, key, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(2), rank)

	_, err = s.ZRank(ctx, key, "nobody")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)

	require.NoError(t, s.ZRem(ctx, key, "alice"))
	require.NoError(t, s.ZRem(ctx, key, "alice"))
	card, err = s.ZCard(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(2), card)

	empty, err := s.ZRange(ctx, "nothing", 0, -1, false)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func testRanges(t *testing.T, s kvstore.Store) {
	ctx := context.Background()
	const key = "feed"
	for i := 1; i <= 6; i++ {
		require.NoError(t, s.ZAdd(ctx, key, fmt.Sprintf("m%d", i), float64(i)))
	}
	// equal scores fall back to member order
	require.NoError(t, s.ZAdd(ctx, "ties", "b", 1))
	require.NoError(t, s.ZAdd(ctx, "ties", "a", 1))

	top2, err := s.ZRange(ctx, key, 0, 1, true)
	require.NoError(t, err)
	assert.Equal(t, "m6", top2[0].Member)
	assert.Equal(t, "m5", top2[1].Member)

	tail, err := s.ZRange(ctx, key, -2, -1, false)
	require.NoError(t, err)
	require.Len(t, tail, 2)
	assert.Equal(t, "m5", tail[0].Member)

	past, err := s.ZRange(ctx, key, 10, 20, false)
	require.NoError(t, err)
	assert.Empty(t, past)

	ties, err := s.ZRange(ctx, "ties", 0, -1, false)
	require.NoError(t, err)
	assert.Equal(t, "a", ties[0].Member)

	// keep the newest four
	require.NoError(t, s.ZRemRangeByRank(ctx, key, 0, -5))
	rest, err := s.ZRange(ctx, key, 0, -1, false)
	require.NoError(t, err)
	require.Len(t, rest, 4)
	assert.Equal(t, "m3", rest[0].Member)

	require.NoError(t, s.ZRemRangeByRank(ctx, key, 0, -5))
	card, err := s.ZCard(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(4), card)
}

func testHashes(t *testing.T, s kvstore.Store) {
	ctx := context.Background()
	const key = "h"

	_, err := s.HGet(ctx, key, "f")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)

	ok, err := s.HSetNX(ctx, key, "f", "first")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.HSetNX(ctx, key, "f", "second")
	require.NoError(t, err)
	assert.False(t, ok)

	v, err := s.HGet(ctx, key, "f")
	require.NoError(t, err)
	assert.Equal(t, "first", v)

	require.NoError(t, s.HSet(ctx, key, "f", "third"))
	require.NoError(t, s.HSet(ctx, key, "g", "other"))

	all, err := s.HGetAll(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"f": "third", "g": "other"}, all)

	n, err := s.HLen(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	none, err := s.HGetAll(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testDelete(t *testing.T, s kvstore.Store) {
	ctx := context.Background()

	_, err := s.IncrBy(ctx, "counter", 3)
	require.NoError(t, err)
	require.NoError(t, s.ZAdd(ctx, "zset", "m", 1))
	require.NoError(t, s.HSet(ctx, "hash", "f", "v"))

	for _, key := range []string{"counter", "zset", "hash"} {
		require.NoError(t, s.Delete(ctx, key))
	}

	n, err := s.GetCounter(ctx, "counter")
	require.NoError(t, err)
	assert.Zero(t, n)
	card, err := s.ZCard(ctx, "zset")
	require.NoError(t, err)
	assert.Zero(t, card)
	hl, err := s.HLen(ctx, "hash")
	require.NoError(t, err)
	assert.Zero(t, hl)
}

func testConcurrentHSetNX(t *testing.T, s kvstore.Store) {
	ctx := context.Background()
	const workers = 8

	var wg sync.WaitGroup
	wins := make(chan string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			owner := fmt.Sprintf("owner-%d", i)
			ok, err := s.HSetNX(ctx, "names", "core crusher", owner)
			if err == nil && ok {
				wins <- owner
			}
		}(i)
	}
	wg.Wait()
	close(wins)

	var winners []string
	for w := range wins {
		winners = append(winners, w)
	}
	require.Len(t, winners, 1)

	v, err := s.HGet(ctx, "names", "core crusher")
	require.NoError(t, err)
	assert.Equal(t, winners[0], v)
}

func testConcurrentIncr(t *testing.T, s kvstore.Store) {
	ctx := context.Background()
	const workers, each = 8, 25

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < each; j++ {
				_, err := s.IncrBy(ctx, "clicks", 1)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	n, err := s.GetCounter(ctx, "clicks")
	require.NoError(t, err)
	assert.Equal(t, int64(workers*each), n)
}

func testIncrByMany(t *testing.T, s kvstore.Store) {
	ctx := context.Background()
	_, err := s.IncrBy(ctx, "mark", 50)
	require.NoError(t, err)

	got, err := s.IncrByMany(ctx, map[string]int64{"mark": -20, "global": 7})
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"mark": 30, "global": 7}, got)

	n, err := s.GetCounter(ctx, "mark")
	require.NoError(t, err)
	assert.Equal(t, int64(30), n)

	got, err = s.IncrByMany(ctx, map[string]int64{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func testConcurrentIncrByMany(t *testing.T, s kvstore.Store) {
	ctx := context.Background()
	const workers, each = 8, 10

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < each; j++ {
				_, err := s.IncrByMany(ctx, map[string]int64{"a": 1, "b": 2})
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	a, err := s.GetCounter(ctx, "a")
	require.NoError(t, err)
	b, err := s.GetCounter(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, int64(workers*each), a)
	assert.Equal(t, int64(2*workers*each), b)
}
