package postgres

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/TheDigger_Go/internal/database"
	"github.com/osse101/TheDigger_Go/internal/kvstore"
	"github.com/osse101/TheDigger_Go/internal/kvstore/kvstoretest"
)

var (
	testDBConnString string
	testStore        *Store
)

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()
	if !testing.Short() {
		testDBConnString, terminate = startPostgres(context.Background())
		if testDBConnString != "" {
			store, err := Open(context.Background(), testDBConnString, database.PoolConfig{MaxConns: 10})
			if err != nil {
				fmt.Printf("WARNING: Failed to open store: %v\n", err)
			} else {
				testStore = store
			}
		}
	}

	code := m.Run()

	if testStore != nil {
		_ = testStore.Close()
	}
	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

func startPostgres(ctx context.Context) (connStr string, terminate func()) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in startPostgres: %v\n", r)
			connStr, terminate = "", func() {}
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return "", func() {}
	}

	connStr, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return "", func() {}
	}
	return connStr, func() { _ = pgContainer.Terminate(ctx) }
}

func requireStore(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testStore == nil {
		t.Skip("Skipping integration test: database not available")
	}
	truncateAll(t, testStore.pool)
	return testStore
}

func TestStore_Conformance(t *testing.T) {
	requireStore(t)

	kvstoretest.Run(t, func(t *testing.T) kvstore.Store {
		return requireStore(t)
	})
}

func TestStore_WithLockSerializesReadModifyWrite(t *testing.T) {
	s := requireStore(t)
	ctx := context.Background()
	const workers = 10

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.WithLock(ctx, "player-1", func(ctx context.Context) error {
				n := 0
				raw, err := s.Get(ctx, "rmw")
				if err == nil {
					n, _ = strconv.Atoi(string(raw))
				} else if !errors.Is(err, kvstore.ErrNotFound) {
					return err
				}
				return s.Set(ctx, "rmw", []byte(strconv.Itoa(n+1)))
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	raw, err := s.Get(ctx, "rmw")
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(workers), string(raw))
}

func TestStore_WithLockPropagatesError(t *testing.T) {
	s := requireStore(t)
	boom := errors.New("boom")

	err := s.WithLock(context.Background(), "k", func(context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
}

func TestStore_WithLockRollsBackOnError(t *testing.T) {
	s := requireStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithLock(ctx, "player-1", func(ctx context.Context) error {
		if err := s.Set(ctx, "half-saved", []byte("x")); err != nil {
			return err
		}
		if _, err := s.IncrByMany(ctx, map[string]int64{"mark": 5, "global": 5}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Get(ctx, "half-saved")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)
	n, err := s.GetCounter(ctx, "global")
	require.NoError(t, err)
	assert.Zero(t, n)
}

// More concurrent saves than pooled connections must all finish: the work
// inside a lock reuses the lock's connection.
func TestStore_WithLockMoreSaversThanConnections(t *testing.T) {
	requireStore(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, testDBConnString, database.PoolConfig{MaxConns: 1})
	require.NoError(t, err)
	s := NewStore(pool)
	defer s.Close()

	const players = 8
	var wg sync.WaitGroup
	for i := 0; i < players; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			player := "player-" + strconv.Itoa(id)
			err := s.WithLock(ctx, player, func(ctx context.Context) error {
				if err := s.Set(ctx, "snapshot:"+player, []byte("{}")); err != nil {
					return err
				}
				if _, err := s.HSetNX(ctx, "names", player, player); err != nil {
					return err
				}
				if _, err := s.ZRange(ctx, "money", 0, 9, true); err != nil {
					return err
				}
				_, err := s.IncrByMany(ctx, map[string]int64{"clicks:" + player: 1, "global": 1})
				return err
			})
			assert.NoError(t, err, player)
		}(i)
	}
	wg.Wait()

	n, err := s.GetCounter(ctx, "global")
	require.NoError(t, err)
	assert.Equal(t, int64(players), n)
}

func TestLockKey_IsStableAndPositive(t *testing.T) {
	a := lockKey("save:abc")
	assert.Equal(t, a, lockKey("save:abc"))
	assert.NotEqual(t, a, lockKey("save:abd"))
	assert.GreaterOrEqual(t, a, int64(0))
}
