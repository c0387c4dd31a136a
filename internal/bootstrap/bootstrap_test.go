package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TheDigger_Go/internal/clock"
	"github.com/osse101/TheDigger_Go/internal/config"
	"github.com/osse101/TheDigger_Go/internal/kvstore"
	"github.com/osse101/TheDigger_Go/internal/scheduler"
	"github.com/osse101/TheDigger_Go/internal/testing/leaktest"
	"github.com/osse101/TheDigger_Go/internal/worker"
)

func TestCleanupLogs_KeepsNewest(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf(LogFileNamePattern, fmt.Sprintf("2024-01-%02d_00-00-00", i+1))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o600))

	cleanupLogs(dir, LogFileRetentionCount)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Len(t, names, LogFileRetentionCount+1)
	assert.Contains(t, names, "notes.txt")
	assert.Contains(t, names, "session_2024-01-12_00-00-00.log")
	assert.NotContains(t, names, "session_2024-01-01_00-00-00.log")
}

func TestSetupLogger_CreatesSessionFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	cfg := &config.Config{LogDir: filepath.Join(t.TempDir(), "logs"), LogLevel: "debug", LogFormat: "json", APIKey: "k", JWTSecret: "s"}
	f, err := SetupLogger(cfg)
	require.NoError(t, err)
	defer f.Close()

	slog.Info("hello from test")

	raw, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "hello from test")
	assert.Contains(t, string(raw), `"service"`)
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		store, locker, err := OpenStore(ctx, &config.Config{StoreDriver: config.StoreDriverMemory})
		require.NoError(t, err)
		defer store.Close()

		assert.Nil(t, locker)
		assert.IsType(t, &kvstore.Observed{}, store)
		require.NoError(t, store.Set(ctx, "k", []byte("v")))
	})

	t.Run("sqlite", func(t *testing.T) {
		store, locker, err := OpenStore(ctx, &config.Config{
			StoreDriver: config.StoreDriverSQLite,
			SQLitePath:  filepath.Join(t.TempDir(), "kv.sqlite"),
		})
		require.NoError(t, err)
		defer store.Close()

		assert.Nil(t, locker)
		require.NoError(t, store.Ping(ctx))
	})

	t.Run("unknown", func(t *testing.T) {
		_, _, err := OpenStore(ctx, &config.Config{StoreDriver: "redis"})
		assert.Error(t, err)
	})
}

func TestLoadEngine(t *testing.T) {
	engine, err := LoadEngine("")
	require.NoError(t, err)
	assert.NotNil(t, engine)

	_, err = LoadEngine(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

type stubMaintainer struct{}

func (stubMaintainer) TrimActivities(context.Context) error  { return nil }
func (stubMaintainer) WarmLeaderboard(context.Context) error { return nil }

type stubRoller struct{}

func (stubRoller) RolloverGoals(context.Context) error { return nil }

func TestGracefulShutdown_StopsBackgroundWork(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	pool := worker.NewPool(2, 4)
	pool.Start()
	sched := scheduler.New(pool)
	sched.ScheduleMaintenance(stubMaintainer{}, time.Hour, time.Hour)
	rollover := worker.NewGoalRolloverWorker(stubRoller{}, clock.NewReal())
	rollover.Start()
	store := kvstore.NewMemory()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	GracefulShutdown(ctx, ShutdownComponents{
		Scheduler:          sched,
		Pool:               pool,
		GoalRolloverWorker: rollover,
		Store:              store,
	})

	checker.Check(0)
}
