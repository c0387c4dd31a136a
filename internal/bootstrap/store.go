package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/TheDigger_Go/internal/achievement"
	"github.com/osse101/TheDigger_Go/internal/catalog"
	"github.com/osse101/TheDigger_Go/internal/config"
	"github.com/osse101/TheDigger_Go/internal/database"
	"github.com/osse101/TheDigger_Go/internal/database/postgres"
	"github.com/osse101/TheDigger_Go/internal/database/sqlite"
	"github.com/osse101/TheDigger_Go/internal/kvstore"
	"github.com/osse101/TheDigger_Go/internal/metrics"
	"github.com/osse101/TheDigger_Go/internal/progression"
)

// OpenStore opens the configured backend and wraps it with store metrics.
// The locker is non-nil only for backends that can lock across processes.
func OpenStore(ctx context.Context, cfg *config.Config) (kvstore.Store, kvstore.Locker, error) {
	var (
		store  kvstore.Store
		locker kvstore.Locker
	)

	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		store = kvstore.NewMemory()
	case config.StoreDriverSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf(ErrMsgOpenSQLite, err)
		}
		store = s
	case config.StoreDriverPostgres:
		s, err := postgres.Open(ctx, cfg.GetDBConnString(), database.PoolConfig{MaxConns: cfg.DBMaxConns})
		if err != nil {
			return nil, nil, fmt.Errorf(ErrMsgOpenPostgres, err)
		}
		store, locker = s, s
	default:
		return nil, nil, fmt.Errorf(ErrMsgUnknownDriver, cfg.StoreDriver)
	}

	slog.Info(LogMsgStoreOpened, "driver", cfg.StoreDriver)
	return kvstore.Observe(store, metrics.ObserveStore), locker, nil
}

// LoadEngine builds the progression engine from the catalog at path, or
// the embedded catalog when path is empty.
func LoadEngine(path string) (*progression.Engine, error) {
	var (
		cat *catalog.Catalog
		err error
	)
	if path == "" {
		cat, err = catalog.Default()
	} else {
		cat, err = catalog.LoadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLoadCatalog, err)
	}

	book, err := achievement.Load(cat)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLoadAchievements, err)
	}

	slog.Info(LogMsgCatalogLoaded, "source", catalogSource(path))
	return progression.NewEngine(cat, book), nil
}

func catalogSource(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
