package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/TheDigger_Go/internal/bootstrap"
	"github.com/osse101/TheDigger_Go/internal/clock"
	"github.com/osse101/TheDigger_Go/internal/config"
	"github.com/osse101/TheDigger_Go/internal/reconcile"
)

const (
	waitRetries  = 30
	waitInterval = 2 * time.Second

	// maintenanceDB is the database setup-db connects to while creating ours
	maintenanceDB = "postgres"
)

// WaitForStoreCommand blocks until the configured store answers a ping.
type WaitForStoreCommand struct{}

func (c *WaitForStoreCommand) Name() string { return "wait-for-store" }

func (c *WaitForStoreCommand) Description() string {
	return "Wait for the configured store to be ready (with retries)"
}

func (c *WaitForStoreCommand) Run(ctx context.Context, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	PrintHeader(fmt.Sprintf("Waiting for %s store...", cfg.StoreDriver))

	var lastErr error
	for i := 0; i < waitRetries; i++ {
		lastErr = pingStore(ctx, cfg)
		if lastErr == nil {
			PrintSuccess("Store is ready")
			return nil
		}

		fmt.Fprintf(out, "Store not ready (%d/%d): %v\n", i+1, waitRetries, lastErr)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitInterval):
		}
	}
	return fmt.Errorf("store failed to become ready after %d attempts: %w", waitRetries, lastErr)
}

func pingStore(ctx context.Context, cfg *config.Config) error {
	store, _, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Ping(ctx)
}

// SetupDBCommand creates the PostgreSQL database when missing and applies
// migrations.
type SetupDBCommand struct{}

func (c *SetupDBCommand) Name() string { return "setup-db" }

func (c *SetupDBCommand) Description() string {
	return "Create the PostgreSQL database if needed and migrate it"
}

func (c *SetupDBCommand) Run(ctx context.Context, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.StoreDriver != config.StoreDriverPostgres {
		PrintWarning("STORE_DRIVER is %s, nothing to create", cfg.StoreDriver)
		return nil
	}

	PrintHeader("Database Setup")
	if err := ensureDatabase(ctx, cfg); err != nil {
		return err
	}
	return migrateStore(ctx, cfg)
}

func ensureDatabase(ctx context.Context, cfg *config.Config) error {
	admin := *cfg
	admin.DBName = maintenanceDB

	conn, err := pgx.Connect(ctx, admin.GetDBConnString())
	if err != nil {
		return fmt.Errorf("unable to connect to %s database: %w", maintenanceDB, err)
	}
	defer conn.Close(ctx)

	var exists bool
	err = conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.DBName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}
	if exists {
		PrintInfo("Database %s already exists", cfg.DBName)
		return nil
	}

	PrintInfo("Creating database %s...", cfg.DBName)
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{cfg.DBName}.Sanitize()); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	PrintSuccess("Database created")
	return nil
}

// MigrateCommand applies pending migrations for the configured backend.
type MigrateCommand struct{}

func (c *MigrateCommand) Name() string { return "migrate" }

func (c *MigrateCommand) Description() string {
	return "Apply pending store migrations"
}

func (c *MigrateCommand) Run(ctx context.Context, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	PrintHeader("Migrations")
	return migrateStore(ctx, cfg)
}

// migrateStore relies on the backends migrating as they open.
func migrateStore(ctx context.Context, cfg *config.Config) error {
	store, _, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	PrintSuccess("%s store is migrated", cfg.StoreDriver)
	return nil
}

// RolloverCommand archives yesterday's daily goals straight against the
// store. Useful when the server's scheduler was down over midnight.
type RolloverCommand struct{}

func (c *RolloverCommand) Name() string { return "rollover" }

func (c *RolloverCommand) Description() string {
	return "Archive daily goal totals into history"
}

func (c *RolloverCommand) Run(ctx context.Context, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	tuning, err := config.LoadTuning(cfg.TuningPath)
	if err != nil {
		return err
	}
	engine, err := bootstrap.LoadEngine(cfg.CatalogPath)
	if err != nil {
		return err
	}
	store, locker, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	var opts []reconcile.Option
	if locker != nil {
		opts = append(opts, reconcile.WithLocker(locker))
	}
	svc := reconcile.NewService(store, engine, clock.NewReal(), tuning.ReconcileConfig(), opts...)

	PrintHeader("Goal Rollover")
	if err := svc.RolloverGoals(ctx); err != nil {
		return err
	}
	history, err := svc.GoalHistory(ctx)
	if err != nil {
		return err
	}
	PrintSuccess("Goal history holds %d entries", len(history))
	return nil
}
