package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/TheDigger_Go/internal/bootstrap"
	"github.com/osse101/TheDigger_Go/internal/clock"
	"github.com/osse101/TheDigger_Go/internal/config"
	"github.com/osse101/TheDigger_Go/internal/handler"
	"github.com/osse101/TheDigger_Go/internal/identity"
	"github.com/osse101/TheDigger_Go/internal/metrics"
	"github.com/osse101/TheDigger_Go/internal/reconcile"
	"github.com/osse101/TheDigger_Go/internal/scheduler"
	"github.com/osse101/TheDigger_Go/internal/server"
	"github.com/osse101/TheDigger_Go/internal/sse"
	"github.com/osse101/TheDigger_Go/internal/worker"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	tuning, err := config.LoadTuning(cfg.TuningPath)
	if err != nil {
		return err
	}
	engine, err := bootstrap.LoadEngine(cfg.CatalogPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, locker, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}

	clk := clock.NewReal()
	hub := sse.NewHub()
	opts := []reconcile.Option{
		reconcile.WithObserver(metrics.NewGameObserver()),
		reconcile.WithBroadcaster(hub),
	}
	if locker != nil {
		opts = append(opts, reconcile.WithLocker(locker))
	}
	svc := reconcile.NewService(store, engine, clk, tuning.ReconcileConfig(), opts...)

	// a nil *TokenService must not reach the handler as a non-nil interface
	var (
		tokens *identity.TokenService
		minter handler.TokenMinter
	)
	if cfg.JWTSecret != "" {
		if tokens, err = identity.NewTokenService(cfg.JWTSecret, clk); err != nil {
			return err
		}
		minter = tokens
	}
	resolver := identity.NewResolver(tokens, cfg.APIKey, cfg.IdentityTrustHeaders)

	hub.Start()
	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		Version:        cfg.Version,
		StoreDriver:    cfg.StoreDriver,
		TrustedProxies: cfg.TrustedProxies,
		SaveRate:       tuning.Save.RatePerSecond,
		SaveBurst:      tuning.Save.Burst,
	}, svc, resolver, minter, hub)

	pool := worker.NewPool(worker.DefaultWorkers, worker.DefaultQueueSize)
	pool.Start()
	sched := scheduler.New(pool)
	sched.ScheduleMaintenance(svc, tuning.Maintenance.TrimInterval, tuning.Maintenance.WarmInterval)

	rollover := worker.NewGoalRolloverWorker(svc, clk)
	rollover.Start()

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-stop:
		slog.Info("Received shutdown signal", "signal", sig.String())
	case err, ok := <-serverErr:
		if ok {
			runErr = err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          sched,
		Pool:               pool,
		GoalRolloverWorker: rollover,
		Store:              store,
	})
	return runErr
}
