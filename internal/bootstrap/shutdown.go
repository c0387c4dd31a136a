package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/TheDigger_Go/internal/kvstore"
	"github.com/osse101/TheDigger_Go/internal/scheduler"
	"github.com/osse101/TheDigger_Go/internal/server"
	"github.com/osse101/TheDigger_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	Pool               *worker.Pool
	GoalRolloverWorker *worker.GoalRolloverWorker
	Store              kvstore.Store
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server (stop accepting new requests, close live streams)
// 2. Scheduler and worker pool (no new maintenance, cancel running jobs)
// 3. Goal rollover worker (wait for an in-flight rollover)
// 4. Store
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.Pool != nil {
		components.Pool.Stop()
	}

	if components.GoalRolloverWorker != nil {
		if err := components.GoalRolloverWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgWorkerShutdownFailed, "error", err)
		}
	}

	if components.Store != nil {
		if err := components.Store.Close(); err != nil {
			slog.Error(LogMsgStoreCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
