package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/TheDigger_Go/internal/clock"
	"github.com/osse101/TheDigger_Go/internal/logger"
	"github.com/osse101/TheDigger_Go/internal/metrics"
)

// GoalRoller archives the previous day's community goals
type GoalRoller interface {
	RolloverGoals(ctx context.Context) error
}

// GoalRolloverWorker archives community goal totals at 00:00 UTC
type GoalRolloverWorker struct {
	roller   GoalRoller
	clk      clock.Clock
	timer    *time.Timer
	shutdown chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
}

// NewGoalRolloverWorker creates a new GoalRolloverWorker
func NewGoalRolloverWorker(roller GoalRoller, clk clock.Clock) *GoalRolloverWorker {
	return &GoalRolloverWorker{
		roller:   roller,
		clk:      clk,
		shutdown: make(chan struct{}),
	}
}

// Start schedules the first rollover
func (w *GoalRolloverWorker) Start() {
	w.scheduleNext()
}

func (w *GoalRolloverWorker) scheduleNext() {
	duration := TimeUntilMidnightUTC(w.clk.Now())
	log := logger.FromContext(context.Background())

	w.mu.Lock()
	defer w.mu.Unlock()

	select {
	case <-w.shutdown:
		return
	default:
	}
	if w.timer != nil {
		w.timer.Stop()
	}

	if duration > rolloverStandbyThreshold {
		wait := duration - rolloverStandbyLead
		w.timer = time.AfterFunc(wait, w.scheduleNext)
		log.Info(LogMsgRolloverStandby, "next_check_at", w.clk.Now().UTC().Add(wait))
		return
	}

	w.timer = time.AfterFunc(duration, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}

		// a timer that fires early is re-armed for the remainder
		rem := TimeUntilMidnightUTC(w.clk.Now())
		if rem > rolloverEarlyTolerance && rem < rolloverLateWindow {
			w.scheduleNext()
			return
		}

		w.Trigger()
		w.scheduleNext()
	})
	log.Info(LogMsgRolloverApproach, "rollover_at", w.clk.Now().UTC().Add(duration))
}

// Trigger runs one rollover now in a tracked goroutine.
func (w *GoalRolloverWorker) Trigger() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.rollover(context.Background())
	}()
}

func (w *GoalRolloverWorker) rollover(ctx context.Context) {
	ctx = logger.WithRequestID(ctx, logger.GenerateRequestID())
	log := logger.FromContext(ctx)
	log.Info(LogMsgRolloverStarting)

	if err := w.roller.RolloverGoals(ctx); err != nil {
		metrics.MaintenanceFailures.WithLabelValues(JobNameGoalRollover).Inc()
		log.Error(LogMsgRolloverFailed, "error", err)
		return
	}
	metrics.GoalRollovers.Inc()
	log.Info(LogMsgRolloverCompleted)
}

// Shutdown cancels the pending timer and waits for an in-flight rollover
func (w *GoalRolloverWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRolloverShutdown)

	w.mu.Lock()
	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}
	if w.timer != nil {
		w.timer.Stop()
		log.Info(LogMsgRolloverCancelled)
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgRolloverTimeout)
		return ctx.Err()
	}
}

// TimeUntilMidnightUTC is the wait from now until the next 00:00 UTC.
func TimeUntilMidnightUTC(now time.Time) time.Duration {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
