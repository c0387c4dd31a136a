package worker

import "time"

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// Log messages for pool operations
const (
	LogMsgWorkerJobFailed  = "Worker job failed"
	LogMsgWorkerJobDropped = "Worker queue full, job dropped"
)

// ============================================================================
// Log Messages - Goal Rollover Worker
// ============================================================================

// Log messages for goal rollover operations
const (
	LogMsgRolloverStandby   = "Goal rollover standby"
	LogMsgRolloverApproach  = "Goal rollover scheduled"
	LogMsgRolloverStarting  = "Goal rollover starting"
	LogMsgRolloverCompleted = "Goal rollover completed"
	LogMsgRolloverFailed    = "Goal rollover failed"
	LogMsgRolloverShutdown  = "Shutting down goal rollover worker"
	LogMsgRolloverCancelled = "Cancelled pending goal rollover"
	LogMsgRolloverTimeout   = "Goal rollover worker shutdown timeout, a rollover may still be running"
)

// ============================================================================
// Scheduling
// ============================================================================

const (
	// JobNameGoalRollover labels rollover failures in metrics
	JobNameGoalRollover = "goal_rollover"

	// JobTimeout bounds a single pool job
	JobTimeout = 30 * time.Second

	// DefaultWorkers and DefaultQueueSize size the maintenance pool
	DefaultWorkers   = 2
	DefaultQueueSize = 16

	// Two-stage scheduling: long waits wake up early and re-arm, so clock
	// drift over a day does not delay the rollover.
	rolloverStandbyThreshold = time.Hour
	rolloverStandbyLead      = 45 * time.Minute
	rolloverEarlyTolerance   = 10 * time.Second
	rolloverLateWindow       = 23 * time.Hour
)
