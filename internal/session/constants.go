package session

import "time"

// Loop defaults
const (
	DefaultTickInterval     = 100 * time.Millisecond
	DefaultAutosaveInterval = 5 * time.Second
	FinalSaveTimeout        = 5 * time.Second
)

// DepthMilestones are the depths announced to the community feed.
var DepthMilestones = []float64{1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9}

// Milestone key prefixes
const (
	milestoneAchievement = "achievement:"
	milestoneBiome       = "biome:"
	milestoneTool        = "tool:"
	milestoneProducer    = "producer:"
	milestoneDepth       = "depth:"
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgSaveFailed       = "failed to save snapshot: %w"
	ErrMsgResetFailed      = "failed to reset snapshot: %w"
	ErrMsgContributeFailed = "failed to contribute to goals: %w"
	ErrMsgActivityFailed   = "failed to post activity: %w"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgSessionStarted  = "Session loop started"
	LogMsgSessionStopped  = "Session loop stopped"
	LogMsgAutosaveFailed  = "Autosave failed, keeping local state"
	LogMsgFlushFailed     = "Failed to flush community updates"
	LogMsgFinalSaveFailed = "Final save failed"
)
