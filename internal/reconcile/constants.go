package reconcile

import "time"

// ============================================================================
// Defaults
// ============================================================================

const (
	DefaultNamespace       = "main"
	DefaultLeaderboardSize = 10
	DefaultAdminListSize   = 20
	DefaultCacheTTL        = 5 * time.Second
	DefaultCacheSize       = 16
	DefaultActivityCap     = 50
	DefaultActivityLimit   = 20

	// MaxActivityDetails bounds free-form activity text.
	MaxActivityDetails = 200
)

// Name registry rules
const (
	MinNameLength = 3
	MaxNameLength = 16
)

// ============================================================================
// Key Layout
// ============================================================================

const (
	keySnapshotFmt    = "gameState:%s:%s"
	keyMoneyFmt       = "leaderboard:%s:money"
	keyDepthFmt       = "leaderboard:%s:depth"
	keyNameIndexFmt   = "leaderboard:%s:name"
	keyNameOwnerFmt   = "names:%s:owner"
	keyRankedNameFmt  = "names:%s:ranked"
	keyClicksFmt      = "clicks:%s:%s"
	keyGlobalClickFmt = "stats:%s:globalClicks"
	keyGoalFmt        = "goals:%s:%s:%s"
	keyGoalHistoryFmt = "goals:%s:history"
	keyActivityFmt    = "activity:%s"
	keyLockFmt        = "lock:%s:%s"

	goalHistoryFieldFmt = "%s:%s"
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgLoadSnapshot    = "failed to load snapshot for %s: %w"
	ErrMsgDecodeSnapshot  = "failed to decode snapshot: %w"
	ErrMsgEncodeSnapshot  = "failed to encode snapshot: %w"
	ErrMsgSaveSnapshot    = "failed to save snapshot for %s: %w"
	ErrMsgResetSnapshot   = "failed to reset snapshot for %s: %w"
	ErrMsgUpdateRanking   = "failed to update leaderboard: %w"
	ErrMsgReadLeaderboard = "failed to read leaderboard: %w"
	ErrMsgReadStanding    = "failed to read standing: %w"
	ErrMsgRegisterName    = "failed to register name: %w"
	ErrMsgLookupName      = "failed to look up name: %w"
	ErrMsgClickDelta      = "failed to apply click delta: %w"
	ErrMsgIncrementClicks = "failed to increment global clicks: %w"
	ErrMsgContributeGoal  = "failed to contribute to %s goal: %w"
	ErrMsgReadGoals       = "failed to read daily goals: %w"
	ErrMsgArchiveGoals    = "failed to archive goals for %s: %w"
	ErrMsgReadStats       = "failed to read global stats: %w"
	ErrMsgPostActivity    = "failed to post activity: %w"
	ErrMsgReadActivities  = "failed to read activities: %w"
	ErrMsgTrimActivities  = "failed to trim activity feed: %w"
	ErrMsgAdminOverview   = "failed to build admin overview: %w"
	ErrMsgAdminUpsert     = "failed to upsert %q: %w"
	ErrMsgUnknownDimFmt   = "%w: %q"
	ErrMsgInvalidActivity = "%w: activity type %q"
	ErrMsgZstdInit        = "failed to initialise zstd: %v"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgSnapshotCreated    = "Created starter snapshot"
	LogMsgSnapshotSaved      = "Snapshot saved"
	LogMsgSnapshotUnreadable = "Stored snapshot unreadable, starting over"
	LogMsgSnapshotReset      = "Snapshot reset"
	LogMsgNameRegistered     = "Name registered"
	LogMsgNameAutoRegistered = "Name auto-registered on load"
	LogMsgNameUnavailable    = "Snapshot name unavailable, leaving it unranked"
	LogMsgRankedNameChanged  = "Ranked name changed"
	LogMsgClickDelta         = "Applied click delta"
	LogMsgGoalsArchived      = "Archived daily goals"
	LogMsgActivityPosted     = "Activity posted"
	LogMsgActivitiesTrimmed  = "Activity feed trimmed"
	LogMsgLeaderboardWarmed  = "Leaderboard cache warmed"
	LogMsgAdminUpsert        = "Admin leaderboard upsert"
	LogMsgBroadcastFailed    = "Failed to broadcast activity"
	LogMsgStaleActivity      = "Skipping undecodable activity"
)
