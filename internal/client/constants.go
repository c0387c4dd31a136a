package client

import "time"

// ============================================================================
// Defaults
// ============================================================================

const (
	DefaultTimeout    = 10 * time.Second
	DefaultMaxRetries = 3
	DefaultRetryDelay = 500 * time.Millisecond

	// maxJitter is added on top of each backoff step
	maxJitter = 100 * time.Millisecond
)

// ============================================================================
// Routes
// ============================================================================

const (
	apiPrefix = "/api/v1"

	pathHealthz     = "/healthz"
	pathVersion     = "/version"
	pathLeaderboard = apiPrefix + "/leaderboard"

	pathInit     = apiPrefix + "/game/init"
	pathSave     = apiPrefix + "/game/save"
	pathReset    = apiPrefix + "/game/reset"
	pathRegister = apiPrefix + "/game/register"

	pathStats      = apiPrefix + "/community/stats"
	pathGoals      = apiPrefix + "/community/goals"
	pathContribute = apiPrefix + "/community/goals/contribute"
	pathActivity   = apiPrefix + "/community/activity"
	PathStream     = apiPrefix + "/community/activity/stream"

	pathAdminOverview    = apiPrefix + "/admin/overview"
	pathAdminLeaderboard = apiPrefix + "/admin/leaderboard"
	pathAdminTokens      = apiPrefix + "/admin/tokens"

	queryParamLimit = "limit"
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgBaseURLRequired  = "base url is required"
	ErrMsgMarshalBody      = "failed to marshal body: %w"
	ErrMsgCreateRequest    = "failed to create request: %w"
	ErrMsgDecodeResponse   = "failed to decode %s response: %w"
	ErrMsgMaxRetries       = "max retries exceeded for %s %s: %w"
	ErrMsgServerStatus     = "server error: %d"
	ErrMsgAPIStatus        = "API returned status %d: %s"
	ErrMsgRegisterRejected = "register rejected: %w"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgRetrying      = "Retrying API request"
	LogMsgRequestFailed = "API request failed"
	LogMsgServerError   = "Server error, will retry"
)
