package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
	ErrMsgMissingIdentity       = "Missing player identity"
	ErrMsgTokensUnavailable     = "Token minting is not configured"
	ErrMsgMintTokenFailed       = "Failed to mint token"
	ErrMsgWebSocketUpgrade      = "Failed to upgrade connection"
)

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."
	ErrMsgAuthFailedError     = "Authentication failed. Please check your credentials."
	ErrMsgUnavailableError    = "Server is temporarily unavailable. Please try again later."

	ErrMsgNotEnoughMoneyError   = "Not enough money"
	ErrMsgNotAnUpgradeError     = "That tool is not an upgrade"
	ErrMsgBadQuantityError      = "Quantity must be at least 1"
	ErrMsgInvalidSnapshotError  = "Game state is invalid"
	ErrMsgInvalidDimensionError = "Unknown goal"
	ErrMsgInvalidActivityError  = "Unknown activity type"
)

// Validation messages keyed by validator tag
const (
	ValidationMsgRequired   = "This field is required"
	ValidationMsgPlayerName = "Must be 3-16 letters, numbers, spaces, - or _"
	ValidationMsgMax        = "Must be at most %s"
	ValidationMsgMin        = "Must be at least %s"
	ValidationMsgGte        = "Must be %s or more"
	ValidationMsgOneOf      = "Must be one of: %s"
	ValidationMsgInvalid    = "Invalid value"
	ValidationMsgFormat     = "Invalid request format"
)

// Log messages
const (
	LogMsgDecodeFailed     = "Failed to decode request"
	LogMsgRequestDecoded   = "Request decoded"
	LogMsgServiceError     = "Service error"
	LogMsgEncodeFailed     = "Failed to encode JSON response"
	LogMsgWriteFailed      = "Failed to write response buffer"
	LogMsgReadinessFailed  = "Readiness check failed"
	LogMsgWebSocketOpened  = "WebSocket subscriber connected"
	LogMsgWebSocketClosed  = "WebSocket subscriber disconnected"
	LogMsgWebSocketUpgrade = "WebSocket upgrade failed"
	LogMsgTokenMinted      = "Player token minted"
	LogMsgSaveRejected     = "Save rejected"
	LogMsgNameRegistered   = "Name registered"
	LogMsgLeaderboardBulk  = "Admin leaderboard update applied"
)

// Health status values
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
	HealthMsgStoreFailed    = "store connection failed"
)
