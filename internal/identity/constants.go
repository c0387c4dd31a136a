package identity

// ============================================================================
// Headers
// ============================================================================

const (
	HeaderAuthorization = "Authorization"
	HeaderAPIKey        = "X-API-Key"
	HeaderPlayerID      = "X-Player-Id"
	HeaderPlayerName    = "X-Player-Name"

	BearerPrefix = "Bearer "
)

// ============================================================================
// Token claims
// ============================================================================

const (
	ClaimName     = "name"
	DefaultIssuer = "thedigger"
	MaxHintLength = 64
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgSecretRequired  = "jwt secret must be provided"
	ErrMsgSubjectRequired = "player id is required"
	ErrMsgSignFailed      = "failed to sign token: %w"
	ErrMsgParseFailed     = "%w: invalid token: %w"
	ErrMsgMissingSubject  = "%w: token has no subject"
	ErrMsgNoCredentials   = "%w: no credentials"
	ErrMsgBadAuthScheme   = "%w: authorization must be a bearer token"
	ErrMsgBadAPIKey       = "%w: api key mismatch"
	ErrMsgTokensDisabled  = "%w: tokens are not configured"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgIdentityRejected = "Identity rejected"
)
