package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Catalog errors
	ErrMsgInvalidOre       = "invalid ore"
	ErrMsgUnknownTool      = "unknown tool"
	ErrMsgUnknownProducer  = "unknown auto-digger"
	ErrMsgUnknownBiome     = "unknown biome"
	ErrMsgInvalidDimension = "invalid goal dimension"
	ErrMsgInvalidActivity  = "invalid activity"

	// Purchase rejections
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgInvalidTransition = "tool is not an upgrade"
	ErrMsgInvalidQuantity   = "quantity must be at least 1"

	// Snapshot errors
	ErrMsgInvalidSnapshot = "invalid snapshot"

	// Name registry errors, shown to players as-is
	ErrMsgInvalidName = "Pick a name 3-16 chars long using letters, numbers, spaces, - or _."
	ErrMsgNameTaken   = "This name is already taken. Please choose another one."

	// Identity errors
	ErrMsgUnauthorized = "unauthorized"

	// Store errors
	ErrMsgStoreUnavailable = "store unavailable"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Catalog errors
	ErrInvalidOre       = errors.New(ErrMsgInvalidOre)
	ErrUnknownTool      = errors.New(ErrMsgUnknownTool)
	ErrUnknownProducer  = errors.New(ErrMsgUnknownProducer)
	ErrUnknownBiome     = errors.New(ErrMsgUnknownBiome)
	ErrInvalidDimension = errors.New(ErrMsgInvalidDimension)
	ErrInvalidActivity  = errors.New(ErrMsgInvalidActivity)

	// Purchase rejections
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrInvalidTransition = errors.New(ErrMsgInvalidTransition)
	ErrInvalidQuantity   = errors.New(ErrMsgInvalidQuantity)

	// Snapshot errors
	ErrInvalidSnapshot = errors.New(ErrMsgInvalidSnapshot)

	// Name registry errors
	ErrInvalidName = errors.New(ErrMsgInvalidName)
	ErrNameTaken   = errors.New(ErrMsgNameTaken)

	// Identity errors
	ErrUnauthorized = errors.New(ErrMsgUnauthorized)

	// Store errors
	ErrStoreUnavailable = errors.New(ErrMsgStoreUnavailable)
)

// IsRejection reports whether err is an ordinary player-facing refusal
// (not enough money, not an upgrade, bad quantity). Rejected operations
// leave the snapshot unchanged.
func IsRejection(err error) bool {
	return errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrInvalidQuantity)
}
