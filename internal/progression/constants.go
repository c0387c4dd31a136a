package progression

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgUnknownOreFmt      = "%w: %q"
	ErrMsgUnknownToolFmt     = "%w: %q"
	ErrMsgUnknownProducerFmt = "%w: %q"
	ErrMsgToolNotUpgrade     = "%w: %q does not follow %q"
	ErrMsgCannotAfford       = "%w: need %.0f, have %.0f"
	ErrMsgBadQuantity        = "%w: got %d"

	ErrMsgSnapshotNumber    = "%w: %s must be a finite non-negative number, got %v"
	ErrMsgSnapshotCount     = "%w: %s[%q] is negative"
	ErrMsgSnapshotUnknownID = "%w: %s holds unknown id %v: %w"
)

// Field names used in snapshot validation errors
const (
	fieldMoney            = "money"
	fieldDepth            = "depth"
	fieldTotalClicks      = "totalClicks"
	fieldCurrentTool      = "currentTool"
	fieldAutoDiggers      = "autoDiggers"
	fieldOreInventory     = "oreInventory"
	fieldDiscoveredOres   = "discoveredOres"
	fieldDiscoveredBiomes = "discoveredBiomes"
)
