package achievement

// Requirement kinds understood by the evaluator
const (
	KindDepth         = "depth"
	KindMoney         = "money"
	KindClicks        = "clicks"
	KindSpecificOre   = "specific_ore"
	KindTotalOres     = "total_ores"
	KindDistinctOres  = "distinct_ores"
	KindTool          = "tool"
	KindProducer      = "producer"
	KindProducerCount = "producer_count"
	KindBiome         = "biome"
	KindSpecial       = "special"
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgReadBook         = "failed to read achievements %s: %w"
	ErrMsgParseBook        = "failed to parse achievements: %w"
	ErrMsgEmptyBook        = "achievement book is empty"
	ErrMsgDuplicateID      = "duplicate achievement id %q"
	ErrMsgMissingField     = "achievement %q is missing %s"
	ErrMsgUnknownKind      = "achievement %q has unknown requirement kind %q"
	ErrMsgUnknownTarget    = "achievement %q references unknown %s %q"
	ErrMsgNonPositiveValue = "achievement %q needs a positive requirement value"
)
