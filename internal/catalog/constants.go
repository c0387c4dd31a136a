package catalog

// ProducerCostGrowth is the per-unit geometric cost factor for auto-diggers.
const ProducerCostGrowth = 1.25

// Embedded resource names
const (
	SchemaName = "catalog.schema.json"
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgReadCatalog      = "failed to read catalog %s: %w"
	ErrMsgParseCatalog     = "failed to parse catalog: %w"
	ErrMsgRegisterSchema   = "failed to register catalog schema: %w"
	ErrMsgSchemaValidation = "catalog failed schema validation: %w"
	ErrMsgDuplicateID      = "duplicate %s id %q"
	ErrMsgUnknownOreRef    = "%s %q references unknown ore %q"
	ErrMsgBiomeStart       = "first biome must start at depth 0, got %v"
	ErrMsgBiomeGap         = "biome %d starts at %v but previous biome ends at %v"
	ErrMsgBiomeBounds      = "biome %d has max_depth %v not above min_depth %v"
	ErrMsgBiomeUnbounded   = "only the last biome may omit max_depth (biome %d)"
	ErrMsgLastBiomeBounded = "last biome %d must omit max_depth"
	ErrMsgNoCandidates     = "no ore candidates: %w"
	ErrMsgUnknownCandidate = "unknown ore %q: %w"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgCatalogLoaded = "Economy catalog loaded"
)
