package validation

// Error message templates
const (
	ErrMsgParseSchema         = "failed to parse schema %s: %w"
	ErrMsgAddSchemaResource   = "failed to add schema resource %s: %w"
	ErrMsgCompileSchema       = "failed to compile schema %s: %w"
	ErrMsgSchemaNotRegistered = "schema %s is not registered"
	ErrMsgEncodeDocument      = "failed to encode document: %w"
	ErrMsgParseDocument       = "failed to parse JSON data: %w"
)
