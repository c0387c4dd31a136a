package database

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2
	// DefaultMaxConnections applies when no pool size is configured
	DefaultMaxConnections = 10
)

// Error Messages - Database Operations
const (
	ErrMsgParseConnString   = "failed to parse connection string: %w"
	ErrMsgCreatePool        = "failed to create connection pool: %w"
	ErrMsgPingDatabase      = "failed to ping database: %w"
	ErrMsgMigrationProvider = "failed to create migration provider: %w"
	ErrMsgApplyMigrations   = "failed to apply migrations: %w"
)

// Log Messages
const (
	LogMsgConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationApplied    = "Applied migration"
)
