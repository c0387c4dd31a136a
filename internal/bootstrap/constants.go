package bootstrap

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files
	LogFilePermission = 0644
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older log files kept next to the new one
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingTheDigger   = "Starting TheDigger"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgConfigWarning       = "Configuration warning"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
	ErrMsgFailedCreateLogsDir = "failed to create logs directory: %w"
	ErrMsgFailedOpenLogFile   = "failed to open log file: %w"
)

// =============================================================================
// Store and Game Setup
// =============================================================================

const (
	LogMsgStoreOpened      = "Store opened"
	LogMsgCatalogLoaded    = "Catalog loaded"
	ErrMsgOpenSQLite       = "failed to open sqlite store: %w"
	ErrMsgOpenPostgres     = "failed to open postgres store: %w"
	ErrMsgUnknownDriver    = "unknown store driver %q"
	ErrMsgLoadCatalog      = "failed to load catalog: %w"
	ErrMsgLoadAchievements = "failed to load achievements: %w"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgWorkerShutdownFailed = "Goal rollover worker shutdown failed"
	LogMsgStoreCloseFailed     = "Store close failed"
)
