package config

import "time"

// Default file locations, relative to the working directory
const (
	ConfigPathTuning = "configs/tuning.yaml"
)

// Store drivers
const (
	StoreDriverMemory   = "memory"
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
)

// Environment defaults
const (
	DefaultPort        = "8080"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultLogDir      = "logs"
	DefaultEnvironment = "dev"
	DefaultVersion     = "dev"
	DefaultSQLitePath  = "data/thedigger.sqlite"
	DefaultDBName      = "thedigger"
	DefaultDBMaxConns  = 10
)

// Tuning loading
const (
	TuningEnvPrefix   = "DIGGER_"
	TuningKeyDelim    = "."
	TuningEnvLevelSep = "__"
)

// Tuning defaults, used for keys missing from the file
const (
	DefaultNamespace        = "thedigger"
	DefaultLeaderboardSize  = 10
	DefaultAdminListSize    = 20
	DefaultCacheTTL         = 2 * time.Second
	DefaultActivityCap      = 50
	DefaultAutosaveInterval = 5 * time.Second
	DefaultTickInterval     = 100 * time.Millisecond
	DefaultSaveRate         = 1.0
	DefaultSaveBurst        = 5
	DefaultTrimInterval     = time.Minute
	DefaultWarmInterval     = 30 * time.Second
)

// Error templates
const (
	ErrMsgInvalidPort     = "invalid PORT value: %w"
	ErrMsgInvalidMaxConns = "invalid DB_MAX_CONNS value: %w"
	ErrMsgAPIKeyRequired  = "API_KEY environment variable must be set for security"
	ErrMsgUnknownDriver   = "unknown STORE_DRIVER %q (want memory, sqlite or postgres)"
	ErrMsgLoadTuningFile  = "failed to read tuning file %s: %w"
	ErrMsgLoadTuningEnv   = "failed to read tuning overrides: %w"
	ErrMsgDecodeTuning    = "failed to decode tuning: %w"
	ErrMsgInvalidTuning   = "invalid tuning: %w"
)

// Example values shipped in .env.example
const (
	ExampleDBPassword = "change_this_secure_password"
	ExampleAPIKey     = "generate_with_openssl_rand_hex_32"
	ExampleJWTSecret  = "generate_with_openssl_rand_hex_64"
)

// Warnings returned by Warnings
const (
	WarnMsgDBPassword   = "DB_PASSWORD appears to be using the example value - please use a secure password"
	WarnMsgAPIKey       = "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32"
	WarnMsgJWTSecret    = "JWT_SECRET appears to be using the example value - generate a secure key with: openssl rand -hex 64"
	WarnMsgNoJWTSecret  = "JWT_SECRET is not set - player tokens are disabled"
	WarnMsgTrustHeaders = "IDENTITY_TRUST_HEADERS is enabled - only run behind a proxy that sets X-Player-Id"
	WarnMsgMemoryInProd = "STORE_DRIVER=memory in production - all progress is lost on restart"
)
