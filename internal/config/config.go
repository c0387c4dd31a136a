package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the process configuration read from the environment
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogDir      string
	Environment string
	Version     string

	APIKey               string // API key for admin routes and trusted headers
	JWTSecret            string // empty disables player tokens
	IdentityTrustHeaders bool
	TrustedProxies       []string

	StoreDriver string
	SQLitePath  string
	DBUser      string
	DBPassword  string
	DBHost      string
	DBPort      string
	DBName      string
	DBMaxConns  int

	TuningPath  string
	CatalogPath string // empty uses the embedded catalog
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:             strings.ToLower(getEnv("LOG_LEVEL", DefaultLogLevel)),
		LogFormat:            strings.ToLower(getEnv("LOG_FORMAT", DefaultLogFormat)),
		LogDir:               getEnv("LOG_DIR", DefaultLogDir),
		Environment:          getEnv("ENVIRONMENT", DefaultEnvironment),
		Version:              getEnv("VERSION", DefaultVersion),
		APIKey:               getEnv("API_KEY", ""),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		IdentityTrustHeaders: getEnvAsBool("IDENTITY_TRUST_HEADERS", false),
		TrustedProxies:       getEnvAsList("TRUSTED_PROXIES"),
		StoreDriver:          strings.ToLower(getEnv("STORE_DRIVER", StoreDriverMemory)),
		SQLitePath:           getEnv("SQLITE_PATH", DefaultSQLitePath),
		DBUser:               getEnv("DB_USER", "postgres"),
		DBPassword:           getEnv("DB_PASSWORD", "postgres"),
		DBHost:               getEnv("DB_HOST", "localhost"),
		DBPort:               getEnv("DB_PORT", "5432"),
		DBName:               getEnv("DB_NAME", DefaultDBName),
		TuningPath:           getEnv("TUNING_PATH", ConfigPathTuning),
		CatalogPath:          getEnv("CATALOG_PATH", ""),
	}

	port, err := strconv.Atoi(getEnv("PORT", DefaultPort))
	if err != nil {
		return nil, fmt.Errorf(ErrMsgInvalidPort, err)
	}
	cfg.Port = port

	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", strconv.Itoa(DefaultDBMaxConns)))
	if err != nil {
		return nil, fmt.Errorf(ErrMsgInvalidMaxConns, err)
	}
	cfg.DBMaxConns = maxConns

	if cfg.APIKey == "" {
		return nil, errors.New(ErrMsgAPIKeyRequired)
	}

	switch cfg.StoreDriver {
	case StoreDriverMemory, StoreDriverSQLite, StoreDriverPostgres:
	default:
		return nil, fmt.Errorf(ErrMsgUnknownDriver, cfg.StoreDriver)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsList splits a comma separated variable, dropping blanks.
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// IsProduction reports whether ENVIRONMENT names a production deployment.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Environment)
	return env == "prod" || env == "production"
}
