package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWarnings_InsecureDefaults(t *testing.T) {
	cfg := &Config{
		DBPassword:           ExampleDBPassword,
		APIKey:               ExampleAPIKey,
		JWTSecret:            ExampleJWTSecret,
		IdentityTrustHeaders: true,
		StoreDriver:          StoreDriverMemory,
		Environment:          "production",
	}

	assert.ElementsMatch(t, []string{
		WarnMsgDBPassword,
		WarnMsgAPIKey,
		WarnMsgJWTSecret,
		WarnMsgTrustHeaders,
		WarnMsgMemoryInProd,
	}, cfg.Warnings())
}

func TestWarnings_MissingJWTSecret(t *testing.T) {
	cfg := &Config{APIKey: "real", StoreDriver: StoreDriverSQLite, Environment: "dev"}

	assert.Equal(t, []string{WarnMsgNoJWTSecret}, cfg.Warnings())
}

func TestWarnings_CleanConfig(t *testing.T) {
	cfg := &Config{APIKey: "real", JWTSecret: "secret", StoreDriver: StoreDriverPostgres, Environment: "production"}

	assert.Empty(t, cfg.Warnings())
}
