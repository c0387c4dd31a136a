package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLogging(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	var buf bytes.Buffer

	InitLoggerWithWriter(Config{
		Level:       LogLevelInfo,
		Format:      LogFormatJSON,
		ServiceName: "test-service",
		Version:     "1.0.0",
		Environment: EnvironmentTest,
	}, &buf)

	Info("test message", "key", "value", "number", 42)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "test-service", entry["service"])
	assert.Equal(t, "1.0.0", entry["version"])
	assert.Equal(t, "test", entry["environment"])
	assert.Equal(t, "test message", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, float64(42), entry["number"])
}

func TestLevelFiltering(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	var buf bytes.Buffer

	InitLoggerWithWriter(Config{Level: LogLevelWarn, Format: LogFormatText}, &buf)

	Info("hidden")
	slog.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestRequestIDContext(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	var buf bytes.Buffer
	InitLoggerWithWriter(Config{Level: LogLevelInfo, Format: LogFormatText}, &buf)

	ctx := WithRequestID(context.Background(), "test-req-123")

	assert.Equal(t, "test-req-123", GetRequestID(ctx))
	assert.Empty(t, GetRequestID(context.Background()))

	FromContext(ctx).Info("scoped")
	assert.True(t, strings.Contains(buf.String(), "request_id=test-req-123"))
}

func TestGenerateRequestID_Unique(t *testing.T) {
	a, b := GenerateRequestID(), GenerateRequestID()

	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestConfigPresets(t *testing.T) {
	prod := ProductionConfig()
	assert.True(t, prod.IsJSON())
	assert.Equal(t, slog.LevelInfo, prod.LogLevel())
	assert.False(t, prod.AddSource)

	dev := DevelopmentConfig()
	assert.False(t, dev.IsJSON())
	assert.Equal(t, slog.LevelDebug, dev.LogLevel())
	assert.True(t, dev.AddSource)

	assert.Equal(t, slog.LevelInfo, Config{Level: "nonsense"}.LogLevel())
	assert.NotEmpty(t, DefaultConfig().ServiceName)
}
