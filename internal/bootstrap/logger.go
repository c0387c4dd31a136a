package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/osse101/TheDigger_Go/internal/config"
	"github.com/osse101/TheDigger_Go/internal/logger"
)

// SetupLogger installs the process logger writing to stdout and a new
// timestamped session file under cfg.LogDir. Old session files beyond the
// retention count are removed first. The caller must close the returned file.
func SetupLogger(cfg *config.Config) (*os.File, error) {
	if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
		return nil, fmt.Errorf(ErrMsgFailedCreateLogsDir, err)
	}

	cleanupLogs(cfg.LogDir, LogFileRetentionCount)

	timestamp := time.Now().Format(LogFileTimestampFormat)
	logFileName := filepath.Join(cfg.LogDir, fmt.Sprintf(LogFileNamePattern, timestamp))

	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgFailedOpenLogFile, err)
	}

	logger.InitLoggerWithWriter(LoggerConfig(cfg), io.MultiWriter(os.Stdout, logFile))

	slog.Info(LogMsgLoggingInitialized, "level", cfg.LogLevel, "file", logFileName)
	slog.Info(LogMsgStartingTheDigger,
		"environment", cfg.Environment,
		"log_format", cfg.LogFormat,
		"version", cfg.Version,
		"store", cfg.StoreDriver)

	slog.Debug(LogMsgConfigurationLoaded,
		"db_host", cfg.DBHost,
		"db_port", cfg.DBPort,
		"db_name", cfg.DBName,
		"sqlite_path", cfg.SQLitePath,
		"tuning_path", cfg.TuningPath,
		"port", cfg.Port)

	for _, w := range cfg.Warnings() {
		slog.Warn(LogMsgConfigWarning, "warning", w)
	}

	return logFile, nil
}

// LoggerConfig maps process config onto the logger settings.
func LoggerConfig(cfg *config.Config) logger.Config {
	lc := logger.DefaultConfig()
	lc.Level = cfg.LogLevel
	lc.Format = cfg.LogFormat
	lc.Version = cfg.Version
	lc.Environment = cfg.Environment
	return lc
}

// cleanupLogs removes the oldest session logs so at most keep remain.
// Session file names sort chronologically.
func cleanupLogs(logDir string, keep int) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	var logFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), LogFileExtension) {
			logFiles = append(logFiles, entry.Name())
		}
	}
	sort.Strings(logFiles)

	for i := 0; i < len(logFiles)-keep; i++ {
		if err := os.Remove(filepath.Join(logDir, logFiles[i])); err != nil {
			slog.Warn(LogMsgFailedDeleteOldLog, "file", logFiles[i], "error", err)
		}
	}
}
