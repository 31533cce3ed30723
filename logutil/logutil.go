// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package logutil

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Level represents the logging level.
type Level int

const (
	// LevelDebug is for debug messages.
	LevelDebug Level = iota
	// LevelInfo is for informational messages.
	LevelInfo
	// LevelWarn is for warnings.
	LevelWarn
	// LevelError is for errors.
	LevelError
)

// String returns the lower-case level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Environment variable names for logging configuration.
const (
	// EnvDebug enables debug logging when set to "true" or "1".
	EnvDebug = "SMITH_DEBUG"
	// EnvLevel selects the level by name.
	EnvLevel = "SMITH_LOG_LEVEL"
	// EnvFormat selects "json" or "text" output.
	EnvFormat = "SMITH_LOG_FORMAT"
)

// Config describes the global logger.
type Config struct {
	Level      Level
	Structured bool
	Writer     io.Writer
}

var (
	mu           sync.RWMutex
	globalLogger *slog.Logger
	current      = Config{Level: LevelInfo, Writer: os.Stderr}
)

func init() {
	Setup(current)
}

// Setup installs a new global logger. A nil Writer means stderr.
// This function is safe for concurrent use.
func Setup(cfg Config) {
	if cfg.Writer == nil {
		cfg.Writer = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: cfg.Level.slogLevel()}
	var handler slog.Handler
	if cfg.Structured {
		handler = slog.NewJSONHandler(cfg.Writer, opts)
	} else {
		handler = slog.NewTextHandler(cfg.Writer, opts)
	}

	mu.Lock()
	defer mu.Unlock()
	current = cfg
	globalLogger = slog.New(handler)
}

// SetupLogger configures the global logger writing to stderr.
func SetupLogger(debug, structured bool) {
	SetupLoggerWithWriter(os.Stderr, debug, structured)
}

// SetupLoggerWithWriter configures the logger with a custom writer.
// This is useful for testing or redirecting logs.
func SetupLoggerWithWriter(w io.Writer, debug, structured bool) {
	level := LevelInfo
	if debug {
		level = LevelDebug
	}
	Setup(Config{Level: level, Structured: structured, Writer: w})
}

// SetupFromEnv configures the global logger from SMITH_DEBUG, SMITH_LOG_LEVEL
// and SMITH_LOG_FORMAT.
func SetupFromEnv() {
	cfg := Config{Level: LevelInfo, Writer: os.Stderr}
	if v := os.Getenv(EnvLevel); v != "" {
		cfg.Level = ParseLevel(v)
	}
	if envDebug() {
		cfg.Level = LevelDebug
	}
	cfg.Structured = strings.EqualFold(os.Getenv(EnvFormat), "json")
	Setup(cfg)
}

func envDebug() bool {
	v := strings.ToLower(os.Getenv(EnvDebug))
	return v == "true" || v == "1"
}

// SetOutput redirects the global logger, keeping level and format.
func SetOutput(w io.Writer) {
	cfg := currentConfig()
	cfg.Writer = w
	Setup(cfg)
}

// SetLevel changes the level, keeping writer and format.
func SetLevel(level Level) {
	cfg := currentConfig()
	cfg.Level = level
	Setup(cfg)
}

// GetLevel returns the current logging level.
func GetLevel() Level {
	return currentConfig().Level
}

func currentConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// IsDebugEnabled returns true if debug logging is enabled, either
// programmatically or through SMITH_DEBUG.
func IsDebugEnabled() bool {
	return GetLevel() == LevelDebug || envDebug()
}

// ParseLevel parses a string into a Level.
// Valid values are: "debug", "info", "warn", "warning", "error".
// Returns LevelInfo for unrecognized values.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger returns the underlying slog.Logger for advanced usage.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// Debug logs at debug level. It is a no-op unless debug is enabled.
func Debug(msg string, args ...any) {
	if IsDebugEnabled() {
		Logger().Debug(msg, args...)
	}
}

// Info logs at info level.
func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}
