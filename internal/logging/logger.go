package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "CASTTOMPV_LOG_LEVEL"

// Tag is attached to every entry mirrored from the in-app debug log.
const Tag = "CastToMPV"

// Initialize creates a new logger with the specified level.
// If level is empty, it checks CASTTOMPV_LOG_LEVEL environment variable.
// If neither is set, logging is disabled (silent mode).
func Initialize(level string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	zapLevel, err := parseLevel(level)
	if err != nil {
		return err
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// InitializeFromEnv initializes the logger from the CASTTOMPV_LOG_LEVEL
// environment variable. CLI commands stay silent unless it is set.
func InitializeFromEnv() error {
	return Initialize("")
}

// SetLogger replaces the global logger. Tests use it with an observer core.
func SetLogger(l *zap.Logger) {
	logger = l
}

func parseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q (use debug, info, warn, error)", level)
	}
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Silent until initialized so CLI output stays clean
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogDebugLine mirrors one in-app debug log line to the system log.
func LogDebugLine(message string, forced bool) {
	Debug(message,
		zap.String("tag", Tag),
		zap.Bool("forced", forced),
	)
}

// LogCastRequest logs an outgoing request to the receiver
func LogCastRequest(target string, endpoint string, headers map[string]string) {
	Info("Cast request",
		zap.String("target", target),
		zap.String("endpoint", endpoint),
		zap.Any("headers", headers),
	)
}

// LogCastResponse logs the receiver's reply
func LogCastResponse(target string, statusCode int, bodyLen int) {
	Info("Cast response",
		zap.String("target", target),
		zap.Int("status_code", statusCode),
		zap.Int("body_length", bodyLen),
	)
}

// LogHTTPRequest logs an HTTP request seen by the receiver
func LogHTTPRequest(remoteAddr string, method string, path string, headers map[string]string) {
	Info("HTTP request received",
		zap.String("remote_addr", remoteAddr),
		zap.String("method", method),
		zap.String("path", path),
		zap.Any("headers", headers),
	)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
