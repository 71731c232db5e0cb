// Package observability holds the process loggers.
package observability

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// CLILogger is used for CLI commands (console output).
	CLILogger *zap.Logger

	// ServerLogger is used by the HTTP server (JSON to stderr).
	ServerLogger *zap.Logger
)

// InitCLILogger initializes the CLI logger.
func InitCLILogger(verbose bool) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: failed to initialize CLI logger: %v\n", err)
		os.Exit(1)
	}
	CLILogger = logger
}

// InitServerLogger initializes the structured server logger.
func InitServerLogger(serviceName, logLevel string) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parseLogLevel(logLevel))
	cfg.OutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build(zap.Fields(zap.String("service", serviceName)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: failed to initialize server logger: %v\n", err)
		os.Exit(1)
	}
	ServerLogger = logger
}

// parseLogLevel converts a config string to a zap level.
func parseLogLevel(levelStr string) zapcore.Level {
	switch levelStr {
	case "trace", "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
