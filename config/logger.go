package config

import (
	"log/slog"
	"os"
)

// NewLogger builds the application logger for the given environment: JSON to
// stdout in production, text otherwise. Every record carries the service
// name so aggregated logs stay attributable.
func NewLogger(env string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: logLevel()}
	var handler slog.Handler
	if env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler).With("service", "corazones")
}

// logLevel reads LOG_LEVEL (debug, info, warn, error). Anything else,
// including an unset variable, means info.
func logLevel() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
