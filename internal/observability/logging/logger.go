// Package logging provides structured logging utilities using log/slog.
// It offers constructors with consistent configuration and request-id
// propagation helpers.
package logging

import (
	"context"
	"log/slog"
	"os"

	"briefcast/internal/handler/http/requestid"
)

// NewLogger creates a structured logger with JSON output. The level is
// controlled via the LOG_LEVEL environment variable ("debug" enables debug
// logging; anything else means info).
func NewLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	return slog.New(handler)
}

// NewTextLogger creates a logger with human-readable text output for local
// development.
func NewTextLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	return slog.New(handler)
}

// WithRequestID returns a logger that includes the request ID from the
// context, enabling correlation across log entries for one request.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		return logger
	}
	return logger.With("request_id", reqID)
}
