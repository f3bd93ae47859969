package logger

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// New creates a JSON-formatted logger with optional context extractors.
// This is the production factory.
func New(extractors ...ContextExtractor) *slog.Logger {
	log := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(NewContextHandler(log, extractors...))
}

// NewDev creates a human-readable, colorized logger at debug level for
// local development.
func NewDev(extractors ...ContextExtractor) *slog.Logger {
	log := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.Kitchen,
	})
	return slog.New(NewContextHandler(log, extractors...))
}
