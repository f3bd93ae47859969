package logger

import (
	"io"
	"log/slog"
)

// NewNope returns a logger whose output goes nowhere. It stands in
// wherever a *slog.Logger is required but none was configured.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
