// Package logger provides structured logging on top of log/slog with
// automatic context-based attribute injection.
//
// Context extractors pull request-scoped values (request IDs, user IDs)
// out of a context on every log call, so handlers and middleware log
// through a plain *slog.Logger without threading those values manually:
//
//	log := logger.New(middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "request processed", slog.Int("status", 200))
//	// {"level":"INFO","msg":"request processed","status":200,"request_id":"abc-123"}
//
// New produces JSON output for production; NewDev produces colorized,
// debug-level output for local development; NewNope discards everything
// and is the default when logging is not configured.
package logger
