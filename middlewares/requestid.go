package middlewares

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/danilupion/turbo/internal"
	"github.com/danilupion/turbo/pkg/logger"
)

type requestIDKey struct{}

// DefaultRequestIDHeaders are probed in order for an ID set upstream.
var DefaultRequestIDHeaders = []string{"X-Request-ID", "X-Request-Id", "X-Correlation-ID"}

type requestIDConfig struct {
	generate       func() string
	responseHeader string
	headers        []string
}

// RequestIDOption adjusts request ID handling.
type RequestIDOption func(*requestIDConfig)

// WithRequestIDHeaders sets the inbound headers probed for an ID.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		cfg.headers = headers
	}
}

// WithRequestIDGenerator replaces the default UUID generator.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		cfg.generate = gen
	}
}

// WithRequestIDResponseHeader sets the header the ID is echoed on.
func WithRequestIDResponseHeader(header string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		cfg.responseHeader = header
	}
}

// RequestID tags each request with a correlation ID, reusing one from
// the inbound headers when an upstream proxy already assigned it. The ID
// is stored on the context and echoed in the response.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	cfg := requestIDConfig{
		headers:        DefaultRequestIDHeaders,
		generate:       uuid.NewString,
		responseHeader: "X-Request-ID",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			id := inboundRequestID(c, cfg.headers)
			if id == "" {
				id = cfg.generate()
			}

			c.Set(requestIDKey{}, id)
			c.SetHeader(cfg.responseHeader, id)
			return next(c)
		}
	}
}

func inboundRequestID(c internal.Context, headers []string) string {
	for _, h := range headers {
		if v := c.Header(h); v != "" {
			return v
		}
	}
	return ""
}

// GetRequestID returns the request's correlation ID, or "" when the
// middleware is not installed.
func GetRequestID(c internal.Context) string {
	v, _ := c.Get(requestIDKey{}).(string)
	return v
}

// RequestIDExtractor feeds the correlation ID into logger.New so every
// log line within a request carries a request_id attribute.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v, ok := ctx.Value(requestIDKey{}).(string); ok && v != "" {
			return slog.String("request_id", v), true
		}
		return slog.Attr{}, false
	}
}
