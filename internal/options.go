package internal

import (
	"log/slog"

	"github.com/danilupion/turbo/pkg/cookie"
)

// Option configures a Router at construction time.
type Option func(*routerState)

// WithLogger sets the logger handed to request contexts.
// Without it, log calls are discarded.
func WithLogger(log *slog.Logger) Option {
	return func(s *routerState) {
		s.logger = log
	}
}

// WithProduction switches the router to production behavior.
// Rejected requests are no longer logged and internal causes stay terse.
func WithProduction() Option {
	return func(s *routerState) {
		s.production = true
	}
}

// WithErrorHandler replaces the default error responder.
// Returning a non-nil error from the handler falls back to the default
// responder with that error.
func WithErrorHandler(h ErrorHandler) Option {
	return func(s *routerState) {
		s.errorHandler = h
	}
}

// WithCookieOptions configures the cookie manager used by request contexts.
// A secret is required for signed cookies, including the delegated login
// state cookie.
func WithCookieOptions(opts ...cookie.Option) Option {
	return func(s *routerState) {
		s.cookies = cookie.New(opts...)
	}
}

// WithCookieSecret configures the cookie manager with a signing secret.
// Shorthand for WithCookieOptions(cookie.WithSecret(secret)).
func WithCookieSecret(secret string) Option {
	return func(s *routerState) {
		s.cookies = cookie.New(cookie.WithSecret(secret))
	}
}

// WithRolePermissions sets the role to permission grants used by
// Context.Can. Pair with WithRoleExtractor.
func WithRolePermissions(permissions RolePermissions) Option {
	return func(s *routerState) {
		s.permissions = permissions
	}
}

// WithRoleExtractor sets the function resolving the current user's role.
// Pair with WithRolePermissions.
func WithRoleExtractor(extractor RoleExtractorFunc) Option {
	return func(s *routerState) {
		s.roleExtractor = extractor
	}
}
