package turbo

import (
	"github.com/danilupion/turbo/internal"
	"github.com/danilupion/turbo/pkg/cookie"
	"github.com/danilupion/turbo/pkg/logger"
	"github.com/danilupion/turbo/pkg/validator"
)

// Type aliases - public API
type (
	// Router registers routes and middleware, then seals itself on Build.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler turns errors returned from handlers into responses.
	ErrorHandler = internal.ErrorHandler

	// Option configures the router.
	Option = internal.Option

	// Permission represents a named permission string.
	Permission = internal.Permission

	// RolePermissions maps role names to their granted permissions.
	RolePermissions = internal.RolePermissions

	// RoleExtractorFunc extracts the current user's role from the request context.
	RoleExtractorFunc = internal.RoleExtractorFunc

	// Extractor tries multiple value sources in order.
	Extractor = internal.Extractor

	// ExtractorSource extracts a value from the request context.
	ExtractorSource = internal.ExtractorSource

	// ResponseWriter wraps http.ResponseWriter with write tracking.
	ResponseWriter = internal.ResponseWriter

	// ValidationErrors is a collection of validation errors.
	ValidationErrors = validator.ValidationErrors

	// ContextExtractor extracts a slog attribute from context.
	// Used with logger.New to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor

	// CookieOption configures the cookie manager.
	CookieOption = cookie.Option
)

// ErrRouterFrozen is the panic value for route registration after Build.
var ErrRouterFrozen = internal.ErrRouterFrozen

// BodyField is the field key used for errors about the request body itself.
const BodyField = internal.BodyField

// Constructors

// NewRouter creates an open Router with the given options.
//
// Example:
//
//	r := turbo.NewRouter(
//	    turbo.WithLogger(log),
//	    turbo.WithCookieSecret(cfg.Auth.JWT.Secret),
//	)
//	r.Use(middlewares.RequestID(), middlewares.Recover())
//	r.POST("/users", createUser, turbo.Validate(
//	    validator.Field("email", validator.Required(), validator.Email()),
//	))
//	http.ListenAndServe(":8080", r.Build())
func NewRouter(opts ...Option) *Router {
	return internal.NewRouter(opts...)
}

// Validate returns middleware that checks the JSON request body against the
// given rules before the handler runs.
func Validate(rules ...validator.Rule) Middleware {
	return internal.Validate(rules...)
}

// NewExtractor creates an Extractor that tries the given sources in order.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return internal.NewExtractor(sources...)
}

// Options

// WithLogger sets the logger handed to request contexts.
var WithLogger = internal.WithLogger

// WithProduction switches the router to production behavior.
var WithProduction = internal.WithProduction

// WithErrorHandler replaces the default error responder.
var WithErrorHandler = internal.WithErrorHandler

// WithCookieOptions configures the cookie manager used by request contexts.
var WithCookieOptions = internal.WithCookieOptions

// WithCookieSecret configures the cookie manager with a signing secret.
var WithCookieSecret = internal.WithCookieSecret

// WithRolePermissions sets the role to permission grants used by Context.Can.
var WithRolePermissions = internal.WithRolePermissions

// WithRoleExtractor sets the function resolving the current user's role.
var WithRoleExtractor = internal.WithRoleExtractor

// Extractor sources

// FromHeader returns a source that reads from a request header.
var FromHeader = internal.FromHeader

// FromBearerToken returns a source that reads a bearer token from the
// Authorization header.
var FromBearerToken = internal.FromBearerToken

// FromQuery returns a source that reads from a query parameter.
var FromQuery = internal.FromQuery

// FromCookie returns a source that reads from a plain cookie.
var FromCookie = internal.FromCookie

// FromCookieSigned returns a source that reads from a signed cookie.
var FromCookieSigned = internal.FromCookieSigned

// FromParam returns a source that reads from a URL parameter.
var FromParam = internal.FromParam

// Typed helpers

// ContextValue retrieves a typed value stored on the context with Set.
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// Param retrieves a typed URL parameter.
func Param[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	return internal.Param[T](c, name)
}

// Query retrieves a typed query parameter.
func Query[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	return internal.Query[T](c, name)
}

// QueryDefault retrieves a typed query parameter with a default value.
func QueryDefault[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string, defaultValue T) T {
	return internal.QueryDefault[T](c, name, defaultValue)
}
