// Package middlewares provides the request middleware shipped with turbo:
// bearer-token authentication, delegated (OAuth) login, user resolution,
// permission checks, request IDs, and panic recovery.
//
// All middleware follows the same shape: a constructor taking functional
// options returns a turbo.Middleware, and package-level accessors read
// whatever the middleware attached to the request context.
package middlewares
