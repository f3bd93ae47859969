package internal

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/danilupion/turbo/pkg/cookie"
	"github.com/danilupion/turbo/pkg/httperr"
)

// ErrRouterFrozen is the panic value for route registration after Build.
// Registration after the router has been materialized is a programming
// error in startup code, not a recoverable runtime condition.
var ErrRouterFrozen = errors.New("router: route registration after Build")

// routerState holds configuration shared by a router and its sub-routers.
type routerState struct {
	logger        *slog.Logger
	production    bool
	cookies       *cookie.Manager
	errorHandler  ErrorHandler
	permissions   RolePermissions
	roleExtractor RoleExtractorFunc

	mu      sync.Mutex
	frozen  bool
	handler http.Handler
}

// Router registers routes and middleware on a chi mux, then seals itself.
//
// A router starts open: routes, middleware, and sub-routers may be declared
// in any order. Build materializes the routing table, installs the wildcard
// and method fallbacks, and freezes the router. Any registration after that
// panics with ErrRouterFrozen. The sealed router is safe for concurrent use.
type Router struct {
	chi   chi.Router
	state *routerState
}

// NewRouter creates an open Router backed by a chi mux.
func NewRouter(opts ...Option) *Router {
	state := &routerState{
		cookies: cookie.New(),
	}
	for _, opt := range opts {
		opt(state)
	}
	return &Router{
		chi:   chi.NewRouter(),
		state: state,
	}
}

// guard panics if the router has been sealed by Build.
func (r *Router) guard() {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if r.state.frozen {
		panic(ErrRouterFrozen)
	}
}

// GET registers a handler for GET requests.
func (r *Router) GET(path string, h HandlerFunc, mw ...Middleware) {
	r.guard()
	r.chi.Get(path, r.wrap(h, mw...))
}

// POST registers a handler for POST requests.
func (r *Router) POST(path string, h HandlerFunc, mw ...Middleware) {
	r.guard()
	r.chi.Post(path, r.wrap(h, mw...))
}

// PUT registers a handler for PUT requests.
func (r *Router) PUT(path string, h HandlerFunc, mw ...Middleware) {
	r.guard()
	r.chi.Put(path, r.wrap(h, mw...))
}

// PATCH registers a handler for PATCH requests.
func (r *Router) PATCH(path string, h HandlerFunc, mw ...Middleware) {
	r.guard()
	r.chi.Patch(path, r.wrap(h, mw...))
}

// DELETE registers a handler for DELETE requests.
func (r *Router) DELETE(path string, h HandlerFunc, mw ...Middleware) {
	r.guard()
	r.chi.Delete(path, r.wrap(h, mw...))
}

// HEAD registers a handler for HEAD requests.
func (r *Router) HEAD(path string, h HandlerFunc, mw ...Middleware) {
	r.guard()
	r.chi.Head(path, r.wrap(h, mw...))
}

// OPTIONS registers a handler for OPTIONS requests.
func (r *Router) OPTIONS(path string, h HandlerFunc, mw ...Middleware) {
	r.guard()
	r.chi.Options(path, r.wrap(h, mw...))
}

// Use appends middleware to the router's middleware stack.
// Middleware runs for every route registered on this router after the call.
func (r *Router) Use(mw ...Middleware) {
	r.guard()
	for _, m := range mw {
		r.chi.Use(r.adaptMiddleware(m))
	}
}

// Group creates an inline route group with its own middleware stack.
func (r *Router) Group(fn func(r *Router)) {
	r.guard()
	r.chi.Group(func(cr chi.Router) {
		fn(&Router{chi: cr, state: r.state})
	})
}

// Route creates a route group mounted under the pattern prefix.
func (r *Router) Route(pattern string, fn func(r *Router)) {
	r.guard()
	r.chi.Route(pattern, func(cr chi.Router) {
		fn(&Router{chi: cr, state: r.state})
	})
}

// Mount seals sub and nests it under the pattern prefix.
func (r *Router) Mount(pattern string, sub *Router) {
	r.guard()
	r.chi.Mount(pattern, sub.Build())
}

// Handle attaches a plain http.Handler at the given pattern.
// Use this for legacy handlers or third-party routers.
func (r *Router) Handle(pattern string, h http.Handler) {
	r.guard()
	r.chi.Mount(pattern, h)
}

// Build seals the router and returns the materialized handler.
//
// The first call installs the fallback handlers: unmatched paths respond
// 501 Not Implemented (every route under the dispatcher is either declared
// or not implemented) and matched paths with a wrong method respond 405.
// Repeat calls return the same handler without touching the routing table.
func (r *Router) Build() http.Handler {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	if r.state.frozen {
		if r.state.handler == nil {
			// Sub-router sealed through a parent's Build.
			r.state.handler = r.chi
		}
		return r.state.handler
	}

	r.chi.NotFound(r.adaptHandler(func(Context) error {
		return httperr.NotImplemented()
	}))
	r.chi.MethodNotAllowed(r.adaptHandler(func(Context) error {
		return httperr.MethodNotAllowed()
	}))

	r.state.frozen = true
	r.state.handler = r.chi
	return r.state.handler
}

// ServeHTTP seals the router on first use and dispatches the request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.Build().ServeHTTP(w, req)
}

// wrap applies route-specific middleware and adapts the handler.
func (r *Router) wrap(h HandlerFunc, mw ...Middleware) http.HandlerFunc {
	// Last registered middleware runs closest to the handler.
	slices.Reverse(mw)
	for _, m := range mw {
		h = m(h)
	}
	return r.adaptHandler(h)
}

// adaptHandler converts a HandlerFunc to http.HandlerFunc, building the
// request context and routing handler errors to the error responder.
func (r *Router) adaptHandler(h HandlerFunc) http.HandlerFunc {
	s := r.state
	return func(w http.ResponseWriter, req *http.Request) {
		c := newContext(w, req, s.logger, s.cookies, s.permissions, s.roleExtractor)
		if err := h(c); err != nil {
			r.handleError(c, err)
		}
	}
}

// adaptMiddleware converts a Middleware to a chi-compatible middleware.
func (r *Router) adaptMiddleware(m Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			h := m(func(c Context) error {
				next.ServeHTTP(c.Response(), c.Request())
				return nil
			})
			c := newContext(w, req, r.state.logger, r.state.cookies, r.state.permissions, r.state.roleExtractor)
			if err := h(c); err != nil {
				r.handleError(c, err)
			}
		})
	}
}

// handleError runs the configured error handler, or the default responder.
// A response already written by the handler wins; errors after the first
// write are logged and dropped.
func (r *Router) handleError(c Context, err error) {
	if c.Written() {
		if httpErr := MapError(err); httpErr.Status() >= http.StatusInternalServerError {
			c.LogError("handler error after response write", "error", err)
		}
		return
	}
	if r.state.errorHandler != nil {
		if handlerErr := r.state.errorHandler(c, err); handlerErr != nil {
			RespondError(c, handlerErr, r.state.production)
		}
		return
	}
	RespondError(c, err, r.state.production)
}
