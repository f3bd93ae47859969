package internal

// Handler declares routes on a router.
//
// Example:
//
//	type AccountHandler struct {
//	    users *repository.Users
//	}
//
//	func (h *AccountHandler) Routes(r turbo.Router) {
//	    r.GET("/me", h.currentUser)
//	    r.POST("/sessions", h.createSession)
//	}
type Handler interface {
	Routes(r *Router)
}

// HandlerFunc is the signature for route handlers.
// It receives a Context and returns an error.
// Returning a non-nil error triggers the error responder.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can inspect/modify the request, short-circuit processing,
// or wrap the response.
//
// Example:
//
//	func RequireAdmin(next turbo.HandlerFunc) turbo.HandlerFunc {
//	    return func(c turbo.Context) error {
//	        if !isAdmin(c) {
//	            return httperr.Forbidden()
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler turns errors returned from handlers into responses.
// It runs only when the handler has not written a response yet.
type ErrorHandler func(Context, error) error
