package middlewares

import (
	"context"

	"github.com/danilupion/turbo/internal"
	"github.com/danilupion/turbo/pkg/httperr"
)

// DefaultUserField is the context field the resolved user is attached under.
const DefaultUserField = "user"

// userKey namespaces resolved users in the request context by field name.
type userKey string

// ResolveUserConfig configures the user resolver middleware.
type ResolveUserConfig struct {
	SourceField string
	DestField   string
	Optional    bool
}

// ResolveUserOption configures ResolveUserConfig.
type ResolveUserOption func(*ResolveUserConfig)

// WithUserSourceField sets the context field the auth data is read from.
func WithUserSourceField(name string) ResolveUserOption {
	return func(cfg *ResolveUserConfig) {
		if name != "" {
			cfg.SourceField = name
		}
	}
}

// WithUserDestField sets the context field the resolved user is attached under.
func WithUserDestField(name string) ResolveUserOption {
	return func(cfg *ResolveUserConfig) {
		if name != "" {
			cfg.DestField = name
		}
	}
}

// OptionalUser makes resolution best-effort: absent auth data or an
// unresolved user falls through to the handler with nothing attached.
func OptionalUser() ResolveUserOption {
	return func(cfg *ResolveUserConfig) {
		cfg.Optional = true
	}
}

// ResolveUser returns middleware that turns auth data into a domain user.
//
// It reads auth data of type A from the source field (default: the token
// middleware's field), invokes the factory, and attaches the result under
// the destination field. By default resolution is mandatory: missing auth
// data or a nil factory result stops dispatch with 401. A factory error
// always propagates to the error responder, mandatory or not.
func ResolveUser[A, U any](factory func(context.Context, *A) (*U, error), opts ...ResolveUserOption) internal.Middleware {
	cfg := &ResolveUserConfig{
		SourceField: DefaultAuthField,
		DestField:   DefaultUserField,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			auth, ok := c.Get(authKey(cfg.SourceField)).(*A)
			if !ok || auth == nil {
				if cfg.Optional {
					return next(c)
				}
				return httperr.Unauthorized()
			}

			user, err := factory(c.Context(), auth)
			if err != nil {
				return err
			}
			if user == nil {
				if cfg.Optional {
					return next(c)
				}
				return httperr.Unauthorized()
			}

			c.Set(userKey(cfg.DestField), user)

			return next(c)
		}
	}
}

// GetUser reads the resolved user attached under the default field.
// Returns nil for unauthenticated requests.
func GetUser[U any](c internal.Context) *U {
	return GetUserField[U](c, DefaultUserField)
}

// GetUserField reads the resolved user attached under a custom field.
func GetUserField[U any](c internal.Context, field string) *U {
	user, ok := c.Get(userKey(field)).(*U)
	if !ok {
		return nil
	}
	return user
}
