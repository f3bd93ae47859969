package middlewares

import (
	"github.com/danilupion/turbo/internal"
	"github.com/danilupion/turbo/pkg/httperr"
)

// RequirePermission returns middleware that stops dispatch with 403 unless
// the current user's role grants the permission. The role table and role
// extractor are configured on the router.
func RequirePermission(permission internal.Permission) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			if !c.Can(permission) {
				return httperr.Forbidden()
			}
			return next(c)
		}
	}
}
