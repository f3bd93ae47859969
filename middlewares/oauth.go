package middlewares

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/danilupion/turbo/internal"
	"github.com/danilupion/turbo/pkg/httperr"
	"github.com/danilupion/turbo/pkg/oauth"
)

// DefaultStateTTL bounds how long a pending consent redirect stays valid.
const DefaultStateTTL = 10 * time.Minute

// stateCookiePrefix namespaces the state cookie per provider, so parallel
// logins against different providers don't clobber each other.
const stateCookiePrefix = "oauth_state_"

// OAuthFlowConfig configures a delegated login flow.
type OAuthFlowConfig struct {
	StateTTL  time.Duration
	UserField string
}

// OAuthFlowOption configures OAuthFlowConfig.
type OAuthFlowOption func(*OAuthFlowConfig)

// WithOAuthStateTTL sets the lifetime of the state cookie.
func WithOAuthStateTTL(ttl time.Duration) OAuthFlowOption {
	return func(cfg *OAuthFlowConfig) {
		if ttl > 0 {
			cfg.StateTTL = ttl
		}
	}
}

// WithOAuthUserField sets the context field the resolved user is attached
// under in the callback.
func WithOAuthUserField(name string) OAuthFlowOption {
	return func(cfg *OAuthFlowConfig) {
		if name != "" {
			cfg.UserField = name
		}
	}
}

// OAuthFlow drives a delegated login against one provider: a handler that
// redirects to the consent screen and a middleware that completes the
// round trip and resolves the provider identity to a domain user.
type OAuthFlow[U any] struct {
	provider oauth.Provider
	resolver func(context.Context, *oauth.Identity) (*U, error)
	cfg      OAuthFlowConfig
}

// NewOAuthFlow creates a flow for the given provider.
//
// The resolver owns the identity-to-user decision: returning a nil user
// rejects the login with 401, returning an error surfaces that error
// unchanged. The identity is request-scoped and never persisted here.
func NewOAuthFlow[U any](provider oauth.Provider, resolver func(context.Context, *oauth.Identity) (*U, error), opts ...OAuthFlowOption) *OAuthFlow[U] {
	cfg := OAuthFlowConfig{
		StateTTL:  DefaultStateTTL,
		UserField: DefaultUserField,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &OAuthFlow[U]{
		provider: provider,
		resolver: resolver,
		cfg:      cfg,
	}
}

// stateCookie is the signed cookie carrying the CSRF state for this provider.
func (f *OAuthFlow[U]) stateCookie() string {
	return stateCookiePrefix + f.provider.Name()
}

// Initiate returns the handler starting the login: it generates a random
// state, stores it in a signed short-lived cookie, and redirects to the
// provider's consent screen. Given scopes override the provider defaults.
func (f *OAuthFlow[U]) Initiate(scopes ...string) internal.HandlerFunc {
	return func(c internal.Context) error {
		state, err := randomState()
		if err != nil {
			return err
		}
		if err := c.SetCookieSigned(f.stateCookie(), state, int(f.cfg.StateTTL.Seconds())); err != nil {
			return err
		}

		var opts []oauth2.AuthCodeOption
		if len(scopes) > 0 {
			opts = append(opts, oauth2.SetAuthURLParam("scope", strings.Join(scopes, " ")))
		}

		return c.Redirect(http.StatusFound, f.provider.AuthCodeURL(state, opts...))
	}
}

// Callback returns the middleware completing the login. It verifies the
// state echo against the cookie, exchanges the authorization code, fetches
// the provider identity, and resolves it to a user attached to the context
// before the wrapped handler runs.
func (f *OAuthFlow[U]) Callback() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			expected, err := c.CookieSigned(f.stateCookie())
			if err != nil || expected == "" {
				return httperr.Unauthorized()
			}
			c.DeleteCookie(f.stateCookie())

			if state := c.Query("state"); state != expected {
				return httperr.Unauthorized()
			}

			// The provider reports consent denial via the error parameter.
			if c.Query("error") != "" {
				return httperr.Unauthorized()
			}

			code := c.Query("code")
			if code == "" {
				return httperr.Unauthorized()
			}

			token, err := f.provider.Exchange(c.Context(), code, "")
			if err != nil {
				return httperr.Unauthorized()
			}

			identity, err := f.provider.FetchIdentity(c.Context(), token)
			if err != nil {
				return httperr.Unauthorized()
			}

			user, err := f.resolver(c.Context(), identity)
			if err != nil {
				return err
			}
			if user == nil {
				return httperr.Unauthorized()
			}

			c.Set(userKey(f.cfg.UserField), user)

			return next(c)
		}
	}
}

// randomState produces an unguessable state value.
func randomState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
