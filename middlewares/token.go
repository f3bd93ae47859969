package middlewares

import (
	"time"

	"github.com/danilupion/turbo/internal"
	"github.com/danilupion/turbo/pkg/httperr"
	"github.com/danilupion/turbo/pkg/jwt"
)

// DefaultAuthField is the context field the verified token claims are
// attached under.
const DefaultAuthField = "jwtUser"

// authKey namespaces auth data in the request context by field name.
type authKey string

// Claims is the token payload for authenticated requests.
// A token only counts as authentication when both ID and Role are present.
type Claims struct {
	jwt.StandardClaims
	ID   string `json:"id"`
	Role string `json:"role"`
}

// Valid checks the time window and requires a complete identity.
func (c Claims) Valid() error {
	if err := c.StandardClaims.Valid(); err != nil {
		return err
	}
	if c.ID == "" || c.Role == "" {
		return jwt.ErrInvalidToken
	}
	return nil
}

// TokenAuthConfig configures the token auth middleware.
type TokenAuthConfig struct {
	Extractor    internal.Extractor
	Field        string
	Optional     bool
	extractorSet bool
}

// TokenAuthOption configures TokenAuthConfig.
type TokenAuthOption func(*TokenAuthConfig)

// WithTokenExtractor sets a custom token extractor chain.
func WithTokenExtractor(ext internal.Extractor) TokenAuthOption {
	return func(cfg *TokenAuthConfig) {
		cfg.Extractor = ext
		cfg.extractorSet = true
	}
}

// WithAuthField sets the context field the claims are attached under.
func WithAuthField(name string) TokenAuthOption {
	return func(cfg *TokenAuthConfig) {
		if name != "" {
			cfg.Field = name
		}
	}
}

// Optional makes authentication best-effort: a missing or invalid token
// falls through to the handler with no auth data attached.
func Optional() TokenAuthOption {
	return func(cfg *TokenAuthConfig) {
		cfg.Optional = true
	}
}

// TokenAuth returns middleware that extracts a bearer token, verifies it,
// and attaches the parsed Claims to the context.
//
// By default authentication is mandatory: a missing, invalid, expired, or
// incomplete token stops dispatch with 401 before the handler runs. With
// Optional, verification failures fall through anonymously; claims are
// attached only when the token fully verifies, never partially.
func TokenAuth(svc *jwt.Service, opts ...TokenAuthOption) internal.Middleware {
	cfg := &TokenAuthConfig{
		Field: DefaultAuthField,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	// Default extractor: Bearer token from the Authorization header.
	if !cfg.extractorSet {
		cfg.Extractor = internal.NewExtractor(
			internal.FromBearerToken(),
		)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			token, ok := cfg.Extractor.Extract(c)
			if !ok {
				if cfg.Optional {
					return next(c)
				}
				return httperr.Unauthorized()
			}

			var claims Claims
			if err := svc.Parse(token, &claims); err != nil {
				if cfg.Optional {
					return next(c)
				}
				return httperr.Unauthorized()
			}

			c.Set(authKey(cfg.Field), &claims)

			return next(c)
		}
	}
}

// RequireRole returns mandatory token auth composed with a role check.
// A verified token whose role is not in roles stops dispatch with 403.
func RequireRole(svc *jwt.Service, roles []string, opts ...TokenAuthOption) internal.Middleware {
	auth := TokenAuth(svc, opts...)

	cfg := &TokenAuthConfig{Field: DefaultAuthField}
	for _, opt := range opts {
		opt(cfg)
	}

	check := func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			claims := GetTokenClaimsField(c, cfg.Field)
			if claims == nil {
				return httperr.Unauthorized()
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(c)
				}
			}
			return httperr.Forbidden()
		}
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return auth(check(next))
	}
}

// IssueToken creates a signed token for the given identity.
// IssuedAt is stamped with the current time and ExpiresAt with now+ttl.
func IssueToken(svc *jwt.Service, id, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	return svc.Generate(Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   id,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
		ID:   id,
		Role: role,
	})
}

// GetTokenClaims reads the verified claims attached under the default field.
// Returns nil for unauthenticated requests.
func GetTokenClaims(c internal.Context) *Claims {
	return GetTokenClaimsField(c, DefaultAuthField)
}

// GetTokenClaimsField reads the verified claims attached under a custom field.
func GetTokenClaimsField(c internal.Context, field string) *Claims {
	claims, ok := c.Get(authKey(field)).(*Claims)
	if !ok {
		return nil
	}
	return claims
}
