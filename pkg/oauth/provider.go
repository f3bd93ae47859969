package oauth

import (
	"context"

	"golang.org/x/oauth2"
)

// Identity is the provider-agnostic profile handed to the application's
// identity resolver. It lives for the duration of the login callback and
// is not persisted by this package.
type Identity struct {
	Provider string // provider identifier (e.g., "google")
	ID       string // provider's unique user identifier
	Email    string
	Name     string
	Picture  string
}

// Provider abstracts provider-specific delegated-login operations.
// Implementations handle all provider details internally, including email
// verification checks where the provider supports them.
type Provider interface {
	// Name returns the provider identifier (e.g., "google", "facebook").
	Name() string

	// AuthCodeURL generates the authorization URL for the consent screen.
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string

	// Exchange trades an authorization code for tokens.
	Exchange(ctx context.Context, code, redirectURI string) (*oauth2.Token, error)

	// FetchIdentity retrieves the user's profile using the access token.
	FetchIdentity(ctx context.Context, token *oauth2.Token) (*Identity, error)
}
