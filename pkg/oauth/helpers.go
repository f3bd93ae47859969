package oauth

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
)

// overrideRedirect clones a config with a per-request redirect URI.
func overrideRedirect(cfg *oauth2.Config, redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  redirectURI,
		Scopes:       cfg.Scopes,
		Endpoint:     cfg.Endpoint,
	}
}

// contextWithHTTPClient injects a custom HTTP client for the oauth2
// machinery when one is configured.
func contextWithHTTPClient(ctx context.Context, client *http.Client) context.Context {
	if client != nil {
		return context.WithValue(ctx, oauth2.HTTPClient, client)
	}
	return ctx
}
