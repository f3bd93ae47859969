// Package oauth implements the provider side of delegated login: a
// Provider interface over the OAuth2 authorization-code flow plus
// concrete Google, Facebook, and GitHub implementations.
//
// Each provider generates consent-screen URLs, exchanges authorization
// codes for tokens, and fetches a normalized Identity from the provider's
// profile endpoint. Google and GitHub enforce verified emails; Facebook's
// Graph API has no verification flag, so its email claim is passed through
// as-is.
//
//	provider, err := oauth.NewGoogleProvider(oauth.GoogleConfig{
//		ClientID:     cfg.Auth.Google.ClientID,
//		ClientSecret: cfg.Auth.Google.ClientSecret,
//		RedirectURL:  "https://example.com/auth/google/callback",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	url := provider.AuthCodeURL("random-state")
//	token, err := provider.Exchange(ctx, code, "")
//	identity, err := provider.FetchIdentity(ctx, token)
//
// Use WithHTTPClient to point providers at httptest servers in tests.
// The redirect-based handshake itself (state cookie, callback wiring,
// identity resolution) lives in the middlewares package.
package oauth
