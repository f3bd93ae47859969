package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"
	facebookOAuth "golang.org/x/oauth2/facebook"
)

const (
	// FacebookProviderName is the identifier for the Facebook provider.
	FacebookProviderName = "facebook"
	facebookProfileURL   = "https://graph.facebook.com/v19.0/me"
)

// facebookProfileFields are the Graph API fields requested for the
// profile.
const facebookProfileFields = "id,name,email,picture"

// FacebookDefaultScopes returns the default scopes for Facebook login.
func FacebookDefaultScopes() []string {
	return []string{"email", "public_profile"}
}

// FacebookProvider implements Provider for Facebook.
type FacebookProvider struct {
	config     *oauth2.Config
	httpClient *http.Client
}

// NewFacebookProvider creates a Facebook provider. Returns an error if
// ClientID or ClientSecret is empty.
func NewFacebookProvider(cfg FacebookConfig, opts ...Option) (*FacebookProvider, error) {
	if cfg.ClientID == "" {
		return nil, ErrMissingClientID
	}
	if cfg.ClientSecret == "" {
		return nil, ErrMissingClientSecret
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = FacebookDefaultScopes()
	}

	return &FacebookProvider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint:     facebookOAuth.Endpoint,
		},
		httpClient: o.httpClient,
	}, nil
}

// Name returns the provider identifier.
func (p *FacebookProvider) Name() string {
	return FacebookProviderName
}

// AuthCodeURL generates the authorization URL.
func (p *FacebookProvider) AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string {
	return p.config.AuthCodeURL(state, opts...)
}

// Exchange trades an authorization code for tokens.
func (p *FacebookProvider) Exchange(ctx context.Context, code, redirectURI string) (*oauth2.Token, error) {
	cfg := p.config
	if redirectURI != "" {
		cfg = overrideRedirect(p.config, redirectURI)
	}
	ctx = contextWithHTTPClient(ctx, p.httpClient)
	return cfg.Exchange(ctx, code)
}

// FetchIdentity retrieves the user's profile from the Graph API.
// Facebook does not expose an email verification flag; the email claim is
// empty when the account has none or the scope was not granted.
func (p *FacebookProvider) FetchIdentity(ctx context.Context, token *oauth2.Token) (*Identity, error) {
	ctx = contextWithHTTPClient(ctx, p.httpClient)
	client := p.config.Client(ctx, token)

	resp, err := client.Get(facebookProfileURL + "?fields=" + url.QueryEscape(facebookProfileFields))
	if err != nil {
		return nil, errors.Join(ErrFetchFailed, fmt.Errorf("fetch profile: %w", err))
	}
	if resp == nil {
		return nil, errors.Join(ErrNilResponse, errors.New("unexpected nil response from facebook profile endpoint"))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Join(ErrRequestFailed, fmt.Errorf("profile request failed: status=%d", resp.StatusCode))
	}

	var profile facebookProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, errors.Join(ErrDecodeFailed, fmt.Errorf("decode profile: %w", err))
	}

	return &Identity{
		Provider: FacebookProviderName,
		ID:       profile.ID,
		Email:    profile.Email,
		Name:     profile.Name,
		Picture:  profile.Picture.Data.URL,
	}, nil
}

// facebookProfile is the response shape of the Graph API profile request.
type facebookProfile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	} `json:"picture"`
}
