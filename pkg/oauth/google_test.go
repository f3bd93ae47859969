package oauth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/danilupion/turbo/pkg/oauth"
)

var _ oauth.Provider = (*oauth.GoogleProvider)(nil)

func TestNewGoogleProvider(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()
		p, err := oauth.NewGoogleProvider(oauth.GoogleConfig{
			ClientID:     "test-id",
			ClientSecret: "test-secret",
		})
		require.NoError(t, err)
		require.NotNil(t, p)
		require.Equal(t, "google", p.Name())
	})

	t.Run("missing client ID", func(t *testing.T) {
		t.Parallel()
		p, err := oauth.NewGoogleProvider(oauth.GoogleConfig{ClientSecret: "test-secret"})
		require.ErrorIs(t, err, oauth.ErrMissingClientID)
		require.Nil(t, p)
	})

	t.Run("missing client secret", func(t *testing.T) {
		t.Parallel()
		p, err := oauth.NewGoogleProvider(oauth.GoogleConfig{ClientID: "test-id"})
		require.ErrorIs(t, err, oauth.ErrMissingClientSecret)
		require.Nil(t, p)
	})

	t.Run("default scopes applied", func(t *testing.T) {
		t.Parallel()
		p, err := oauth.NewGoogleProvider(oauth.GoogleConfig{
			ClientID:     "test-id",
			ClientSecret: "test-secret",
		})
		require.NoError(t, err)

		u := p.AuthCodeURL("state")
		require.Contains(t, u, "scope=")
		require.Contains(t, u, "userinfo.email")
		require.Contains(t, u, "userinfo.profile")
	})

	t.Run("custom scopes", func(t *testing.T) {
		t.Parallel()
		p, err := oauth.NewGoogleProvider(oauth.GoogleConfig{
			ClientID:     "test-id",
			ClientSecret: "test-secret",
			Scopes:       []string{"openid"},
		})
		require.NoError(t, err)

		u := p.AuthCodeURL("state")
		require.Contains(t, u, "openid")
		require.NotContains(t, u, "userinfo.email")
	})
}

func TestGoogleProvider_AuthCodeURL(t *testing.T) {
	t.Parallel()

	p, err := oauth.NewGoogleProvider(oauth.GoogleConfig{
		ClientID:     "test-id",
		ClientSecret: "test-secret",
		RedirectURL:  "https://example.com/callback",
	})
	require.NoError(t, err)

	u := p.AuthCodeURL("test-state")
	require.Contains(t, u, "state=test-state")
	require.Contains(t, u, "redirect_uri=")
	require.Contains(t, u, "example.com")
}

func TestGoogleProvider_Exchange(t *testing.T) {
	t.Parallel()

	newProvider := func(t *testing.T, handler http.Handler) *oauth.GoogleProvider {
		t.Helper()
		p, err := oauth.NewGoogleProvider(
			oauth.GoogleConfig{ClientID: "test-id", ClientSecret: "test-secret"},
			oauth.WithHTTPClient(newRewriteClient(handler, "google", "googleapis")),
		)
		require.NoError(t, err)
		return p
	}

	t.Run("successful exchange", func(t *testing.T) {
		t.Parallel()
		p := newProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"access_token": "test-access-token",
				"token_type":   "Bearer",
				"expires_in":   3600,
			})
		}))

		token, err := p.Exchange(context.Background(), "test-code", "")
		require.NoError(t, err)
		require.Equal(t, "test-access-token", token.AccessToken)
	})

	t.Run("redirect URI override reaches provider", func(t *testing.T) {
		t.Parallel()
		var receivedRedirectURI string
		p := newProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			receivedRedirectURI = r.FormValue("redirect_uri")
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"access_token": "t",
				"token_type":   "Bearer",
				"expires_in":   3600,
			})
		}))

		_, err := p.Exchange(context.Background(), "test-code", "https://example.com/override")
		require.NoError(t, err)
		require.Equal(t, "https://example.com/override", receivedRedirectURI)
	})

	t.Run("invalid code", func(t *testing.T) {
		t.Parallel()
		p := newProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant"})
		}))

		_, err := p.Exchange(context.Background(), "bad-code", "")
		require.Error(t, err)
	})
}

func TestGoogleProvider_FetchIdentity(t *testing.T) {
	t.Parallel()

	newProvider := func(t *testing.T, handler http.Handler) *oauth.GoogleProvider {
		t.Helper()
		p, err := oauth.NewGoogleProvider(
			oauth.GoogleConfig{ClientID: "test-id", ClientSecret: "test-secret"},
			oauth.WithHTTPClient(newRewriteClient(handler, "google", "googleapis")),
		)
		require.NoError(t, err)
		return p
	}

	token := &oauth2.Token{AccessToken: "test-token"}

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		p := newProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":             "12345",
				"email":          "user@example.com",
				"name":           "Test User",
				"picture":        "https://example.com/photo.jpg",
				"verified_email": true,
			})
		}))

		identity, err := p.FetchIdentity(context.Background(), token)
		require.NoError(t, err)
		require.Equal(t, "google", identity.Provider)
		require.Equal(t, "12345", identity.ID)
		require.Equal(t, "user@example.com", identity.Email)
		require.Equal(t, "Test User", identity.Name)
		require.Equal(t, "https://example.com/photo.jpg", identity.Picture)
	})

	t.Run("unverified email", func(t *testing.T) {
		t.Parallel()
		p := newProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":             "12345",
				"email":          "user@example.com",
				"verified_email": false,
			})
		}))

		identity, err := p.FetchIdentity(context.Background(), token)
		require.ErrorIs(t, err, oauth.ErrEmailNotVerified)
		require.Nil(t, identity)
	})

	t.Run("non-OK status", func(t *testing.T) {
		t.Parallel()
		p := newProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))

		identity, err := p.FetchIdentity(context.Background(), token)
		require.ErrorIs(t, err, oauth.ErrRequestFailed)
		require.Nil(t, identity)
	})

	t.Run("bad JSON", func(t *testing.T) {
		t.Parallel()
		p := newProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("not-json"))
		}))

		identity, err := p.FetchIdentity(context.Background(), token)
		require.ErrorIs(t, err, oauth.ErrDecodeFailed)
		require.Nil(t, identity)
	})
}
