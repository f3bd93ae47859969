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

var _ oauth.Provider = (*oauth.FacebookProvider)(nil)

func TestNewFacebookProvider(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()
		p, err := oauth.NewFacebookProvider(oauth.FacebookConfig{
			ClientID:     "test-id",
			ClientSecret: "test-secret",
		})
		require.NoError(t, err)
		require.Equal(t, "facebook", p.Name())
	})

	t.Run("missing credentials", func(t *testing.T) {
		t.Parallel()
		_, err := oauth.NewFacebookProvider(oauth.FacebookConfig{ClientSecret: "s"})
		require.ErrorIs(t, err, oauth.ErrMissingClientID)

		_, err = oauth.NewFacebookProvider(oauth.FacebookConfig{ClientID: "i"})
		require.ErrorIs(t, err, oauth.ErrMissingClientSecret)
	})

	t.Run("default scopes applied", func(t *testing.T) {
		t.Parallel()
		p, err := oauth.NewFacebookProvider(oauth.FacebookConfig{
			ClientID:     "test-id",
			ClientSecret: "test-secret",
		})
		require.NoError(t, err)

		u := p.AuthCodeURL("state")
		require.Contains(t, u, "email")
		require.Contains(t, u, "public_profile")
	})
}

func TestFacebookProvider_FetchIdentity(t *testing.T) {
	t.Parallel()

	newProvider := func(t *testing.T, handler http.Handler) *oauth.FacebookProvider {
		t.Helper()
		p, err := oauth.NewFacebookProvider(
			oauth.FacebookConfig{ClientID: "test-id", ClientSecret: "test-secret"},
			oauth.WithHTTPClient(newRewriteClient(handler, "facebook")),
		)
		require.NoError(t, err)
		return p
	}

	token := &oauth2.Token{AccessToken: "test-token"}

	t.Run("success requests profile fields", func(t *testing.T) {
		t.Parallel()
		var requestedFields string
		p := newProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestedFields = r.URL.Query().Get("fields")
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":    "fb-1",
				"name":  "Test User",
				"email": "user@example.com",
				"picture": map[string]any{
					"data": map[string]any{"url": "https://example.com/p.jpg"},
				},
			})
		}))

		identity, err := p.FetchIdentity(context.Background(), token)
		require.NoError(t, err)
		require.Equal(t, "id,name,email,picture", requestedFields)
		require.Equal(t, "facebook", identity.Provider)
		require.Equal(t, "fb-1", identity.ID)
		require.Equal(t, "user@example.com", identity.Email)
		require.Equal(t, "Test User", identity.Name)
		require.Equal(t, "https://example.com/p.jpg", identity.Picture)
	})

	t.Run("missing email claim is allowed", func(t *testing.T) {
		t.Parallel()
		p := newProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "fb-2", "name": "No Email"})
		}))

		identity, err := p.FetchIdentity(context.Background(), token)
		require.NoError(t, err)
		require.Empty(t, identity.Email)
	})

	t.Run("non-OK status", func(t *testing.T) {
		t.Parallel()
		p := newProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))

		identity, err := p.FetchIdentity(context.Background(), token)
		require.ErrorIs(t, err, oauth.ErrRequestFailed)
		require.Nil(t, identity)
	})
}
