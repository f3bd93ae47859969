package turbo_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/danilupion/turbo"
	"github.com/danilupion/turbo/middlewares"
	"github.com/danilupion/turbo/pkg/httperr"
	"github.com/danilupion/turbo/pkg/jwt"
	"github.com/danilupion/turbo/pkg/validator"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// TestEndToEnd drives the public API the way an application would: sealed
// router, validation, token auth, and the error taxonomy, all through real
// HTTP round trips.
func TestEndToEnd(t *testing.T) {
	t.Parallel()

	svc, err := jwt.NewFromString(testSecret)
	require.NoError(t, err)

	r := turbo.NewRouter(turbo.WithCookieSecret(testSecret))
	r.Use(middlewares.RequestID(), middlewares.Recover())

	r.POST("/login", func(c turbo.Context) error {
		var body struct {
			Email string `json:"email"`
		}
		if err := c.BindJSON(&body); err != nil {
			return err
		}
		token, err := middlewares.IssueToken(svc, "u-"+body.Email, "member", time.Hour)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, map[string]string{"token": token})
	}, turbo.Validate(
		validator.Field("email", validator.Required(), validator.Email()),
	))

	r.GET("/me", func(c turbo.Context) error {
		claims := middlewares.GetTokenClaims(c)
		return c.JSON(http.StatusOK, map[string]string{"id": claims.ID, "role": claims.Role})
	}, middlewares.TokenAuth(svc))

	r.GET("/missing", func(turbo.Context) error {
		return httperr.NotFound()
	})

	srv := httptest.NewServer(r.Build())
	defer srv.Close()

	t.Run("login then authenticated request", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/login", "application/json",
			strings.NewReader(`{"email":"ada@example.com"}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var login struct {
			Token string `json:"token"`
		}
		require.NoError(t, jsonDecode(resp, &login))
		require.NotEmpty(t, login.Token)

		req, err := http.NewRequest(http.MethodGet, srv.URL+"/me", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+login.Token)

		me, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer me.Body.Close()
		require.Equal(t, http.StatusOK, me.StatusCode)

		var profile struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		}
		require.NoError(t, jsonDecode(me, &profile))
		require.Equal(t, "u-ada@example.com", profile.ID)
		require.Equal(t, "member", profile.Role)
	})

	t.Run("invalid body is rejected with field map", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/login", "application/json",
			strings.NewReader(`{"email":"not-an-email"}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/me")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("undeclared route is not implemented", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/nope")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotImplemented, resp.StatusCode)
	})

	t.Run("handler taxonomy error reaches the client", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/missing")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func jsonDecode(resp *http.Response, v any) error {
	return json.NewDecoder(resp.Body).Decode(v)
}
