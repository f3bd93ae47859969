package middlewares_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/danilupion/turbo/internal"
	"github.com/danilupion/turbo/middlewares"
	"github.com/danilupion/turbo/pkg/httperr"
)

type account struct {
	ID    string
	Email string
}

func claimsToAccount(users map[string]*account) func(context.Context, *middlewares.Claims) (*account, error) {
	return func(_ context.Context, claims *middlewares.Claims) (*account, error) {
		return users[claims.ID], nil
	}
}

func authenticatedContext(t *testing.T, id, role string) *testContext {
	t.Helper()
	svc := newTokenService(t)

	c := newTestContext(httptest.NewRecorder(), requestWithToken(issueToken(t, svc, id, role)))
	attach := middlewares.TokenAuth(svc)(func(internal.Context) error { return nil })
	require.NoError(t, attach(c))
	return c
}

func TestResolveUser(t *testing.T) {
	t.Parallel()

	users := map[string]*account{
		"u1": {ID: "u1", Email: "u1@example.com"},
	}

	t.Run("resolves and attaches user", func(t *testing.T) {
		t.Parallel()

		handler := middlewares.ResolveUser(claimsToAccount(users))(func(c internal.Context) error {
			user := middlewares.GetUser[account](c)
			require.NotNil(t, user)
			require.Equal(t, "u1@example.com", user.Email)
			return nil
		})

		require.NoError(t, handler(authenticatedContext(t, "u1", "admin")))
	})

	t.Run("no auth data is unauthorized", func(t *testing.T) {
		t.Parallel()

		handler := middlewares.ResolveUser(claimsToAccount(users))(func(internal.Context) error {
			t.Fatal("handler must not run")
			return nil
		})

		c := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		err := handler(c)
		httpErr, ok := httperr.As(err)
		require.True(t, ok)
		require.Equal(t, http.StatusUnauthorized, httpErr.Status())
	})

	t.Run("unknown user is unauthorized", func(t *testing.T) {
		t.Parallel()

		handler := middlewares.ResolveUser(claimsToAccount(users))(func(internal.Context) error {
			t.Fatal("handler must not run")
			return nil
		})

		err := handler(authenticatedContext(t, "ghost", "admin"))
		httpErr, ok := httperr.As(err)
		require.True(t, ok)
		require.Equal(t, http.StatusUnauthorized, httpErr.Status())
	})

	t.Run("factory error propagates", func(t *testing.T) {
		t.Parallel()

		dbErr := errors.New("connection reset")
		handler := middlewares.ResolveUser(func(context.Context, *middlewares.Claims) (*account, error) {
			return nil, dbErr
		})(func(internal.Context) error {
			t.Fatal("handler must not run")
			return nil
		})

		err := handler(authenticatedContext(t, "u1", "admin"))
		require.ErrorIs(t, err, dbErr)
	})
}

func TestResolveUserOptional(t *testing.T) {
	t.Parallel()

	users := map[string]*account{
		"u1": {ID: "u1"},
	}

	t.Run("no auth data falls through", func(t *testing.T) {
		t.Parallel()

		ran := false
		handler := middlewares.ResolveUser(claimsToAccount(users), middlewares.OptionalUser())(func(c internal.Context) error {
			ran = true
			require.Nil(t, middlewares.GetUser[account](c))
			return nil
		})

		c := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, handler(c))
		require.True(t, ran)
	})

	t.Run("unknown user falls through", func(t *testing.T) {
		t.Parallel()

		ran := false
		handler := middlewares.ResolveUser(claimsToAccount(users), middlewares.OptionalUser())(func(c internal.Context) error {
			ran = true
			require.Nil(t, middlewares.GetUser[account](c))
			return nil
		})

		require.NoError(t, handler(authenticatedContext(t, "ghost", "admin")))
		require.True(t, ran)
	})

	t.Run("factory error still propagates", func(t *testing.T) {
		t.Parallel()

		dbErr := errors.New("timeout")
		handler := middlewares.ResolveUser(func(context.Context, *middlewares.Claims) (*account, error) {
			return nil, dbErr
		}, middlewares.OptionalUser())(func(internal.Context) error {
			t.Fatal("handler must not run")
			return nil
		})

		err := handler(authenticatedContext(t, "u1", "admin"))
		require.ErrorIs(t, err, dbErr)
	})
}

func TestResolveUserCustomFields(t *testing.T) {
	t.Parallel()

	svc := newTokenService(t)
	c := newTestContext(httptest.NewRecorder(), requestWithToken(issueToken(t, svc, "u1", "admin")))
	attach := middlewares.TokenAuth(svc, middlewares.WithAuthField("account"))(func(internal.Context) error { return nil })
	require.NoError(t, attach(c))

	handler := middlewares.ResolveUser(
		func(_ context.Context, claims *middlewares.Claims) (*account, error) {
			return &account{ID: claims.ID}, nil
		},
		middlewares.WithUserSourceField("account"),
		middlewares.WithUserDestField("profile"),
	)(func(c internal.Context) error {
		require.Nil(t, middlewares.GetUser[account](c))
		user := middlewares.GetUserField[account](c, "profile")
		require.NotNil(t, user)
		require.Equal(t, "u1", user.ID)
		return nil
	})

	require.NoError(t, handler(c))
}
