// Package turbo provides the request-dispatch and authentication core for
// JSON web backends: a sealed chi-backed router, a validation pipeline, a
// closed HTTP error taxonomy, bearer-token authentication, and delegated
// login against external identity providers.
//
// # Quick Start
//
// Create a router with turbo.NewRouter(), declare routes, and hand the
// sealed handler to any HTTP server:
//
//	r := turbo.NewRouter(
//	    turbo.WithLogger(logger.New()),
//	    turbo.WithCookieSecret(cfg.Auth.JWT.Secret),
//	)
//	r.Use(middlewares.RequestID(), middlewares.Recover())
//
//	r.POST("/users", createUser, turbo.Validate(
//	    validator.Field("email", validator.Required(), validator.Email()),
//	    validator.Field("password", validator.Required(), validator.MinLength(8)),
//	))
//
//	http.ListenAndServe(":8080", r.Build())
//
// Build seals the router: unmatched paths respond 501 Not Implemented,
// matched paths with a wrong method respond 405, and any registration
// afterwards panics with ErrRouterFrozen.
//
// # Handlers and errors
//
// Handlers return errors instead of writing failure responses. Whatever a
// handler returns is normalized into the closed taxonomy in pkg/httperr:
//
//	r.GET("/users/{id}", func(c turbo.Context) error {
//	    user, err := repo.Find(c, c.Param("id"))
//	    if err != nil {
//	        return err // database unique violations map to 409, the rest to 500
//	    }
//	    if user == nil {
//	        return httperr.NotFound()
//	    }
//	    return c.JSON(http.StatusOK, user)
//	})
//
// # Authentication
//
// The middlewares package provides bearer-token auth, a user resolver, and
// an OAuth login flow:
//
//	svc, _ := jwt.NewFromString(cfg.Auth.JWT.Secret)
//	r.GET("/me", showProfile,
//	    middlewares.TokenAuth(svc),
//	    middlewares.ResolveUser(userFromClaims),
//	)
package turbo
