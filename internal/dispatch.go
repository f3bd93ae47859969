package internal

import (
	"errors"
	"mime"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/danilupion/turbo/pkg/httperr"
	"github.com/danilupion/turbo/pkg/validator"
)

// BodyField is the field key used for errors about the request body itself,
// as opposed to a named field inside it.
const BodyField = "body"

// pgUniqueViolation is the SQLSTATE code for a unique constraint violation.
const pgUniqueViolation = "23505"

// Validate returns a middleware that checks the JSON request body against
// the given rules before the handler runs.
//
// The body is decoded once and cached on the context, so handlers observe
// the same data the rules were evaluated against. A failing rule set stops
// dispatch and yields a 400 response carrying the field error map. A body
// that is not valid JSON fails the same way, keyed under BodyField. A body
// declared as anything other than JSON fails with 415.
func Validate(rules ...validator.Rule) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(c Context) error {
			if ct := c.Header("Content-Type"); ct != "" {
				mediaType, _, err := mime.ParseMediaType(ct)
				if err != nil || mediaType != "application/json" {
					return httperr.UnsupportedMediaType()
				}
			}

			body, err := c.Body()
			if err != nil {
				return httperr.BadRequest(map[string][]string{
					BodyField: {"must be a JSON object"},
				})
			}

			if errs := validator.Apply(body, rules...); errs != nil {
				return httperr.BadRequest(errs.Map())
			}

			return next(c)
		}
	}
}

// MapError normalizes an arbitrary handler error into the closed response
// taxonomy. The dispatch is deterministic: a taxonomy error anywhere in the
// chain passes through unchanged, a unique constraint violation from the
// database becomes a conflict, and everything else is an internal error
// wrapping the cause.
func MapError(err error) *httperr.Error {
	if httpErr, ok := httperr.As(err); ok {
		return httpErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return httperr.Conflict()
	}

	return httperr.Internal(err)
}

// RespondError is the terminal error responder. It maps err through the
// taxonomy and writes exactly one response: the field error map as JSON for
// a 400, the status message as plain text otherwise. Internal causes are
// logged and never leave the server.
func RespondError(c Context, err error, production bool) {
	httpErr := MapError(err)
	status := httpErr.Status()

	switch {
	case status >= http.StatusInternalServerError:
		c.LogError("request failed",
			"status", status,
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"error", err,
		)
	case !production:
		c.LogDebug("request rejected",
			"status", status,
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"error", httpErr,
		)
	}

	if status == http.StatusBadRequest && httpErr.Fields() != nil {
		if writeErr := c.JSON(status, httpErr.Fields()); writeErr != nil {
			c.LogError("error response write failed", "error", writeErr)
		}
		return
	}

	if writeErr := c.String(status, httpErr.Error()); writeErr != nil {
		c.LogError("error response write failed", "error", writeErr)
	}
}
