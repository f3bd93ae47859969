package httperr

import (
	"errors"
	"net/http"
)

// Message table for the closed set of fault kinds. Statuses outside this
// table are not constructible; every kind carries exactly one status and
// its canonical message.
var messages = map[int]string{
	http.StatusBadRequest:           "Bad Request",
	http.StatusUnauthorized:         "Unauthorized",
	http.StatusPaymentRequired:      "Payment Required",
	http.StatusForbidden:            "Forbidden",
	http.StatusNotFound:             "Not Found",
	http.StatusMethodNotAllowed:     "Method Not Allowed",
	http.StatusConflict:             "Conflict",
	http.StatusUnsupportedMediaType: "Unsupported Media Type",
	http.StatusInternalServerError:  "Internal Server Error",
	http.StatusNotImplemented:       "Not Implemented",
}

// Error is a fault bound to an HTTP status code. Instances are immutable
// data carriers created through the kind constructors below and raised via
// the normal error return channel.
type Error struct {
	cause  error
	fields map[string][]string
	status int
}

// Error returns the canonical message for the fault's status code.
func (e *Error) Error() string {
	return messages[e.status]
}

// Status returns the HTTP status code the fault is bound to.
func (e *Error) Status() int {
	return e.status
}

// Fields returns the field-keyed validation messages attached to a
// bad-request fault. Nil for every other kind.
func (e *Error) Fields() map[string][]string {
	return e.fields
}

// Unwrap returns the underlying cause attached to an internal fault.
// Nil for every other kind.
func (e *Error) Unwrap() error {
	return e.cause
}

// BadRequest creates a 400 fault carrying a field→messages validation map.
func BadRequest(fields map[string][]string) *Error {
	return &Error{status: http.StatusBadRequest, fields: fields}
}

// Unauthorized creates a 401 fault.
func Unauthorized() *Error {
	return &Error{status: http.StatusUnauthorized}
}

// PaymentRequired creates a 402 fault.
func PaymentRequired() *Error {
	return &Error{status: http.StatusPaymentRequired}
}

// Forbidden creates a 403 fault.
func Forbidden() *Error {
	return &Error{status: http.StatusForbidden}
}

// NotFound creates a 404 fault.
func NotFound() *Error {
	return &Error{status: http.StatusNotFound}
}

// MethodNotAllowed creates a 405 fault.
func MethodNotAllowed() *Error {
	return &Error{status: http.StatusMethodNotAllowed}
}

// Conflict creates a 409 fault.
func Conflict() *Error {
	return &Error{status: http.StatusConflict}
}

// UnsupportedMediaType creates a 415 fault.
func UnsupportedMediaType() *Error {
	return &Error{status: http.StatusUnsupportedMediaType}
}

// Internal creates a 500 fault wrapping the original cause. The cause is
// for server-side diagnostics only and is never rendered to clients.
func Internal(cause error) *Error {
	return &Error{status: http.StatusInternalServerError, cause: cause}
}

// NotImplemented creates a 501 fault.
func NotImplemented() *Error {
	return &Error{status: http.StatusNotImplemented}
}

// Is reports whether err is (or wraps) a taxonomy fault.
func Is(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// As extracts the taxonomy fault from err if present.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
