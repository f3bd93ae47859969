package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/danilupion/turbo/pkg/cookie"
	"github.com/danilupion/turbo/pkg/logger"
)

// Permission represents a named permission string.
type Permission string

// RolePermissions maps role names to their granted permissions.
type RolePermissions = map[string][]Permission

// RoleExtractorFunc extracts the current user's role from the request context.
type RoleExtractorFunc = func(Context) string

// Context provides request/response access and helper methods.
// It also implements context.Context by delegating to the underlying request context.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the underlying http.ResponseWriter.
	Response() http.ResponseWriter

	// Context returns the request's context.Context.
	Context() context.Context

	// Param returns the URL parameter value by name.
	// Returns empty string if the parameter doesn't exist.
	Param(name string) string

	// Query returns the query parameter value by name.
	// Returns empty string if the parameter doesn't exist.
	Query(name string) string

	// QueryDefault returns the query parameter value or a default.
	QueryDefault(name, defaultValue string) string

	// Form returns the form value by name, parsing the form on first
	// access. Returns empty string if the field doesn't exist.
	Form(name string) string

	// Header returns the request header value by name.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// Body returns the request body decoded as a JSON object.
	// The body is read once and cached for the lifetime of the request,
	// so validation middleware and handlers observe the same data.
	// Returns an empty map for requests without a body.
	Body() (map[string]any, error)

	// BindJSON decodes the cached request body into v.
	BindJSON(v any) error

	// JSON writes a JSON response with the given status code.
	JSON(code int, v any) error

	// String writes a plain text response with the given status code.
	String(code int, s string) error

	// NoContent writes a response with no body.
	NoContent(code int) error

	// Redirect redirects to the given URL with the given status code.
	Redirect(code int, url string) error

	// Can returns true if the current user's role grants the given permission.
	// Returns false if roles are not configured or the role has no matching
	// permission. The role is extracted lazily and cached per request.
	Can(permission Permission) bool

	// Written returns true if a response has already been written.
	Written() bool

	// Logger returns the logger for advanced usage.
	Logger() *slog.Logger

	// LogDebug logs a debug message with optional attributes.
	LogDebug(msg string, attrs ...any)

	// LogInfo logs an info message with optional attributes.
	LogInfo(msg string, attrs ...any)

	// LogWarn logs a warning message with optional attributes.
	LogWarn(msg string, attrs ...any)

	// LogError logs an error message with optional attributes.
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	// The value can be retrieved using Get or from c.Context().Value(key).
	Set(key any, value any)

	// Get retrieves a value from the request context.
	// Returns nil if the key is not found.
	Get(key any) any

	// Cookie returns a plain cookie value.
	Cookie(name string) (string, error)

	// SetCookie sets a plain cookie.
	SetCookie(name, value string, maxAge int)

	// DeleteCookie removes a cookie.
	DeleteCookie(name string)

	// CookieSigned returns a signed cookie value.
	// Returns cookie.ErrNoSecret if no secret is configured.
	CookieSigned(name string) (string, error)

	// SetCookieSigned sets a signed cookie.
	// Returns cookie.ErrNoSecret if no secret is configured.
	SetCookieSigned(name, value string, maxAge int) error

	// ResponseWriter returns the underlying ResponseWriter for advanced usage.
	ResponseWriter() *ResponseWriter
}

// requestContext implements the Context interface.
type requestContext struct {
	response       http.ResponseWriter
	request        *http.Request
	responseWriter *ResponseWriter
	logger         *slog.Logger
	cookies        *cookie.Manager

	permissions   RolePermissions
	roleExtractor RoleExtractorFunc
	role          string
	roleResolved  bool

	body       map[string]any
	bodyRaw    []byte
	bodyErr    error
	bodyLoaded bool
}

func newContext(w http.ResponseWriter, r *http.Request, log *slog.Logger, cookies *cookie.Manager, permissions RolePermissions, roleExtractor RoleExtractorFunc) *requestContext {
	rw := NewResponseWriter(w)
	if log == nil {
		log = logger.NewNope()
	}
	return &requestContext{
		response:       rw,
		request:        r,
		responseWriter: rw,
		logger:         log,
		cookies:        cookies,
		permissions:    permissions,
		roleExtractor:  roleExtractor,
	}
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.response
}

func (c *requestContext) Context() context.Context {
	return c.request.Context()
}

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) QueryDefault(name, defaultValue string) string {
	if v := c.request.URL.Query().Get(name); v != "" {
		return v
	}
	return defaultValue
}

func (c *requestContext) Form(name string) string {
	return c.request.FormValue(name)
}

// context.Context implementation delegates to the request context.

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

// loadBody reads and caches the raw request body.
// The body is replaced with a re-readable copy so later consumers
// (including BindJSON) are not affected by the read.
func (c *requestContext) loadBody() error {
	if c.bodyLoaded {
		return c.bodyErr
	}
	c.bodyLoaded = true

	if c.request.Body == nil {
		c.body = map[string]any{}
		return nil
	}

	raw, err := io.ReadAll(c.request.Body)
	_ = c.request.Body.Close()
	if err != nil {
		c.bodyErr = err
		return c.bodyErr
	}
	c.request.Body = io.NopCloser(bytes.NewReader(raw))
	c.bodyRaw = raw

	if len(bytes.TrimSpace(raw)) == 0 {
		c.body = map[string]any{}
		return nil
	}

	var parsed map[string]any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		c.bodyErr = err
		return c.bodyErr
	}
	c.body = parsed
	return nil
}

func (c *requestContext) Body() (map[string]any, error) {
	if err := c.loadBody(); err != nil {
		return nil, err
	}
	return c.body, nil
}

func (c *requestContext) BindJSON(v any) error {
	if err := c.loadBody(); err != nil {
		return err
	}
	if len(bytes.TrimSpace(c.bodyRaw)) == 0 {
		return io.EOF
	}
	return json.Unmarshal(c.bodyRaw, v)
}

func (c *requestContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(s))
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *requestContext) Can(permission Permission) bool {
	if c.permissions == nil || c.roleExtractor == nil {
		return false
	}
	if !c.roleResolved {
		c.role = c.roleExtractor(c)
		c.roleResolved = true
	}
	granted, ok := c.permissions[c.role]
	if !ok {
		return false
	}
	return slices.Contains(granted, permission)
}

func (c *requestContext) Written() bool {
	return c.responseWriter.Written()
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Cookie(name string) (string, error) {
	return c.cookies.Get(c.request, name)
}

func (c *requestContext) SetCookie(name, value string, maxAge int) {
	c.cookies.Set(c.response, name, value, maxAge)
}

func (c *requestContext) DeleteCookie(name string) {
	c.cookies.Delete(c.response, name)
}

func (c *requestContext) CookieSigned(name string) (string, error) {
	return c.cookies.GetSigned(c.request, name)
}

func (c *requestContext) SetCookieSigned(name, value string, maxAge int) error {
	return c.cookies.SetSigned(c.response, name, value, maxAge)
}

func (c *requestContext) ResponseWriter() *ResponseWriter {
	return c.responseWriter
}
