package middlewares_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danilupion/turbo/internal"
	"github.com/danilupion/turbo/pkg/cookie"
)

// testSecret is long enough for the cookie manager's signing minimum.
const testSecret = "0123456789abcdef0123456789abcdef"

type testContext struct {
	response http.ResponseWriter
	request  *http.Request
	values   map[any]any
	cookies  *cookie.Manager
	written  bool
}

func newTestContext(w http.ResponseWriter, r *http.Request) *testContext {
	return &testContext{
		response: w,
		request:  r,
		values:   make(map[any]any),
		cookies:  cookie.New(cookie.WithSecret(testSecret)),
	}
}

func (c *testContext) Request() *http.Request        { return c.request }
func (c *testContext) Response() http.ResponseWriter { return c.response }
func (c *testContext) Context() context.Context      { return c.request.Context() }
func (c *testContext) Param(name string) string      { return "" }

func (c *testContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *testContext) QueryDefault(name, defaultValue string) string {
	v := c.request.URL.Query().Get(name)
	if v == "" {
		return defaultValue
	}
	return v
}

func (c *testContext) Form(name string) string { return c.request.FormValue(name) }

func (c *testContext) Deadline() (time.Time, bool) { return c.request.Context().Deadline() }
func (c *testContext) Done() <-chan struct{}       { return c.request.Context().Done() }
func (c *testContext) Err() error                  { return c.request.Context().Err() }
func (c *testContext) Value(key any) any           { return c.request.Context().Value(key) }

func (c *testContext) Header(name string) string    { return c.request.Header.Get(name) }
func (c *testContext) SetHeader(name, value string) { c.response.Header().Set(name, value) }

func (c *testContext) Body() (map[string]any, error) {
	if c.request.Body == nil {
		return map[string]any{}, nil
	}
	raw, err := io.ReadAll(c.request.Body)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return map[string]any{}, nil
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	return body, nil
}

func (c *testContext) BindJSON(v any) error {
	return json.NewDecoder(c.request.Body).Decode(v)
}

func (c *testContext) JSON(code int, v any) error {
	c.written = true
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *testContext) String(code int, s string) error {
	c.written = true
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(s))
	return err
}

func (c *testContext) NoContent(code int) error {
	c.written = true
	c.response.WriteHeader(code)
	return nil
}

func (c *testContext) Redirect(code int, url string) error {
	c.written = true
	http.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *testContext) Can(internal.Permission) bool      { return false }
func (c *testContext) Written() bool                     { return c.written }
func (c *testContext) Logger() *slog.Logger              { return slog.Default() }
func (c *testContext) LogDebug(msg string, attrs ...any) {}
func (c *testContext) LogInfo(msg string, attrs ...any)  {}
func (c *testContext) LogWarn(msg string, attrs ...any)  {}
func (c *testContext) LogError(msg string, attrs ...any) {}

func (c *testContext) Set(key, value any) {
	c.values[key] = value
	// Also store in the request context for context extractors.
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *testContext) Get(key any) any {
	return c.values[key]
}

func (c *testContext) Cookie(name string) (string, error) {
	return c.cookies.Get(c.request, name)
}

func (c *testContext) SetCookie(name, value string, maxAge int) {
	c.cookies.Set(c.response, name, value, maxAge)
}

func (c *testContext) DeleteCookie(name string) {
	c.cookies.Delete(c.response, name)
}

func (c *testContext) CookieSigned(name string) (string, error) {
	return c.cookies.GetSigned(c.request, name)
}

func (c *testContext) SetCookieSigned(name, value string, maxAge int) error {
	return c.cookies.SetSigned(c.response, name, value, maxAge)
}

func (c *testContext) ResponseWriter() *internal.ResponseWriter { return nil }

var _ internal.Context = (*testContext)(nil)
