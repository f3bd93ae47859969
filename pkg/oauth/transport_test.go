package oauth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
)

// rewriteTransport intercepts requests whose host matches one of the given
// substrings and routes them to a local handler instead of the network.
type rewriteTransport struct {
	base    http.RoundTripper
	handler http.Handler
	hosts   []string
}

func newRewriteClient(handler http.Handler, hosts ...string) *http.Client {
	return &http.Client{Transport: &rewriteTransport{
		base:    http.DefaultTransport,
		handler: handler,
		hosts:   hosts,
	}}
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	for _, h := range t.hosts {
		if strings.Contains(req.URL.Host, h) {
			recorder := httptest.NewRecorder()
			t.handler.ServeHTTP(recorder, req)
			return recorder.Result(), nil
		}
	}
	return t.base.RoundTrip(req)
}
