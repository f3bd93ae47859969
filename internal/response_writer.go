package internal

import (
	"bufio"
	"net"
	"net/http"
	"sync"
)

// ResponseWriter decorates http.ResponseWriter with status, size, and
// commit tracking. The error responder relies on Written to decide
// whether a failed handler already sent bytes.
type ResponseWriter struct {
	http.ResponseWriter
	mu      sync.Mutex
	status  int
	size    int64
	written bool
}

// NewResponseWriter wraps w with tracking state.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

// markWritten records the first commit and reports whether this call
// was the one that committed.
func (w *ResponseWriter) markWritten(status int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.written {
		return false
	}
	w.written = true
	w.status = status
	return true
}

// WriteHeader commits the response status. Later calls are ignored.
func (w *ResponseWriter) WriteHeader(code int) {
	if w.markWritten(code) {
		w.ResponseWriter.WriteHeader(code)
	}
}

// Write sends body bytes, committing the pending status on first use.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	if w.markWritten(w.status) {
		w.ResponseWriter.WriteHeader(w.status)
	}

	n, err := w.ResponseWriter.Write(b)
	w.size += int64(n)
	return n, err
}

// Status returns the committed (or pending) HTTP status code.
func (w *ResponseWriter) Status() int {
	return w.status
}

// Size returns the number of body bytes written so far.
func (w *ResponseWriter) Size() int64 {
	return w.size
}

// Written reports whether the response has been committed.
func (w *ResponseWriter) Written() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// Flush implements http.Flusher when the underlying writer supports it.
func (w *ResponseWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Hijack implements http.Hijacker when the underlying writer supports it.
func (w *ResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := w.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

// Unwrap returns the underlying http.ResponseWriter.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
