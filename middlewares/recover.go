package middlewares

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/danilupion/turbo/internal"
)

// DefaultStackSize bounds the captured stack trace in bytes.
const DefaultStackSize = 4096

// PanicError wraps a value recovered from a panicking handler so it can
// travel the normal error path. The responder maps it to an internal
// fault; the panic value never reaches the client.
type PanicError struct {
	Value any
	Stack []byte // nil when stack capture is disabled
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// IsPanicError reports whether err carries a recovered panic.
func IsPanicError(err error) bool {
	var pe *PanicError
	return errors.As(err, &pe)
}

// AsPanicError unwraps the PanicError from err, if any.
func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	ok := errors.As(err, &pe)
	return pe, ok
}

type recoverConfig struct {
	stackSize    int
	captureStack bool
}

// RecoverOption adjusts panic recovery behavior.
type RecoverOption func(*recoverConfig)

// WithRecoverStackSize sets the stack trace capture limit in bytes.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *recoverConfig) {
		cfg.stackSize = size
	}
}

// WithRecoverDisablePrintStack turns off stack capture and logging.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *recoverConfig) {
		cfg.captureStack = false
	}
}

// Recover intercepts panics raised by downstream handlers, logs them,
// and converts them into a PanicError returned through the middleware
// chain.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := recoverConfig{stackSize: DefaultStackSize, captureStack: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				pe := &PanicError{Value: r}
				if cfg.captureStack {
					buf := make([]byte, cfg.stackSize)
					pe.Stack = buf[:runtime.Stack(buf, false)]
					c.LogError("panic recovered", "panic", r, "stack", string(pe.Stack))
				} else {
					c.LogError("panic recovered", "panic", r)
				}
				err = pe
			}()

			return next(c)
		}
	}
}
