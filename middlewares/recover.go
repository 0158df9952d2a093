package middlewares

import (
	"io"
	"log/slog"
	"net/http"
	"runtime"
)

// DefaultStackSize caps the stack trace captured on panic.
const DefaultStackSize = 4096

// RecoverConfig configures the catch-all middleware.
type RecoverConfig struct {
	// Respond writes the uniform 500 body. The server wires its error
	// responder here so every failure class shares one wire shape.
	Respond func(w http.ResponseWriter, r *http.Request)

	StackSize         int
	DisablePrintStack bool
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverRespond sets the function that writes the 500 response.
func WithRecoverRespond(fn func(w http.ResponseWriter, r *http.Request)) RecoverOption {
	return func(cfg *RecoverConfig) {
		if fn != nil {
			cfg.Respond = fn
		}
	}
}

// WithRecoverStackSize caps the captured stack trace.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		if size > 0 {
			cfg.StackSize = size
		}
	}
}

// WithRecoverDisablePrintStack disables stack traces in logs.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.DisablePrintStack = true
	}
}

// Recover is the last line of defense: it contains any panic escaping the
// router or inner middleware and answers with a generic 500, leaking
// nothing about the failure. The panic is logged server-side with a guard
// that swallows logging failures rather than letting them mask the
// response. Responses already partially written, and hijacked connections,
// are left untouched.
func Recover(log *slog.Logger, opts ...RecoverOption) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	cfg := &RecoverConfig{
		StackSize: DefaultStackSize,
		Respond: func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"detail":"Internal server error","status_code":500,"request_id":""}`))
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := WrapResponseWriter(w)

			defer func() {
				p := recover()
				if p == nil || p == http.ErrAbortHandler {
					if p != nil {
						panic(p)
					}
					return
				}

				func() {
					// The logger itself may be what is broken; a logging
					// failure must not mask the 500 response.
					defer func() { _ = recover() }()
					if cfg.DisablePrintStack {
						log.ErrorContext(r.Context(), "panic recovered", slog.Any("panic", p))
					} else {
						stack := make([]byte, cfg.StackSize)
						stack = stack[:runtime.Stack(stack, false)]
						log.ErrorContext(r.Context(), "panic recovered",
							slog.Any("panic", p),
							slog.String("stack", string(stack)),
						)
					}
				}()

				if rw.Written() || rw.Hijacked() {
					// Too late to repair the response; the log line above
					// is all we can do.
					return
				}
				cfg.Respond(rw, r)
			}()

			next.ServeHTTP(rw, r)
		})
	}
}
