package middlewares

import (
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
)

// AccessLog records one line per completed HTTP exchange, success or
// failure: method, path, status, duration in milliseconds, and resolved
// client address. The status is observed through the response writer
// wrapper; the body is never buffered. Place it outside the catch-all so
// the duration spans the full handling time.
func AccessLog(log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := WrapResponseWriter(w)
			start := time.Now()

			defer func() {
				if rw.Hijacked() {
					// Upgraded connections have no HTTP status to report.
					return
				}
				log.InfoContext(r.Context(), "request",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Int("status_code", rw.Status()),
					slog.Float64("duration_ms", float64(time.Since(start).Microseconds())/1000),
					slog.String("client_ip", ClientIP(r)),
				)
			}()

			next.ServeHTTP(rw, r)
		})
	}
}

// ClientIP resolves the client address, preferring the first entry of
// X-Forwarded-For over the raw socket peer when running behind a proxy.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
