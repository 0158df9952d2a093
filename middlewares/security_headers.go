package middlewares

import (
	"maps"
	"net/http"
)

// defaultSecurityHeaders is the OWASP-recommended set for JSON APIs.
var defaultSecurityHeaders = map[string]string{
	"X-Frame-Options":         "DENY",
	"X-Content-Type-Options":  "nosniff",
	"Referrer-Policy":         "strict-origin-when-cross-origin",
	"Permissions-Policy":      "geolocation=(), camera=(), microphone=()",
	"X-XSS-Protection":        "0", // disable the legacy filter, CSP supersedes it
	"Cache-Control":           "no-store",
	"Content-Security-Policy": "default-src 'self'",
}

// DefaultHSTS is the Strict-Transport-Security value applied by
// WithStrictTransportSecurity in production-like environments.
const DefaultHSTS = "max-age=31536000; includeSubDomains"

// SecurityHeadersOption configures the security headers middleware.
type SecurityHeadersOption func(map[string]string)

// WithSecurityHeader overrides a header. An empty value removes the header
// from the set entirely.
func WithSecurityHeader(name, value string) SecurityHeadersOption {
	return func(headers map[string]string) {
		if value == "" {
			delete(headers, name)
			return
		}
		headers[name] = value
	}
}

// WithContentSecurityPolicy replaces the default CSP. The default
// "default-src 'self'" suits APIs; frontends will need to loosen it.
func WithContentSecurityPolicy(policy string) SecurityHeadersOption {
	return WithSecurityHeader("Content-Security-Policy", policy)
}

// WithStrictTransportSecurity enables HSTS. Only add it when serving over
// TLS in a production-like environment; on plain HTTP the header is
// meaningless and can lock dev setups out.
func WithStrictTransportSecurity(value string) SecurityHeadersOption {
	return WithSecurityHeader("Strict-Transport-Security", value)
}

// SecurityHeaders appends a fixed set of protective headers to every HTTP
// response, including error responses. Headers are set on the header map
// before the handler runs so they accompany whatever status the handler or
// the error pipeline produces; hijacked exchanges never send them.
func SecurityHeaders(opts ...SecurityHeadersOption) func(http.Handler) http.Handler {
	headers := maps.Clone(defaultSecurityHeaders)
	for _, opt := range opts {
		opt(headers)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for name, value := range headers {
				w.Header().Set(name, value)
			}
			next.ServeHTTP(w, r)
		})
	}
}
