package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sonica/middlewares"
)

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	noop := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	t.Run("default set on every response", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		middlewares.SecurityHeaders()(noop).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		want := map[string]string{
			"X-Frame-Options":         "DENY",
			"X-Content-Type-Options":  "nosniff",
			"Referrer-Policy":         "strict-origin-when-cross-origin",
			"Permissions-Policy":      "geolocation=(), camera=(), microphone=()",
			"X-XSS-Protection":        "0",
			"Cache-Control":           "no-store",
			"Content-Security-Policy": "default-src 'self'",
		}
		for name, value := range want {
			require.Equal(t, value, rec.Header().Get(name), "header %s", name)
		}
		require.Empty(t, rec.Header().Get("Strict-Transport-Security"))
	})

	t.Run("present on error responses too", func(t *testing.T) {
		t.Parallel()

		failing := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusInternalServerError)
		})

		rec := httptest.NewRecorder()
		middlewares.SecurityHeaders()(failing).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	})

	t.Run("override replaces a default", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		mw := middlewares.SecurityHeaders(
			middlewares.WithSecurityHeader("X-Frame-Options", "SAMEORIGIN"),
		)
		mw(noop).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, "SAMEORIGIN", rec.Header().Get("X-Frame-Options"))
	})

	t.Run("empty override removes the header", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		mw := middlewares.SecurityHeaders(
			middlewares.WithSecurityHeader("Cache-Control", ""),
		)
		mw(noop).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Empty(t, rec.Header().Values("Cache-Control"))
		require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	})

	t.Run("HSTS opt-in for production", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		mw := middlewares.SecurityHeaders(
			middlewares.WithStrictTransportSecurity(middlewares.DefaultHSTS),
		)
		mw(noop).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, "max-age=31536000; includeSubDomains", rec.Header().Get("Strict-Transport-Security"))
	})

	t.Run("custom CSP", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		mw := middlewares.SecurityHeaders(
			middlewares.WithContentSecurityPolicy("default-src 'self'; img-src *"),
		)
		mw(noop).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, "default-src 'self'; img-src *", rec.Header().Get("Content-Security-Policy"))
	})
}
