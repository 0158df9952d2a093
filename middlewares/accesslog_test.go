package middlewares_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sonica/middlewares"
	"github.com/dmitrymomot/sonica/pkg/logger"
)

func captureAccessLog(t *testing.T, handler http.Handler, req *http.Request) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, logger.Config{Level: "info", JSON: true})
	rec := httptest.NewRecorder()
	middlewares.AccessLog(log)(handler).ServeHTTP(rec, req)

	require.NotZero(t, buf.Len(), "expected an access log line")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestAccessLog(t *testing.T) {
	t.Parallel()

	t.Run("logs method path status and duration", func(t *testing.T) {
		t.Parallel()

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte("done"))
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/items", nil)

		entry := captureAccessLog(t, handler, req)
		require.Equal(t, "request", entry["msg"])
		require.Equal(t, "POST", entry["method"])
		require.Equal(t, "/api/v1/items", entry["path"])
		require.EqualValues(t, http.StatusCreated, entry["status_code"])
		require.Contains(t, entry, "duration_ms")
	})

	t.Run("logs failures too", func(t *testing.T) {
		t.Parallel()

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "broken", http.StatusBadGateway)
		})
		entry := captureAccessLog(t, handler, httptest.NewRequest(http.MethodGet, "/x", nil))
		require.EqualValues(t, http.StatusBadGateway, entry["status_code"])
	})

	t.Run("implicit 200 when handler writes nothing", func(t *testing.T) {
		t.Parallel()

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
		entry := captureAccessLog(t, handler, httptest.NewRequest(http.MethodGet, "/", nil))
		require.EqualValues(t, http.StatusOK, entry["status_code"])
	})

	t.Run("prefers forwarded-for over socket peer", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:52214"
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
		entry := captureAccessLog(t, handler, req)
		require.Equal(t, "203.0.113.7", entry["client_ip"])
	})
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	t.Run("socket peer without forwarding", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.4:1234"
		require.Equal(t, "192.0.2.4", middlewares.ClientIP(req))
	})

	t.Run("first forwarded entry wins", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", " 198.51.100.9 ,203.0.113.2")
		require.Equal(t, "198.51.100.9", middlewares.ClientIP(req))
	})
}
