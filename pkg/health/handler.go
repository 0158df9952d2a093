package health

import (
	"encoding/json"
	"net/http"
)

// LivenessHandler returns a handler that always reports the process alive.
// It performs no checks; if it can respond at all, the answer is 200.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": StatusAlive})
	}
}

// ReadinessHandler returns a handler that runs the given conditions and
// reports aggregate readiness: 200 when all pass, 503 otherwise, with
// per-check detail in the body either way.
func ReadinessHandler(checks Checks, opts ...Option) http.HandlerFunc {
	cfg := newConfig(opts...)

	return func(w http.ResponseWriter, r *http.Request) {
		resp := runChecks(r.Context(), checks, cfg)

		status := http.StatusOK
		if resp.Status == StatusNotReady {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, resp)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
