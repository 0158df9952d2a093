package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/sonica/pkg/apperr"
)

// ErrorResponse is the single wire shape returned for every failure class:
// domain errors, routing failures, request validation, and the catch-all.
type ErrorResponse struct {
	Detail     string `json:"detail"`
	StatusCode int    `json:"status_code"`
	RequestID  string `json:"request_id"`
}

// HandlerFunc is an HTTP handler that signals failure by returning an
// error. The responder maps the error onto the uniform wire shape.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Wrap adapts a HandlerFunc to http.HandlerFunc through the error response
// pipeline. Failure origins map deterministically:
//
//   - domain error (apperr) → its status hint and detail, logged at warning
//   - request-shape validation (BindError) → fixed 422, field detail logged only
//   - anything else → fixed 500, nothing about the cause reaches the client
func Wrap(log *slog.Logger, h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		if domainErr := apperr.As(err); domainErr != nil {
			attrs := []any{
				slog.String("error_type", "domain_error"),
				slog.Int("status_code", domainErr.Status),
				slog.String("detail", domainErr.Detail),
			}
			for k, v := range domainErr.Extra {
				attrs = append(attrs, slog.Any(k, v))
			}
			log.WarnContext(r.Context(), "domain error", attrs...)
			writeError(w, r, domainErr.Status, domainErr.Detail)
			return
		}

		if bindErr := AsBindError(err); bindErr != nil {
			log.WarnContext(r.Context(), "request validation failed",
				slog.Any("errors", bindErr.Fields),
			)
			writeError(w, r, http.StatusUnprocessableEntity, "Request validation failed")
			return
		}

		// Unclassified failure: log everything server-side, return nothing
		// about it. A broken logger must not mask the 500.
		func() {
			defer func() { _ = recover() }()
			log.ErrorContext(r.Context(), "unhandled error",
				slog.String("error", err.Error()),
				slog.String("path", r.URL.Path),
			)
		}()
		writeError(w, r, http.StatusInternalServerError, "Internal server error")
	}
}

// writeError emits the uniform error body. The request_id field mirrors the
// inbound correlation header verbatim, empty when the caller sent none.
func writeError(w http.ResponseWriter, r *http.Request, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Detail:     detail,
		StatusCode: status,
		RequestID:  inboundRequestID(r),
	})
}

func inboundRequestID(r *http.Request) string {
	return r.Header.Get("X-Request-Id")
}
