package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// BindError is a request-shape validation failure: the request was
// malformed before the handler's logic ran. The responder collapses it to a
// fixed 422 body; Fields stay server-side for logs.
type BindError struct {
	Fields map[string]string
}

func (e *BindError) Error() string {
	return fmt.Sprintf("request validation failed: %d invalid field(s)", len(e.Fields))
}

// AsBindError extracts a BindError from an error chain, nil otherwise.
func AsBindError(err error) *BindError {
	var e *BindError
	if errors.As(err, &e) {
		return e
	}
	return nil
}

func newBindError(field, problem string) *BindError {
	return &BindError{Fields: map[string]string{field: problem}}
}

// DecodeJSON parses the request body into v. Unknown fields and malformed
// JSON are validation failures, not server errors.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return newBindError("body", err.Error())
	}
	return nil
}

// QueryInt parses an optional integer query parameter, returning def when
// the parameter is absent.
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, newBindError(name, fmt.Sprintf("invalid integer %q", raw))
	}
	return n, nil
}

// QueryBool parses an optional boolean query parameter.
func QueryBool(r *http.Request, name string, def bool) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, newBindError(name, fmt.Sprintf("invalid boolean %q", raw))
	}
	return b, nil
}
