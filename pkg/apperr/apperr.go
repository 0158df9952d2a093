package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a domain failure carrying an HTTP status hint and structured
// diagnostic context. The domain layer raises these without knowing anything
// about HTTP rendering; the server's error responder maps them to the wire.
type Error struct {
	// Err is the underlying cause (for logging, never exposed to clients).
	Err error

	// Detail is the human-readable message returned to the client.
	Detail string

	// Extra holds structured context for diagnostic logging.
	// It is never serialized into a response body.
	Extra map[string]any

	// Status is the HTTP status code the responder maps this error to.
	Status int
}

func (e *Error) Error() string {
	return e.Detail
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) StatusCode() int {
	return e.Status
}

// Option configures an Error at construction.
type Option func(*Error)

// WithStatus overrides the kind's default status code.
func WithStatus(status int) Option {
	return func(e *Error) {
		e.Status = status
	}
}

// WithExtra merges diagnostic context into the error. Values appear in log
// output only.
func WithExtra(key string, value any) Option {
	return func(e *Error) {
		if e.Extra == nil {
			e.Extra = make(map[string]any)
		}
		e.Extra[key] = value
	}
}

// WithError attaches the underlying cause for errors.Is/As chains and logs.
func WithError(err error) Option {
	return func(e *Error) {
		e.Err = err
	}
}

// New creates a generic domain failure. Defaults to 500 with a neutral
// message so an unqualified failure never leaks specifics.
func New(detail string, opts ...Option) *Error {
	e := &Error{
		Status: http.StatusInternalServerError,
		Detail: detail,
	}
	if e.Detail == "" {
		e.Detail = "An unexpected error occurred."
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NotFound creates a 404 failure for a named resource.
// The detail is synthesized as "<resource> not found".
func NotFound(resource string, opts ...Option) *Error {
	if resource == "" {
		resource = "Resource"
	}
	e := &Error{
		Status: http.StatusNotFound,
		Detail: fmt.Sprintf("%s not found", resource),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Conflict creates a 409 failure.
func Conflict(detail string, opts ...Option) *Error {
	return newWithDefault(http.StatusConflict, detail, "Conflicting state.", opts)
}

// Validation creates a 422 domain validation failure.
// Distinct from request-shape validation, which the binder handles.
func Validation(detail string, opts ...Option) *Error {
	return newWithDefault(http.StatusUnprocessableEntity, detail, "Validation failed.", opts)
}

// PermissionDenied creates a 403 failure.
func PermissionDenied(detail string, opts ...Option) *Error {
	return newWithDefault(http.StatusForbidden, detail, "Permission denied.", opts)
}

// Authentication creates a 401 failure.
func Authentication(detail string, opts ...Option) *Error {
	return newWithDefault(http.StatusUnauthorized, detail, "Authentication required.", opts)
}

func newWithDefault(status int, detail, fallback string, opts []Option) *Error {
	if detail == "" {
		detail = fallback
	}
	e := &Error{
		Status: status,
		Detail: detail,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// As extracts the domain error from an error chain.
// Returns nil if the chain contains no *Error.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// Is reports whether the error chain contains a domain error.
func Is(err error) bool {
	return As(err) != nil
}
