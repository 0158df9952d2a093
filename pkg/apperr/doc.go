// Package apperr defines the domain error taxonomy for the scaffold.
//
// Every domain failure is an [Error] carrying an HTTP status hint, a
// client-safe detail message, and an open-ended map of diagnostic context.
// The domain layer raises these without importing anything HTTP-specific;
// the server's error responder maps them onto the uniform error body.
//
// # Kinds
//
//   - [New] — generic domain failure (500)
//   - [NotFound] — "<resource> not found" (404)
//   - [Conflict] — conflicting state (409)
//   - [Validation] — domain validation failure (422)
//   - [PermissionDenied] — caller lacks permission (403)
//   - [Authentication] — missing or invalid credentials (401)
//
// Both the status and the detail can be overridden at construction via
// options:
//
//	return apperr.NotFound("Order", apperr.WithExtra("order_id", id))
//	return apperr.Conflict("Email already registered")
//
// # Diagnostic context
//
// Values attached with [WithExtra] surface in server-side logs only. The
// responder never serializes them into a response, so it is safe to attach
// internal identifiers and state.
package apperr
