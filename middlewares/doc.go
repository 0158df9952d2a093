// Package middlewares contains the scaffold's HTTP middleware chain.
//
// All wrappers are standard func(http.Handler) http.Handler and compose in
// a fixed order at startup, outermost first:
//
//	RequestID → SecurityHeaders → AccessLog → Recover → router
//
// [RequestID] binds a correlation identifier to the request context,
// [SecurityHeaders] adds protective response headers, [AccessLog] records
// one line per completed HTTP exchange, and [Recover] is the last line of
// defense that converts anything unhandled into a uniform 500 response.
//
// The wrappers observe outbound status and headers through [ResponseWriter]
// without buffering the body, so streamed responses flow through untouched
// and hijacked (upgraded) connections are left alone entirely.
package middlewares
