// Package server wires the scaffold together: the middleware chain, the
// error response pipeline, the health and version endpoints, and the HTTP
// runtime with graceful shutdown.
//
// [NewRouter] builds the chi router with the fixed middleware order
// (request ID → security headers → access log → catch-all → routes).
// Handlers are [HandlerFunc] values returning errors; [Wrap] maps every
// failure onto the single [ErrorResponse] wire shape. [Run] serves the
// router and drains it on SIGINT/SIGTERM, running startup and shutdown
// hooks around the listener's lifetime.
package server
