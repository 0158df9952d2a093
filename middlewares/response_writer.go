package middlewares

import (
	"bufio"
	"net"
	"net/http"
)

// ResponseWriter wraps http.ResponseWriter to observe the outbound status
// and byte count without buffering or altering the body. It forwards
// Flusher and Hijacker so streamed responses and protocol upgrades pass
// through unchanged.
type ResponseWriter struct {
	http.ResponseWriter
	status   int
	size     int64
	written  bool
	hijacked bool
}

// WrapResponseWriter wraps w, reusing an existing wrapper so stacked
// middleware shares one view of the response state.
func WrapResponseWriter(w http.ResponseWriter) *ResponseWriter {
	if rw, ok := w.(*ResponseWriter); ok {
		return rw
	}
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

func (w *ResponseWriter) WriteHeader(code int) {
	if w.written {
		return
	}
	w.written = true
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.written = true
		w.ResponseWriter.WriteHeader(w.status)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += int64(n)
	return n, err
}

// Status returns the response status code (200 until a write happens).
func (w *ResponseWriter) Status() int {
	return w.status
}

// Size returns the number of body bytes written so far.
func (w *ResponseWriter) Size() int64 {
	return w.size
}

// Written reports whether any part of the response has left the server.
func (w *ResponseWriter) Written() bool {
	return w.written
}

// Hijacked reports whether the connection was taken over (e.g. WebSocket
// upgrade). A hijacked exchange has no observable status.
func (w *ResponseWriter) Hijacked() bool {
	return w.hijacked
}

// Flush implements http.Flusher for streamed responses.
func (w *ResponseWriter) Flush() {
	if !w.written {
		w.written = true
		w.ResponseWriter.WriteHeader(w.status)
	}
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Hijack implements http.Hijacker for protocol upgrades.
func (w *ResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, http.ErrNotSupported
	}
	conn, rw, err := hijacker.Hijack()
	if err == nil {
		w.hijacked = true
	}
	return conn, rw, err
}

// Unwrap returns the underlying ResponseWriter for http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
