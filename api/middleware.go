package api

import (
	"log/slog"
	"net/http"
	"time"
)

// middleware wraps an http.Handler with additional behavior.
type middleware func(http.Handler) http.Handler

// chain applies middlewares to a handler in reverse order, so the first
// middleware in the list is the outermost.
func chain(h http.Handler, middlewares ...middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// loggingMiddleware logs each request with method, path and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

// recoveryMiddleware recovers from panics in handlers and returns a
// 500 response instead of crashing the server.
func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic in HTTP handler",
					"panic", rec,
					"method", r.Method,
					"path", r.URL.Path,
				)
				writeError(w, http.StatusInternalServerError,
					"internal_error", "an internal error occurred")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
