// Package middleware provides HTTP middleware for request logging and rate limiting.
package middleware

import (
	"context"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

const loggerKey ContextKey = "logger"

// RequestLogger logs each request with its method, path, status and duration,
// and stores a request-scoped entry in the context for handlers.
func RequestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			entry := log.WithFields(logrus.Fields{
				"request_id": chimw.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"remote":     r.RemoteAddr,
			})

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), loggerKey, entry)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			entry = entry.WithFields(logrus.Fields{
				"status":   status,
				"bytes":    ww.BytesWritten(),
				"duration": time.Since(start).String(),
			})
			if status >= http.StatusInternalServerError {
				entry.Warn("request completed")
				return
			}
			entry.Debug("request completed")
		})
	}
}

// Logger returns the request-scoped logger, or fallback when none is set.
func Logger(r *http.Request, fallback logrus.FieldLogger) logrus.FieldLogger {
	if entry, ok := r.Context().Value(loggerKey).(*logrus.Entry); ok {
		return entry
	}
	return fallback
}
