// ABOUTME: HTTP request logging middleware.
// ABOUTME: Logs method, path, status and duration, and optionally records them in the store.

package logging

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/2389/pocketms/internal/store"
)

// Recorder persists request logs. *store.Store implements it.
type Recorder interface {
	LogRequest(log *store.RequestLog) error
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.statusCode = http.StatusOK
		rw.written = true
	}
	return rw.ResponseWriter.Write(b)
}

// Middleware logs every request except health checks. When rec is non-nil
// the entry is also recorded; wrap rec in a Background to keep the write off
// the request path.
func Middleware(logger *slog.Logger, rec Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/healthz" {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)

			ip := r.RemoteAddr
			if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
				ip = strings.TrimSpace(strings.Split(forwarded, ",")[0])
			}

			entry := &store.RequestLog{
				Resource:   ResourceFromPath(r.URL.Path),
				Method:     r.Method,
				Path:       r.URL.Path,
				StatusCode: wrapped.statusCode,
				DurationMs: int(duration.Milliseconds()),
				IPAddress:  ip,
				UserAgent:  r.Header.Get("User-Agent"),
			}

			level := slog.LevelInfo
			if entry.StatusCode >= http.StatusInternalServerError {
				level = slog.LevelError
			} else if entry.StatusCode >= http.StatusBadRequest {
				level = slog.LevelWarn
			}
			logger.Log(r.Context(), level, "request",
				"method", entry.Method,
				"path", entry.Path,
				"status", entry.StatusCode,
				"duration", duration,
				"ip", ip,
			)

			if rec != nil {
				if err := rec.LogRequest(entry); err != nil {
					logger.Warn("failed to record request", "path", entry.Path, "error", err)
				}
			}
		})
	}
}
