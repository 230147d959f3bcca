package profiling

import (
	"net/http"
	"strconv"
	"time"
)

// Middleware adds request timing headers to HTTP handlers when
// profiling is enabled.
type Middleware struct {
	enableProfiling bool
}

// NewMiddleware creates a new profiling middleware.
func NewMiddleware(enableProfiling bool) *Middleware {
	return &Middleware{enableProfiling: enableProfiling}
}

// ProfiledHandler wraps an HTTP handler with request timing.
func (m *Middleware) ProfiledHandler(name string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.enableProfiling {
			handler.ServeHTTP(w, r)
			return
		}

		startTime := time.Now()

		w.Header().Set("X-Handler-Name", name)

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		handler.ServeHTTP(wrapped, r)

		duration := time.Since(startTime)
		wrapped.Header().Set("X-Duration-Ms",
			strconv.FormatFloat(float64(duration.Nanoseconds())/1e6, 'f', 3, 64))
		wrapped.Header().Set("X-Status-Code", strconv.Itoa(wrapped.statusCode))
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
