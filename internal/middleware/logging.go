package middleware

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"storecounter/internal/logger"
)

// RequestIDHeader carries the id assigned to every request.
const RequestIDHeader = "X-Request-ID"

// statusRecorder remembers the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Hijack lets websocket upgrades pass through the middleware.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return hijacker.Hijack()
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// LoggingMiddleware tags each request with an id and logs method, path, status and duration.
// Server errors go to the error log, client errors to the warning log.
func LoggingMiddleware(logger *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		short := id
		if len(short) > 8 {
			short = short[:8]
		}
		elapsed := time.Since(start).Round(time.Millisecond)
		switch {
		case rec.status >= 500:
			logger.Error("[%s] %s %s -> %d (%s)", short, r.Method, r.URL.Path, rec.status, elapsed)
		case rec.status >= 400:
			logger.Warning("[%s] %s %s -> %d (%s)", short, r.Method, r.URL.Path, rec.status, elapsed)
		default:
			logger.Info("[%s] %s %s -> %d (%s)", short, r.Method, r.URL.Path, rec.status, elapsed)
		}
	})
}
