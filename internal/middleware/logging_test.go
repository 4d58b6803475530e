package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"storecounter/internal/logger"
)

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		status int
		prefix string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusBadRequest, "WARNING"},
		{http.StatusServiceUnavailable, "ERROR"},
	}

	for _, tt := range tests {
		buf := &bytes.Buffer{}
		h := LoggingMiddleware(logger.NewWriter(buf), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history", nil))

		assert.Equal(t, tt.status, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
		assert.Contains(t, buf.String(), tt.prefix)
		assert.Contains(t, buf.String(), "GET /api/history")
	}
}

func TestLoggingMiddleware_KeepsIncomingID(t *testing.T) {
	h := LoggingMiddleware(logger.NewNop(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc", rec.Header().Get(RequestIDHeader))
}
