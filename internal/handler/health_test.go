package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/maxviazov/bookstore-service/internal/handler"
)

// stubPinger implements handler.Pinger for health endpoints.
type stubPinger struct{ err error }

func (s stubPinger) Ping(ctx context.Context) error { return s.err }

func newHealthEngine(p handler.Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// nil service: only health routes are exercised here
	handler.Register(r, p, nil)
	return r
}

func TestHealth(t *testing.T) {
	down := errors.New("db down")
	cases := []struct {
		name   string
		method string
		path   string
		err    error
		want   int
	}{
		{"api ready", http.MethodGet, "/api/v1/health/ready", nil, http.StatusOK},
		{"api ready unavailable", http.MethodGet, "/api/v1/health/ready", down, http.StatusServiceUnavailable},
		{"api live ignores store", http.MethodGet, "/api/v1/health/live", down, http.StatusOK},
		{"root live", http.MethodGet, "/live", nil, http.StatusOK},
		{"root ready", http.MethodGet, "/ready", nil, http.StatusOK},
		{"root ready unavailable", http.MethodGet, "/ready", down, http.StatusServiceUnavailable},
		{"unknown path", http.MethodGet, "/no-such", nil, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newHealthEngine(stubPinger{err: tc.err}).ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, tc.want, w.Code, w.Body.String())
		})
	}
}

func TestReadiness_MethodNotAllowed(t *testing.T) {
	w := httptest.NewRecorder()
	newHealthEngine(stubPinger{}).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/health/ready", nil))
	// gin answers 404 unless HandleMethodNotAllowed is enabled
	if w.Code != http.StatusNotFound && w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 404 or 405, got %d", w.Code)
	}
}
