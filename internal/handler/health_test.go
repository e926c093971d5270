package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coursekeep/coursekeep/internal/handler/dto"
)

// mockHealthChecker is a mock implementation of HealthChecker for testing.
type mockHealthChecker struct {
	err error
}

func (m *mockHealthChecker) Ping(ctx context.Context) error {
	return m.err
}

func TestHealthHandler_Healthz(t *testing.T) {
	h := NewHealthHandler(nil, discardLogger())

	rec := httptest.NewRecorder()
	h.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody[dto.HealthResponse](t, rec).Status)
}

func TestHealthHandler_Readyz(t *testing.T) {
	tests := []struct {
		name       string
		db         HealthChecker
		wantStatus int
		wantCheck  string
	}{
		{name: "healthy", db: &mockHealthChecker{}, wantStatus: http.StatusOK, wantCheck: "ok"},
		{name: "database down", db: &mockHealthChecker{err: errors.New("dial tcp: refused")}, wantStatus: http.StatusServiceUnavailable, wantCheck: "unavailable"},
		{name: "not configured", db: nil, wantStatus: http.StatusServiceUnavailable, wantCheck: "not configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.db, discardLogger())

			rec := httptest.NewRecorder()
			h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeBody[dto.HealthResponse](t, rec)
			assert.Equal(t, tt.wantCheck, resp.Checks["database"])
			assert.NotContains(t, rec.Body.String(), "refused", "driver errors stay in the logs")
		})
	}
}
