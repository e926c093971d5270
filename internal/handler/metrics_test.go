package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/coursekeep/coursekeep/internal/metrics"
)

func TestMetricsHandler(t *testing.T) {
	recorder := metrics.NewInMemory()
	recorder.IncUserCreated()
	recorder.IncCourseCreated()
	recorder.IncCourseCreated()
	recorder.IncOwnershipDenied()
	recorder.IncAuthFailure(metrics.AuthReasonBadSecret)
	recorder.ObserveAuthDuration(500 * time.Millisecond)

	h := NewMetricsHandler(recorder)
	rec := httptest.NewRecorder()
	h.Metrics(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, body, "coursekeep_users_created_total 1\n")
	assert.Contains(t, body, "coursekeep_courses_created_total 2\n")
	assert.Contains(t, body, "coursekeep_course_ownership_denied_total 1\n")
	assert.Contains(t, body, `coursekeep_auth_failures_total{reason="bad_secret"} 1`)
	assert.Contains(t, body, `coursekeep_auth_failures_total{reason="unknown_identity"} 0`)
	assert.Contains(t, body, "coursekeep_auth_duration_seconds_sum 0.500000\n")
}

func TestMetricsHandler_NoSnapshotter(t *testing.T) {
	h := NewMetricsHandler(nil)
	rec := httptest.NewRecorder()
	h.Metrics(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
