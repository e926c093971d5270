package handler

import (
	"fmt"
	"net/http"

	"github.com/coursekeep/coursekeep/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// authFailureReasons fixes the output order of the labelled failure counters.
var authFailureReasons = []string{
	metrics.AuthReasonMissingCredentials,
	metrics.AuthReasonUnknownIdentity,
	metrics.AuthReasonBadSecret,
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "coursekeep_users_created_total %d\n", snap.UsersCreated)

	writeMetric(w, "coursekeep_courses_created_total %d\n", snap.CoursesCreated)
	writeMetric(w, "coursekeep_courses_updated_total %d\n", snap.CoursesUpdated)
	writeMetric(w, "coursekeep_courses_deleted_total %d\n", snap.CoursesDeleted)
	writeMetric(w, "coursekeep_course_ownership_denied_total %d\n", snap.OwnershipDenied)

	writeMetric(w, "coursekeep_auth_success_total %d\n", snap.AuthSuccess)
	for _, reason := range authFailureReasons {
		writeMetric(w, "coursekeep_auth_failures_total{reason=%q} %d\n", reason, snap.AuthFailures[reason])
	}
	writeMetric(w, "coursekeep_auth_duration_seconds_count %d\n", snap.AuthDurationCount)
	writeMetric(w, "coursekeep_auth_duration_seconds_sum %.6f\n", float64(snap.AuthDurationTotalNs)/1e9)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
