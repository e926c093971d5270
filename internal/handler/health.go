package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/coursekeep/coursekeep/internal/handler/dto"
)

// readyTimeout bounds the dependency checks run by Readyz.
const readyTimeout = 5 * time.Second

// HealthChecker defines an interface for checking service health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler manages health check endpoints.
type HealthHandler struct {
	db     HealthChecker
	logger *slog.Logger
}

// NewHealthHandler creates a new HealthHandler.
// Pass nil for db if it is not yet initialized.
func NewHealthHandler(db HealthChecker, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: logger,
	}
}

// Healthz is a liveness probe endpoint. It never checks dependencies.
//
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// Readyz is a readiness probe endpoint.
// It returns 200 only if the database answers a ping.
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	checks := make(map[string]string, 1)
	healthy := true

	switch {
	case h.db == nil:
		checks["database"] = "not configured"
		healthy = false
	default:
		if err := h.db.Ping(ctx); err != nil {
			h.logger.Warn("readiness check failed",
				slog.String("check", "database"),
				slog.String("error", err.Error()),
			)
			checks["database"] = "unavailable"
			healthy = false
		} else {
			checks["database"] = "ok"
		}
	}

	if !healthy {
		writeJSON(w, http.StatusServiceUnavailable, dto.HealthResponse{Status: "unhealthy", Checks: checks})
		return
	}
	writeJSON(w, http.StatusOK, dto.HealthResponse{Status: "ok", Checks: checks})
}
