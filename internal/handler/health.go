package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"socialhub_backend/internal/httputil"
	"socialhub_backend/internal/logger"
)

// ReadinessCheck reports whether a dependency is reachable.
type ReadinessCheck func(ctx context.Context) error

type HealthHandler struct {
	version     string
	environment string
	ready       ReadinessCheck
	log         *logrus.Entry
}

func NewHealthHandler(version, environment string, ready ReadinessCheck) *HealthHandler {
	return &HealthHandler{
		version:     version,
		environment: environment,
		ready:       ready,
		log:         logger.For("HealthHandler"),
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"status":      "ok",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"version":     h.version,
		"environment": h.environment,
	})
}

// Ready handles GET /health/ready
// Answers 503 while the database is unreachable.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.ready(ctx); err != nil {
		h.log.WithError(err).Warn("Readiness check failed")
		httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]any{
			"ready": false,
			"error": "Database connection failed",
		})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"ready": true})
}
