package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/GardenKeeper_Go/internal/logger"
)

// ReadinessTimeout bounds each dependency check
const ReadinessTimeout = 2 * time.Second

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// HealthChecker defines the interface for components that can report health
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// CheckFunc adapts a function to HealthChecker
type CheckFunc func(ctx context.Context) error

// CheckHealth calls f
func (f CheckFunc) CheckHealth(ctx context.Context) error {
	return f(ctx)
}

// HandleHealthz provides a basic liveness check
// @Summary Liveness check
// @Description Returns OK if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

// HandleReadyz reports ready only when every named dependency answers
// @Summary Readiness check
// @Description Returns OK if the snapshot store and the RPC endpoint are reachable
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(checks map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results := make(map[string]string, len(checks))
		healthy := true

		for name, check := range checks {
			ctx, cancel := context.WithTimeout(r.Context(), ReadinessTimeout)
			err := check.CheckHealth(ctx)
			cancel()

			if err != nil {
				logger.FromContext(r.Context()).Error(LogMsgReadinessFailed, "check", name, "error", err)
				results[name] = "unavailable"
				healthy = false
				continue
			}
			results[name] = "ok"
		}

		if !healthy {
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  "unavailable",
				Message: "dependency check failed",
				Checks:  results,
			})
			return
		}
		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok", Checks: results})
	}
}
