// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/progno/internal/config"
	"github.com/okian/progno/pkg/metrics"
)

// HealthHandler reports process and configuration health. It re-validates
// the configuration on every call but never probes the live scoring
// endpoint.
type HealthHandler struct {
	cfg *config.Config
	env config.Environment
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{
		cfg: cfg,
		env: config.ParseEnvironment(cfg.Environment),
	}
}

// healthyResponse is the body for a passing health check.
type healthyResponse struct {
	Status  string `json:"status"`
	App     string `json:"app"`
	Version string `json:"version"`
}

// unhealthyResponse is the body for a failing health check.
type unhealthyResponse struct {
	Status string   `json:"status"`
	Errors []string `json:"errors"`
}

// HandleHealth handles GET /health requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	errs := h.cfg.Validate(h.env)
	metrics.UpdateConfigHealthy(len(errs) == 0)

	if len(errs) > 0 {
		writeJSON(w, http.StatusInternalServerError, unhealthyResponse{
			Status: "unhealthy",
			Errors: errs,
		})
		return
	}

	writeJSON(w, http.StatusOK, healthyResponse{
		Status:  "healthy",
		App:     h.cfg.AppName,
		Version: h.cfg.AppVersion,
	})
}
