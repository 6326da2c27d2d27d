// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/progno/internal/config"
	"github.com/okian/progno/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Predict runs the prediction pipeline for one raw feature mapping.
	Predict(ctx context.Context, raw map[string]any) (any, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	predictHandler *PredictHandler
	healthHandler  *HealthHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, cfg *config.Config) *Server {
	return &Server{
		predictHandler: NewPredictHandler(deps),
		healthHandler:  NewHealthHandler(cfg),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/predict", RequestIDMiddleware(MetricsMiddleware(s.predictHandler.HandlePredict, "predict")))
	mux.HandleFunc("/health", MetricsMiddleware(s.healthHandler.HandleHealth, "health"))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
}

// predictResponse is the success envelope for POST /predict.
type predictResponse struct {
	Success    bool `json:"success"`
	Prediction any  `json:"prediction"`
}

// errorResponse is the failure envelope shared by all routes.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Success: false, Error: msg})
}
