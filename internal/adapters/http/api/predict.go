// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/okian/progno/internal/domain/scoring"
)

// PredictHandler handles prediction requests.
type PredictHandler struct {
	deps Dependencies
}

// NewPredictHandler creates a new predict handler.
func NewPredictHandler(deps Dependencies) *PredictHandler {
	return &PredictHandler{deps: deps}
}

// HandlePredict handles POST /predict requests. Per-request flow: parse
// the JSON body, then hand the raw mapping to the pipeline. Validation
// and upstream errors come back embedded in the failure envelope; the
// status code depends on the failure class.
func (h *PredictHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, ErrNoData)
			return
		}
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON in request body: %w", err))
		return
	}
	if len(raw) == 0 {
		writeError(w, http.StatusBadRequest, ErrNoData)
		return
	}

	prediction, err := h.deps.Predict(r.Context(), raw)
	if err != nil {
		writeError(w, statusFor(err), clientError(err))
		return
	}

	writeJSON(w, http.StatusOK, predictResponse{Success: true, Prediction: prediction})
}

// statusFor maps pipeline failures to HTTP statuses: network-class scoring
// failures (timeout, connection) are 500; everything else, including
// validation failures and non-200 answers from the endpoint, is 400.
func statusFor(err error) int {
	var f *scoring.Failure
	if errors.As(err, &f) && f.IsNetwork() {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

// clientError shapes the message embedded in the failure envelope. Network
// failures get a prefix naming the failing collaborator; other errors are
// surfaced verbatim (validator messages are already client-facing).
func clientError(err error) error {
	var f *scoring.Failure
	if errors.As(err, &f) && f.IsNetwork() {
		return fmt.Errorf("network error while calling model endpoint: %w", f)
	}
	return err
}
