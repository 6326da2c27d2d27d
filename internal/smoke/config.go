// Package smoke drives end-to-end checks against a running gateway: a
// health probe followed by a burst of prediction requests.
package smoke

import "time"

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL  string        // Base URL of the gateway
	Requests int           // Number of prediction requests to submit
	Workers  int           // Number of concurrent workers
	Timeout  time.Duration // HTTP request timeout
	Verbose  bool          // Enable verbose logging
}

// PredictResponse mirrors the gateway's prediction envelope.
type PredictResponse struct {
	Success    bool   `json:"success"`
	Prediction any    `json:"prediction"`
	Error      string `json:"error"`
}

// HealthResponse mirrors the gateway's health envelope.
type HealthResponse struct {
	Status  string   `json:"status"`
	App     string   `json:"app"`
	Version string   `json:"version"`
	Errors  []string `json:"errors"`
}

// Stats holds smoke run statistics.
type Stats struct {
	Submitted  int
	Successful int
	Rejected   int
	Failed     int
	StartTime  time.Time
	Duration   time.Duration
}
