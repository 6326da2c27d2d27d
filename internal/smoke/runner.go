package smoke

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Run executes one smoke pass: probe /health, then submit the configured
// number of prediction requests with a worker pool, and report totals.
// A run fails only when the gateway is unreachable or unhealthy; rejected
// predictions are counted and reported.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	client := newHTTPClient(config.Timeout)
	stats := &Stats{StartTime: time.Now()}

	// Health first: an unhealthy gateway makes prediction results noise.
	var health HealthResponse
	status, err := client.getJSON(ctx, config.BaseURL+"/health", &health)
	if err != nil {
		return nil, fmt.Errorf("health probe failed: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("gateway unhealthy (status %d): %v", status, health.Errors)
	}
	log.Printf("gateway healthy: %s %s", health.App, health.Version)

	var (
		successful int64
		rejected   int64
		failed     int64
	)

	payloads := make(chan map[string]any, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for payload := range payloads {
				var resp PredictResponse
				status, err := client.postJSON(ctx, config.BaseURL+"/predict", payload, &resp)
				switch {
				case err != nil:
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						log.Printf("request failed: %v", err)
					}
				case status == http.StatusOK && resp.Success:
					atomic.AddInt64(&successful, 1)
					if config.Verbose {
						log.Printf("prediction: %v", resp.Prediction)
					}
				default:
					atomic.AddInt64(&rejected, 1)
					if config.Verbose {
						log.Printf("rejected (status %d): %s", status, resp.Error)
					}
				}
			}
		}()
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // load generation, not crypto
	go func() {
		defer close(payloads)
		for i := 0; i < config.Requests; i++ {
			select {
			case <-ctx.Done():
				return
			case payloads <- generatePayload(rng):
			}
		}
	}()

	wg.Wait()

	stats.Submitted = config.Requests
	stats.Successful = int(atomic.LoadInt64(&successful))
	stats.Rejected = int(atomic.LoadInt64(&rejected))
	stats.Failed = int(atomic.LoadInt64(&failed))
	stats.Duration = time.Since(stats.StartTime)

	log.Printf("smoke run finished in %s: %d successful, %d rejected, %d failed",
		stats.Duration.Round(time.Millisecond), stats.Successful, stats.Rejected, stats.Failed)

	return stats, nil
}
