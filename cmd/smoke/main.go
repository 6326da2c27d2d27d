package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/progno/internal/smoke"
)

// Default configuration constants.
const (
	defaultRequests   = 20
	defaultWorkers    = 2 // multiplier for runtime.NumCPU()
	defaultTimeout    = 35 * time.Second
	defaultRunTimeout = 5 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:4000", "Base URL of the gateway")
		requests = flag.Int("requests", defaultRequests, "Number of prediction requests to submit")
		workers  = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose  = flag.Bool("verbose", false, "Log each prediction result")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &smoke.Config{
		BaseURL:  *baseURL,
		Requests: *requests,
		Workers:  *workers,
		Timeout:  *timeout,
		Verbose:  *verbose,
	}

	if _, err := smoke.Run(ctx, config); err != nil {
		os.Stderr.WriteString("smoke run failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
