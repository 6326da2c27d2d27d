package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/progno/internal/adapters/http/api"
	"github.com/okian/progno/internal/adapters/http/site"
	"github.com/okian/progno/internal/adapters/http/swagger"
	"github.com/okian/progno/internal/adapters/remote"
	app "github.com/okian/progno/internal/app"
	"github.com/okian/progno/internal/config"
	"github.com/okian/progno/pkg/logger"
	"github.com/okian/progno/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	// We collect our own custom system metrics instead
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	cfg.Status(ctx, log)

	// A process with incomplete configuration must not start serving
	// predictions. Fail fast with every problem listed.
	env := config.ParseEnvironment(cfg.Environment)
	if errs := cfg.Validate(env); len(errs) > 0 {
		for _, e := range errs {
			log.Error(ctx, "configuration error", logger.String("problem", e))
		}
		os.Stderr.WriteString("cannot start: configuration is invalid\n")
		os.Exit(1)
	}
	metrics.UpdateConfigHealthy(true)

	// Remote scoring client and prediction pipeline
	scorer := remote.NewClient(cfg.EndpointURL, cfg.Token,
		remote.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second),
	)
	svc := app.New(
		app.WithLogger(log),
		app.WithScorer(scorer),
		app.WithFeatureNames(cfg.Features),
	)

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register the input form at /, API docs, and business routes.
	site.Register(ctx, mux)
	swagger.Register(ctx, mux)
	apiServer := api.NewServer(svc, cfg)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		// WriteTimeout must cover the bounded upstream scoring call.
		WriteTimeout: time.Duration(cfg.TimeoutSeconds)*time.Second + readTimeout,
	}

	// Start the HTTP server
	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("endpoint_url", cfg.EndpointURL),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
