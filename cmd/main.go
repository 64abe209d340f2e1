package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/techSaswata/mentiby-admin/internal/adapters/http/api"
	"github.com/techSaswata/mentiby-admin/internal/adapters/notify"
	"github.com/techSaswata/mentiby-admin/internal/adapters/recompute"
	"github.com/techSaswata/mentiby-admin/internal/adapters/store"
	service "github.com/techSaswata/mentiby-admin/internal/app"
	"github.com/techSaswata/mentiby-admin/internal/config"
	"github.com/techSaswata/mentiby-admin/pkg/logger"
	"github.com/techSaswata/mentiby-admin/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 30 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics;
	// we collect our own system metrics instead.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if cfg.DatabaseURL == "" {
		os.Stderr.WriteString("database_url is required (set MENTIBY_DATABASE_URL)\n")
		return
	}

	// Canonical store
	pgStore, err := store.NewPostgres(cfg.DatabaseURL,
		store.WithTimeout(time.Duration(cfg.FetchTimeoutMS)*time.Millisecond),
	)
	if err != nil {
		os.Stderr.WriteString("failed to create store: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = pgStore.Close()
	}()

	// Change notification stream
	stream, err := notify.NewPGListener(cfg.DatabaseURL, cfg.NotifyChannel,
		notify.WithLogger(log.Named("notify")),
	)
	if err != nil {
		os.Stderr.WriteString("failed to subscribe to change notifications: " + err.Error() + "\n")
		return
	}

	// XP recomputation job
	job, err := recompute.NewHTTPClient(cfg.RecomputeURL,
		recompute.WithTimeout(time.Duration(cfg.RecomputeTimeoutMS)*time.Millisecond),
	)
	if err != nil {
		os.Stderr.WriteString("failed to create recompute client: " + err.Error() + "\n")
		return
	}

	// Refresh coordinator
	coord := service.New(pgStore, stream, job,
		service.WithLogger(log.Named("coordinator")),
		service.WithDebounceInterval(time.Duration(cfg.DebounceMS)*time.Millisecond),
		service.WithStalenessDelay(time.Duration(cfg.StalenessDelayMS)*time.Millisecond),
		service.WithStalenessThreshold(time.Duration(cfg.StalenessThresholdHours)*time.Hour),
	)
	if err := coord.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start coordinator: " + err.Error() + "\n")
		return
	}
	defer coord.Close()

	// Initial load; the service still starts on failure, the next
	// trigger is the retry mechanism.
	if err := coord.Refresh(ctx); err != nil {
		log.Warn(ctx, "initial leaderboard load failed", logger.Error(err))
	}

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	// HTTP mux and routes.
	mux := http.NewServeMux()
	api.NewServer(coord).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

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
