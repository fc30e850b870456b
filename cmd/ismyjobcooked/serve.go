package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/DorinSirca/ismyjobcooked-api/internal/analytics"
	"github.com/DorinSirca/ismyjobcooked-api/internal/config"
	"github.com/DorinSirca/ismyjobcooked-api/internal/events"
	"github.com/DorinSirca/ismyjobcooked-api/internal/httpapi"
	"github.com/DorinSirca/ismyjobcooked-api/internal/jobs"
	"github.com/DorinSirca/ismyjobcooked-api/internal/memes"
	"github.com/DorinSirca/ismyjobcooked-api/internal/model"
	"github.com/DorinSirca/ismyjobcooked-api/internal/ratelimit"
	"github.com/DorinSirca/ismyjobcooked-api/internal/scheduler"
	"github.com/DorinSirca/ismyjobcooked-api/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  "Start the API server; blocks until SIGINT/SIGTERM, then drains requests and saves analytics.",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := setupLogger(cfg, debug)
	slog.SetDefault(logger)

	logger.Info("config loaded",
		"port", cfg.Server.Port,
		"environment", cfg.Server.Environment,
		"rate_limit", fmt.Sprintf("%d/%s", cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Window),
		"ai_enabled", cfg.AI.Enabled,
		"persist", cfg.Analytics.Persist,
		"notification", cfg.Notification.Type,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := events.NewHub()
	stats := analytics.New(hub, logger)

	var snapshots model.SnapshotStore = store.NewNopStore()
	if cfg.Analytics.Persist {
		sqlStore, err := store.NewSQLiteStore(cfg.Analytics.DBPath)
		if err != nil {
			logger.Error("failed to open snapshot store", "path", cfg.Analytics.DBPath, "error", err)
			return err
		}
		defer sqlStore.Close()
		snapshots = sqlStore
	}

	sched := scheduler.NewScheduler(stats, snapshots, cfg.Analytics.SnapshotInterval, cfg.Analytics.Retention, logger)
	if restored, err := sched.Restore(ctx); err != nil {
		// A bad snapshot must not keep the API down.
		logger.Error("failed to restore analytics, starting empty", "error", err)
	} else if restored {
		logger.Info("analytics restored from snapshot")
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	limiter := ratelimit.NewKeyedLimiter(cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Window)

	handler := httpapi.NewHandler(httpapi.Deps{
		Server:    cfg.Server,
		Catalog:   jobs.NewCatalog(),
		Generator: jobs.NewGenerator(nil),
		Analyzer:  setupAnalyzer(ctx, cfg, logger),
		Memes:     memes.NewLibrary(),
		Analytics: stats,
		Hub:       hub,
		Notifier:  setupNotifier(cfg, httpClient, logger),
		Limiter:   limiter,
		Logger:    logger,
		Started:   time.Now(),
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}
	// Event streams never finish on their own.
	srv.RegisterOnShutdown(hub.Close)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server", "timeout", cfg.Server.ShutdownTimeout.String())
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return sched.Run(gctx)
	})

	g.Go(func() error {
		pruneIdleClients(gctx, limiter, cfg.Server.RateLimit, logger)
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", "error", err)
		return err
	}
	logger.Info("goodbye")
	return nil
}

// pruneIdleClients drops rate-limit buckets of clients idle for a whole
// window; a fresh bucket is full, so nothing is lost.
func pruneIdleClients(ctx context.Context, limiter *ratelimit.KeyedLimiter, rl config.RateLimitConfig, logger *slog.Logger) {
	ticker := time.NewTicker(rl.Window)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := limiter.Prune(rl.Window); n > 0 {
				logger.Debug("pruned idle rate-limit buckets", "count", n, "remaining", limiter.Len())
			}
		}
	}
}
