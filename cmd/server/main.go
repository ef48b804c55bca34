package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/ArtworkTable/internal/artic"
	"github.com/JonMunkholm/ArtworkTable/internal/config"
	"github.com/JonMunkholm/ArtworkTable/internal/core"
	"github.com/JonMunkholm/ArtworkTable/internal/logging"
	"github.com/JonMunkholm/ArtworkTable/internal/store"
	"github.com/JonMunkholm/ArtworkTable/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"artic_base_url", cfg.Artic.BaseURL,
		"submission_db", cfg.Database.Enabled(),
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	ctx := context.Background()

	client, err := artic.New(artic.Config{
		BaseURL:   cfg.Artic.BaseURL,
		UserAgent: cfg.Artic.UserAgent,
		Timeout:   cfg.Artic.Timeout,
	})
	if err != nil {
		slog.Error("failed to create artwork client", "error", err)
		os.Exit(1)
	}

	svcCfg := core.ServiceConfig{
		Fetcher:    client,
		SessionTTL: cfg.Session.TTL,
	}

	// Submissions are recorded in PostgreSQL when a database is configured
	if cfg.Database.Enabled() {
		pool, err := store.Open(ctx, cfg.Database)
		if err != nil {
			slog.Error("failed to open submission database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		subs := store.NewSubmissions(pool)
		if err := subs.Migrate(ctx); err != nil {
			slog.Error("failed to migrate submission schema", "error", err)
			os.Exit(1)
		}
		svcCfg.Emitters = append(svcCfg.Emitters, subs)
		svcCfg.History = subs
	}

	service, err := core.NewService(svcCfg)
	if err != nil {
		slog.Error("failed to create service", "error", err)
		os.Exit(1)
	}

	server := web.NewServer(service, cfg)

	// Create cancellable context for background jobs
	jobCtx, cancelJobs := context.WithCancel(ctx)
	go service.Sessions().StartSweeper(jobCtx, cfg.Session.SweepInterval)

	// Graceful shutdown
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	<-shutdownDone
	slog.Info("server stopped")
}
