package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/JonMunkholm/ArtworkTable/internal/artic"
	"github.com/JonMunkholm/ArtworkTable/internal/config"
	"github.com/JonMunkholm/ArtworkTable/internal/core"
	"github.com/JonMunkholm/ArtworkTable/internal/logging"
	"github.com/JonMunkholm/ArtworkTable/internal/store"
	"github.com/JonMunkholm/ArtworkTable/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Overload()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// The terminal belongs to the UI; logs go to LOG_FILE or nowhere.
	var logOut io.Writer = io.Discard
	if path := cfg.Logging.File; path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logging.SetupWriter(logOut, cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := artic.New(artic.Config{
		BaseURL:   cfg.Artic.BaseURL,
		UserAgent: cfg.Artic.UserAgent,
		Timeout:   cfg.Artic.Timeout,
	})
	if err != nil {
		return fmt.Errorf("create artwork client: %w", err)
	}

	svcCfg := core.ServiceConfig{Fetcher: client, SessionTTL: cfg.Session.TTL}
	if cfg.Database.Enabled() {
		pool, err := store.Open(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer pool.Close()

		subs := store.NewSubmissions(pool)
		if err := subs.Migrate(ctx); err != nil {
			return err
		}
		svcCfg.Emitters = append(svcCfg.Emitters, subs)
	}

	service, err := core.NewService(svcCfg)
	if err != nil {
		return err
	}

	sess := service.Sessions().Create()
	ctx = logging.ContextWithSessionID(ctx, sess.ID)
	slog.Info("terminal session started", "session_id", sess.ID)

	p := tea.NewProgram(tui.New(ctx, sess.Table), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
