package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cesargomez89/episodarr/internal/config"
	"github.com/cesargomez89/episodarr/internal/constants"
	"github.com/cesargomez89/episodarr/internal/filesystem"
	httpapp "github.com/cesargomez89/episodarr/internal/http"
	"github.com/cesargomez89/episodarr/internal/logger"
	"github.com/cesargomez89/episodarr/internal/notifier"
	"github.com/cesargomez89/episodarr/internal/store"
)

func main() {
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Initialize Logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	if err := filesystem.EnsureDir(cfg.DataDir); err != nil {
		appLogger.Error("Failed to create data dir", "error", err)
		os.Exit(1)
	}

	// Initialize databases
	registry := store.NewRegistry(cfg.DataDir)
	if err := initDatabases(context.Background(), registry, appLogger); err != nil {
		appLogger.Error("Failed to init DB", "error", err)
		_ = registry.CloseAll()
		os.Exit(1)
	}
	defer func() {
		if err := registry.Flush(); err != nil {
			appLogger.Error("Failed to flush databases", "error", err)
		}
		_ = registry.CloseAll()
	}()

	// Initialize Notifier
	mm := notifier.New(notifier.Settings{
		Enabled:                cfg.Mattermost.Enabled,
		WebhookURL:             cfg.Mattermost.WebhookURL,
		BaseURL:                cfg.Mattermost.BaseURL,
		Username:               cfg.Mattermost.Username,
		NotifySnatch:           cfg.Mattermost.NotifySnatch,
		NotifyDownload:         cfg.Mattermost.NotifyDownload,
		NotifySubtitleDownload: cfg.Mattermost.NotifySubtitleDownload,
	}, notifier.WithLogger(appLogger))

	// Initialize Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	h := httpapp.NewHandler(mm, appLogger)
	h.RegisterRoutes(r)

	// Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		appLogger.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", "error", err)
	}

	appLogger.Info("Server exiting")
}

// initDatabases upgrades the main, cache and failed databases to their
// latest schema and repairs the main database.
func initDatabases(ctx context.Context, registry *store.Registry, l *logger.Logger) error {
	mainDB, err := registry.Open(constants.MainDBName, store.RowTuple)
	if err != nil {
		return err
	}
	if err := store.Upgrade(ctx, mainDB, store.MainSchema); err != nil {
		return err
	}
	fixed, err := store.SanityCheck(ctx, mainDB, store.MainSanityCheck)
	if err != nil {
		return err
	}
	l.Info("Main database ready", "fixed", fixed)

	for name, schema := range map[string]store.Schema{
		constants.CacheDBName:  store.CacheSchema,
		constants.FailedDBName: store.FailedSchema,
	} {
		db, err := registry.Open(name, store.RowTuple)
		if err != nil {
			return err
		}
		if err := store.Upgrade(ctx, db, schema); err != nil {
			return err
		}
	}
	return nil
}
