package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	githubadapter "github.com/ericfisherdev/openedx-plugin/internal/adapter/driven/github"
	sqliteadapter "github.com/ericfisherdev/openedx-plugin/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/openedx-plugin/internal/bootstrap"
	"github.com/ericfisherdev/openedx-plugin/internal/config"
	"github.com/ericfisherdev/openedx-plugin/internal/domain/port/driven"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration and build the logger.
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	logger.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"project_type", cfg.ProjectType,
		"environment", cfg.Environment,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()
	logger.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	logger.Info("migrations complete")

	// 5. Release checker is optional.
	var checker driven.ReleaseChecker
	if cfg.ReleaseCheckEnabled() {
		checker = githubadapter.NewClient(cfg.GitHubToken)
	} else {
		logger.Info("no release repository configured, release check disabled")
	}

	// 6. Install plugins and run their ready hooks.
	app, err := bootstrap.New(ctx, bootstrap.Options{
		ProjectType:    cfg.ProjectType,
		Environment:    cfg.Environment,
		ReleaseChecker: checker,
		ReleaseRepo:    cfg.ReleaseRepo,
	}, db, logger)
	if err != nil {
		return err
	}

	// 7. Check for a newer release without blocking startup for long.
	if checker != nil {
		releaseCtx, cancel := context.WithTimeout(ctx, cfg.ReleaseTimeout)
		app.Releases.Check(releaseCtx)
		cancel()
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           app.Handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	logger.Info("openedx-plugin started",
		"listen_addr", cfg.ListenAddr,
		"apps", len(app.Host.Apps()),
	)

	// 8. Wait for shutdown signal.
	<-ctx.Done()
	logger.Info("shutting down")

	// 9. Graceful shutdown with 10s timeout for HTTP server drain.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
}
