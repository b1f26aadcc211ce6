package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/standings/internal/adapters/http/api"
	"github.com/okian/standings/internal/adapters/http/site"
	"github.com/okian/standings/internal/adapters/http/swagger"
	"github.com/okian/standings/internal/adapters/repository"
	service "github.com/okian/standings/internal/app"
	"github.com/okian/standings/internal/config"
	"github.com/okian/standings/internal/domain/ranking"
	"github.com/okian/standings/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 30 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		_, _ = os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := setupLogging(cfg); err != nil {
		_, _ = os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()
	if cfg.AdminPassword == "" {
		log.Warn(ctx, "admin_password is empty; publishing is disabled")
	}

	mux := buildMux(ctx, cfg, log)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("snapshot", cfg.SnapshotPath),
			logger.String("history", cfg.HistoryPath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(context.Background(), "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "server shutdown failed", logger.Error(err))
	}

	log.Info(shutdownCtx, "server stopped")
}

// setupLogging installs the global logger with the configured format and
// level. An invalid level falls back to info.
func setupLogging(cfg *config.Config) error {
	format, err := logger.ParseFormat(cfg.LogFormat)
	if err != nil {
		return err
	}
	if err := logger.InitWith(os.Stdout, format); err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(context.Background(), "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return nil
}

// newService wires the file store and the ranker into the service.
func newService(cfg *config.Config, log logger.Logger) *service.Service {
	store := repository.NewFileStore(
		repository.WithSnapshotPath(cfg.SnapshotPath),
		repository.WithInitialPath(cfg.InitialPath),
		repository.WithHistoryPath(cfg.HistoryPath),
		repository.WithDateColumn(cfg.DateColumn),
		repository.WithLogger(log.Named("store")),
	)
	ranker := ranking.New(
		ranking.WithColumns(cfg.Columns()),
		ranking.WithTeams(cfg.Teams),
		ranking.WithOtherLabel(cfg.OtherLabel),
	)
	return service.New(
		service.WithStore(store),
		service.WithRanker(ranker),
		service.WithLogger(log.Named("service")),
		service.WithAdminPassword(cfg.AdminPassword),
		service.WithTitle(cfg.Title),
		service.WithRewardsURL(cfg.RewardsURL),
	)
}

// buildMux registers the docs, asset, API, admin and dashboard routes.
func buildMux(ctx context.Context, cfg *config.Config, log logger.Logger) *http.ServeMux {
	svc := newService(cfg, log)

	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	site.Register(ctx, mux)

	apiServer := api.NewServer(svc,
		api.WithAdminRateLimit(cfg.AdminRateLimit, cfg.AdminBurst),
		api.WithMaxUploadBytes(cfg.MaxUploadBytes),
	)
	apiServer.Register(ctx, mux)
	return mux
}
