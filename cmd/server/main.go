package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hassansabag81/TecRoomV1/internal/app"
	"github.com/hassansabag81/TecRoomV1/internal/auth"
	"github.com/hassansabag81/TecRoomV1/internal/config"
	"github.com/hassansabag81/TecRoomV1/internal/database"
	"github.com/hassansabag81/TecRoomV1/internal/logging"
	"github.com/hassansabag81/TecRoomV1/internal/metrics"
	"github.com/hassansabag81/TecRoomV1/internal/server"
	"github.com/hassansabag81/TecRoomV1/internal/version"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrations(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return pool
}

func runGracefulShutdown(srv *server.Server, appSvc *app.Service) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		appSvc.Stop()

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting",
		"env", cfg.AppEnv, "port", cfg.Port, "version", version.Get().Version)

	pool := setupDB(cfg)
	defer pool.Close()

	prometheus.MustRegister(metrics.NewPoolStatsCollector(pool))

	accountRepo := database.NewAccountRepo(pool)
	sessionRepo := database.NewSessionRepo(pool)
	projectRepo := database.NewProjectRepo(pool)

	issuer := auth.NewIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL, clock)
	verifier := auth.NewVerifier([]byte(cfg.JWTSecret), clock)

	appSvc := app.NewService(accountRepo, sessionRepo, projectRepo, issuer)

	srv := server.NewServer(cfg, appSvc, verifier, database.NewProbe(pool), clock)

	done := runGracefulShutdown(srv, appSvc)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
