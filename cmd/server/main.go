package main

import (
	"context"
	"errors"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/vncsmyrnk/raffle/internal/adapters/handler/http"
	"github.com/vncsmyrnk/raffle/internal/adapters/repository"
	"github.com/vncsmyrnk/raffle/internal/config"
	"github.com/vncsmyrnk/raffle/internal/core/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	db, err := repository.OpenDB(cfg)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := repository.Migrate(cfg, db, "up"); err != nil {
		logger.Error("schema migration failed", "error", err)
		os.Exit(1)
	}

	store := repository.NewParticipantStore(cfg, db)
	storeClient := services.NewStoreClient(store,
		services.WithRetryInterval(cfg.RetryInterval),
		services.WithStoreLogger(logger),
	)
	participantService := services.NewParticipantService(storeClient, services.WithLogger(logger))

	handler := http.NewHandler(
		http.NewParticipantHandler(participantService),
		http.NewHealthHandler(store),
	)
	server := &stdhttp.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", "port", cfg.Port, "database", cfg.DatabaseType)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
