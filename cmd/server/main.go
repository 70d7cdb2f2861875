package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/mathverse/internal/api"
	"github.com/vytor/mathverse/internal/auth"
	"github.com/vytor/mathverse/internal/config"
	"github.com/vytor/mathverse/internal/jobs"
	"github.com/vytor/mathverse/internal/logger"
	"github.com/vytor/mathverse/internal/services"
	"github.com/vytor/mathverse/internal/storage"
	"github.com/vytor/mathverse/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration: %v", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("MathVerse Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("store=%s", cfg.Store)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("data_file=%s", cfg.DataFile)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("auth_enabled=%t", cfg.AuthEnabled())
	log.Debug("history_worker_count=%d", cfg.HistoryWorkerCount)
	log.Debug("history_queue_size=%d", cfg.HistoryQueueSize)

	store, err := storage.Open(cfg)
	if err != nil {
		log.Error("failed to open store: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing store")
		if err := store.Close(); err != nil {
			log.Warn("failed to close store: %v", err)
		}
	}()

	historyPool := worker.NewPool("history", cfg.HistoryWorkerCount, cfg.HistoryQueueSize, log)

	srv := &api.Server{
		GameService:     services.NewGameService(store.Progress, jobs.NewWorkerQueue(historyPool, store.History)),
		ProgressService: services.NewProgressService(store.Progress, store.History),
		Ready:           store.Ping,
		CORSOrigin:      cfg.CORSOrigin,
	}
	if cfg.AuthEnabled() {
		srv.AuthService = services.NewAuthService(store.Users, auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL))
	} else {
		log.Warn("JWT_SECRET not set, serving single-user progress")
	}

	historyPool.Start(context.Background())

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-stop:
		log.Info("received signal %v, initiating graceful shutdown", sig)
	case err := <-serveErr:
		log.Error("HTTP server error: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// In-flight answers may still enqueue history events until Shutdown returns.
	log.Debug("draining history pool")
	historyPool.Stop()

	log.Info("===========================================")
	log.Info("MathVerse Server Stopped")
	log.Info("===========================================")
}
