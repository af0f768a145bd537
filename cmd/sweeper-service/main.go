package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auction-core/internal/api/middleware"
	"auction-core/internal/config"
	"auction-core/internal/domain"
	"auction-core/internal/services"
	"auction-core/pkg/logger"
	"auction-core/pkg/utils"

	"github.com/gorilla/mux"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}
	if leveled, err := logger.NewWithLevel(cfg.Log.Level); err == nil {
		log = leveled
		defer leveled.Sync()
	}
	log.Info("Starting sweeper service", "instance_id", cfg.Instance.ID, "config", cfg.GetConfigString())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := utils.InitializeStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize store", "error", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Error("Failed to close store", "error", err)
		}
	}()

	events, closeEvents, err := utils.InitializeEvents(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize events", "error", err)
	}
	defer func() {
		if err := closeEvents(); err != nil {
			log.Error("Failed to close event bus", "error", err)
		}
	}()

	lifecycle := services.NewLifecycleManager(store, events, log)
	sweeper := services.NewExpirySweeper(store, lifecycle, cfg.Sweeper.Schedule, cfg.Sweeper.BatchSize, log)
	if err := sweeper.Start(ctx); err != nil {
		log.Fatal("Failed to start expiry sweeper", "error", err)
	}

	router := mux.NewRouter()
	router.Use(middleware.RequestLogger(log))

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	router.HandleFunc("/sweep", func(w http.ResponseWriter, r *http.Request) {
		report, err := sweeper.SweepOnce(r.Context())
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			status := http.StatusInternalServerError
			if domain.IsTransient(err) {
				status = http.StatusServiceUnavailable
			}
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": err.Error()})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success":         true,
			"claimed":         report.Claimed,
			"closed":          report.Closed,
			"already_closed":  report.AlreadyClosed,
			"not_yet_expired": report.NotYetExpired,
			"failed":          report.Failed,
		})
	}).Methods(http.MethodPost)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Starting HTTP server", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down sweeper service...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}
	if err := sweeper.Stop(); err != nil {
		log.Error("Failed to stop expiry sweeper", "error", err)
	}

	log.Info("Sweeper service stopped")
}
