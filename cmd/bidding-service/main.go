package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auction-core/internal/api/middleware"
	"auction-core/internal/config"
	"auction-core/internal/infrastructure/websocket"
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
	log.Info("Starting bidding service", "config", cfg.GetConfigString())

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

	bids := services.NewBidAcceptor(store, events, log)
	query := services.NewQueryService(store)

	connManager := websocket.NewConnectionManager(log)
	notifier := websocket.NewNotifier(connManager)
	eventListener := services.NewEventListener(connManager, notifier, notifier, log)

	router := mux.NewRouter()
	router.Use(middleware.CORS, middleware.RequestLogger(log))

	websocket.NewWebSocketHandler(bids, query, connManager, log).RegisterRoutes(router)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	listenerDone := make(chan struct{})
	go func() {
		defer close(listenerDone)
		if err := eventListener.Start(ctx, events); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("Event listener stopped", "error", err)
		}
	}()

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

	log.Info("Shutting down bidding service...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	cancel()
	<-listenerDone

	log.Info("Bidding service stopped")
}
