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

	"auction-core/internal/api/handlers"
	"auction-core/internal/config"
	"auction-core/internal/services"
	"auction-core/pkg/logger"
	"auction-core/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	log := logger.New()
	log.Info("Starting auction service")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}
	if leveled, err := logger.NewWithLevel(cfg.Log.Level); err == nil {
		log = leveled
		defer leveled.Sync()
	}
	log.Info("Configuration loaded", "config", cfg.GetConfigString())

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
	bids := services.NewBidAcceptor(store, events, log)
	query := services.NewQueryService(store)

	// Sweeping in this process is optional; dedicated sweeper-service
	// instances can share the load.
	var sweeper *services.ExpirySweeper
	if cfg.Sweeper.Enabled {
		sweeper = services.NewExpirySweeper(store, lifecycle, cfg.Sweeper.Schedule, cfg.Sweeper.BatchSize, log)
		if err := sweeper.Start(ctx); err != nil {
			log.Fatal("Failed to start expiry sweeper", "error", err)
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
		},
		MaxAge: 86400,
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			log.Debug("Request served",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"latency", time.Since(start))
			return err
		}
	})

	handlers.NewAuctionHandler(lifecycle, bids, query, log).RegisterRoutes(e.Group("/api/v1"))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":    "ok",
			"service":   "auction-service",
			"instance":  cfg.Instance.ID,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		log.Info("Starting HTTP server", "address", serverAddr)
		if err := e.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down auction service...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}
	if sweeper != nil {
		if err := sweeper.Stop(); err != nil {
			log.Error("Failed to stop expiry sweeper", "error", err)
		}
	}
	cancel()

	log.Info("Auction service stopped")
}
