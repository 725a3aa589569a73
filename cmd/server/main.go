package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"phishhook/internal/config"
	"phishhook/internal/handler"
	"phishhook/internal/service"
	"phishhook/internal/storage"
	"phishhook/internal/utils"
)

func main() {
	utils.InitLogger()
	defer func() {
		_ = utils.Log.Sync()
	}()

	// Config
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.Log.Fatal("invalid configuration", utils.Field("error", err.Error()))
	}

	// Dependencies
	data := service.LoadDataset(cfg.LegitimatePath, cfg.PhishingPath)
	engine := service.NewEngine(data)
	history := service.NewHistory(cfg.HistoryLimit)
	hub := service.NewHub(history)

	var store *storage.Storage
	var archive service.Archive
	if cfg.RedisEnabled {
		store = storage.NewStorage(cfg.RedisHost, cfg.RedisPort)
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := store.Ping(pingCtx); err != nil {
			utils.Log.Warn("redis unavailable, scan archive disabled",
				utils.Field("error", err.Error()))
			store = nil
		}
		cancel()
	}
	if store != nil {
		archive = store
	}

	scanner := service.NewScanner(engine, history, hub, archive)
	h := handler.NewHandler(scanner, history, data, hub, store, cfg)

	// Startup tasks
	sched := service.NewScheduler(history, data, store)
	sched.Start()

	// Web Server
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20))) // 20 requests per second

	// Routes
	e.POST("/api/scan", h.ScanURL)
	e.GET("/api/scan-history", h.ScanHistory)
	e.GET("/api/stats", h.Stats)
	e.GET("/api/scan-archive", h.ScanArchive)
	e.GET("/ws", h.HandleWS)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Start server
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	sched.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}
