package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/csiess85/deckenhoehe/internal/api/http"
	"github.com/csiess85/deckenhoehe/internal/awc"
	"github.com/csiess85/deckenhoehe/internal/config"
	"github.com/csiess85/deckenhoehe/internal/history"
	"github.com/csiess85/deckenhoehe/internal/scheduler"
	"github.com/csiess85/deckenhoehe/internal/snapshot"
	"github.com/csiess85/deckenhoehe/internal/wx"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Snapshot store backing both live endpoints and history.
	store, err := snapshot.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open snapshot store: %v", err)
	}
	defer store.Close()

	// Shared HTTP client for outbound API calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Upstream client with resilience (backoff + circuit breaker).
	client := awc.NewClient(httpClient)

	// Forecast engine and core service orchestrating fetch and store.
	engine := wx.NewEngine(cfg.Scheme)
	service := wx.NewService(store, client, engine)

	// Scheduler that periodically fetches and stores reports.
	sched := scheduler.New(cfg.Airports, cfg.FetchInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "deckenhoehe",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "deckenhoehe",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, httpapi.Deps{
		Store:         store,
		Engine:        engine,
		Reconstructor: history.NewReconstructor(store, engine),
		HistoryStep:   cfg.HistoryStep,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
