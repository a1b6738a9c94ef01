package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"

	"github.com/parishworks/reportsdb/internal/config"
	"github.com/parishworks/reportsdb/internal/database"
	"github.com/parishworks/reportsdb/internal/handlers"
	"github.com/parishworks/reportsdb/internal/middleware"
	"github.com/parishworks/reportsdb/internal/store"
	"github.com/parishworks/reportsdb/internal/types"

	_ "github.com/parishworks/reportsdb/docs/api" // Swagger docs
)

// @title ReportsDB API
// @version 1.0.0
// @description Annual report document store for church administrative reporting

// @license.name MIT

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name report_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed shared templates on first run
	st := store.New(db)
	if err := st.SeedTemplates(context.Background()); err != nil {
		log.Fatalf("Failed to seed templates: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("reportsdb")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	secret := []byte(cfg.SessionSecret)
	authHandler := &handlers.AuthHandler{Store: st, SessionSecret: secret, SessionTTL: cfg.SessionTTL}
	reportHandler := &handlers.ReportHandler{Store: st}
	templateHandler := &handlers.TemplateHandler{Store: st}

	// Credential routes (open)
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	// Report document routes (all require a session)
	reports := api.Group("/reports", middleware.AuthUser(secret))
	reports.Get("/", reportHandler.List)
	reports.Post("/:name", reportHandler.Save)
	reports.Get("/:id", reportHandler.Get)
	reports.Delete("/:id", reportHandler.Delete)
	reports.Get("/:id/export", reportHandler.Export)

	// Template routes (read-only)
	templates := api.Group("/templates", middleware.AuthUser(secret))
	templates.Get("/", templateHandler.List)
	templates.Get("/:id", templateHandler.Get)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if e, ok := err.(*types.CustomError); ok {
		code = e.Code
		message = e.Message
		errorType = e.Type
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
