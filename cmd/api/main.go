package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billing-api/internal/application/receipt"
	"github.com/sangkips/billing-api/internal/application/service"
	"github.com/sangkips/billing-api/internal/config"
	"github.com/sangkips/billing-api/internal/infrastructure/database"
	"github.com/sangkips/billing-api/internal/infrastructure/repository"
	"github.com/sangkips/billing-api/internal/presentation/http/handler"
	"github.com/sangkips/billing-api/internal/presentation/http/middleware"
	"github.com/sangkips/billing-api/internal/presentation/http/routes"
	"github.com/sangkips/billing-api/pkg/printer"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	loc := cfg.App.Location()

	// Initialize repositories
	menuRepo := repository.NewMenuItemRepository(db)
	billRepo := repository.NewBillRepository(db)
	billItemRepo := repository.NewBillItemRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:     cfg.Printer.Type,
		USBPath:  cfg.Printer.USBPath,
		Address:  cfg.Printer.Address,
		FilePath: cfg.Printer.FilePath,
	})
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	formatter := receipt.NewFormatter(cfg.Printer.Width, loc)

	// Initialize services
	settingsService := service.NewSettingsService(settingsRepo)
	menuService := service.NewMenuService(menuRepo)
	billService := service.NewBillService(billRepo, billItemRepo, settingsService, loc)
	reportService := service.NewReportService(billRepo, settingsService, loc)
	printerService := service.NewPrinterService(thermalPrinter, formatter, billRepo, billService, settingsService)
	billingService := service.NewBillingService(billRepo, billItemRepo, menuRepo, settingsService, billService, reportService, printerService)

	sessions := service.NewSessionStore(cfg.Session.TTL)
	defer sessions.Close()

	rateLimiter := middleware.NewClientRateLimiter(middleware.NewRateLimiterConfig(cfg.RateLimit.Requests, cfg.RateLimit.Duration))
	defer rateLimiter.Close()

	// Initialize handlers
	handlers := &routes.Handlers{
		Menu:     handler.NewMenuHandler(menuService),
		Settings: handler.NewSettingsHandler(settingsService),
		Session:  handler.NewSessionHandler(sessions, billingService),
		Bill:     handler.NewBillHandler(billService, billingService, printerService, formatter, loc),
		Report:   handler.NewReportHandler(reportService, loc),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
		log.Printf("Environment: %s, printer: %s", cfg.App.Env, thermalPrinter.Type())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Println("Server stopped")
}
