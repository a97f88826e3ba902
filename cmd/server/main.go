package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"creditline/internal/adapters/http/middleware"
	"creditline/internal/adapters/http/routes"
	"creditline/internal/adapters/persistence/models"
	"creditline/internal/adapters/persistence/repositories"
	"creditline/internal/config"
	"creditline/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "creditline/docs" // Swagger docs
)

// @title Creditline API
// @version 1.0
// @description Credit approval decisioning API: customer registration, eligibility checks and loan management.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api/v1
// @schemes http https

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Scheduled spreadsheet re-import, only when a data dir is configured
	if cfg.Ingest.DataDir != "" {
		customerRepo := repositories.NewCustomerRepository(db)
		loanRepo := repositories.NewLoanRepository(db)
		ingestService := services.NewIngestService(customerRepo, loanRepo, cfg.Ingest.DataDir)

		cronService := services.NewCronService(ingestService, cfg.Ingest.CronSpec)
		if err := cronService.Start(); err != nil {
			log.Fatalf("❌ Failed to start cron service: %v", err)
		}
		defer cronService.Stop()
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Creditline API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db for dependency injection)
	routes.Setup(app, db)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
