package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Manaregr8/affiliate-platform/internal/adapters/http/middleware"
	"github.com/Manaregr8/affiliate-platform/internal/adapters/http/routes"
	"github.com/Manaregr8/affiliate-platform/internal/adapters/persistence/models"
	"github.com/Manaregr8/affiliate-platform/internal/adapters/persistence/repositories"
	"github.com/Manaregr8/affiliate-platform/internal/config"
	"github.com/Manaregr8/affiliate-platform/internal/core/services"
	"github.com/Manaregr8/affiliate-platform/internal/pkg/logging"

	"github.com/gofiber/fiber/v2"

	_ "github.com/Manaregr8/affiliate-platform/docs" // Swagger docs
)

// @title Affiliate Platform API
// @version 1.0
// @description Affiliate admissions platform: lead intake, commission ledger and payouts.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@manaregr8.com

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host partners.manaregr8.com
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Structured logger
	if err := logging.InitLogger(cfg.IsProd()); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Sync()

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

	// Seed counsellor account and commission catalog
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed database: %v", err)
	}

	// Redis-backed rate limiting (optional)
	rdb := config.ConnectRedis(cfg)
	if rdb != nil {
		defer rdb.Close()
	}

	// Daily stale-lead reminder
	reminderService := services.NewReminderService(repositories.NewStudentRepository(db), cfg)
	if err := reminderService.Start(); err != nil {
		log.Fatalf("❌ Failed to start reminder service: %v", err)
	}
	defer reminderService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Affiliate Platform API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db, redis and cfg for dependency injection)
	routes.Setup(app, db, rdb, cfg)

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
