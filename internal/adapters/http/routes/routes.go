package routes

import (
	"github.com/Manaregr8/affiliate-platform/internal/adapters/http/handlers"
	"github.com/Manaregr8/affiliate-platform/internal/adapters/http/middleware"
	"github.com/Manaregr8/affiliate-platform/internal/adapters/persistence/repositories"
	"github.com/Manaregr8/affiliate-platform/internal/config"
	"github.com/Manaregr8/affiliate-platform/internal/core/domain"
	"github.com/Manaregr8/affiliate-platform/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	affiliateRepo := repositories.NewAffiliateRepository(db)
	superRepo := repositories.NewSuperAffiliateRepository(db)
	studentRepo := repositories.NewStudentRepository(db)
	payoutRepo := repositories.NewPayoutRequestRepository(db)
	courseRepo := repositories.NewCourseCommissionRepository(db)
	reportRepo := repositories.NewIssueReportRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	affiliateService := services.NewAffiliateService(db, userRepo, affiliateRepo, superRepo)
	leadService := services.NewLeadService(db, studentRepo, affiliateRepo, superRepo, courseRepo)
	payoutService := services.NewPayoutService(db, payoutRepo, affiliateRepo, superRepo, cfg)
	catalogService := services.NewCatalogService(courseRepo)
	reportService := services.NewReportService(reportRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	affiliateHandler := handlers.NewAffiliateHandler(affiliateService, leadService)
	leadHandler := handlers.NewLeadHandler(leadService)
	payoutHandler := handlers.NewPayoutHandler(payoutService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Prometheus metrics
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group with the shared fixed-window limit
	apiV1 := app.Group("/api/v1", middleware.RateLimiter(rdb, middleware.GeneralLimit))

	auth := apiV1.Group("/auth")
	auth.Post("/login", middleware.RateLimiter(rdb, middleware.AuthLimit), authHandler.Login)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)
	auth.Post("/logout-all", middleware.AuthMiddleware(cfg), authHandler.LogoutAll)
	auth.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)

	register := apiV1.Group("/register", middleware.RateLimiter(rdb, middleware.AuthLimit))
	register.Post("/affiliator", affiliateHandler.RegisterAffiliator)
	register.Post("/super-affiliator", affiliateHandler.RegisterSuperAffiliator)

	// Public catalog and lead intake
	apiV1.Get("/courses", catalogHandler.List)
	apiV1.Post("/leads", middleware.RateLimiter(rdb, middleware.SubmitLimit), leadHandler.Submit)

	// Counsellor lead management
	leads := apiV1.Group("/leads", middleware.AuthMiddleware(cfg), middleware.RequireCapability(domain.CapManageLeads))
	leads.Get("/", leadHandler.List)
	leads.Put("/:id/course", leadHandler.AssignCourse)
	leads.Put("/:id/status", leadHandler.Transition)

	// Affiliate self-service
	affiliates := apiV1.Group("/affiliates", middleware.AuthMiddleware(cfg))
	affiliates.Get("/me", affiliateHandler.Profile)
	affiliates.Get("/me/leads", middleware.RequireCapability(domain.CapViewOwnLeads), affiliateHandler.MyLeads)

	// Payouts
	payouts := apiV1.Group("/payouts", middleware.AuthMiddleware(cfg))
	payouts.Post("/", middleware.RequireCapability(domain.CapRequestPayout), payoutHandler.Request)
	payouts.Get("/my", middleware.RequireCapability(domain.CapRequestPayout), payoutHandler.My)
	payouts.Get("/pending", middleware.RequireCapability(domain.CapApprovePayouts), payoutHandler.Pending)
	payouts.Put("/:id/approve", middleware.RequireCapability(domain.CapApprovePayouts), payoutHandler.Approve)
	payouts.Put("/:id/reject", middleware.RequireCapability(domain.CapApprovePayouts), payoutHandler.Reject)

	// Issue reports
	reports := apiV1.Group("/reports", middleware.AuthMiddleware(cfg))
	reports.Post("/", middleware.RequireCapability(domain.CapReportIssue), reportHandler.File)
	reports.Get("/", middleware.RequireCapability(domain.CapManageLeads), reportHandler.List)
}
