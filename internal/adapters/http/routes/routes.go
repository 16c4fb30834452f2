package routes

import (
	"election-checkin/internal/adapters/http/handlers"
	"election-checkin/internal/adapters/http/middleware"
	"election-checkin/internal/adapters/persistence/repositories"
	"election-checkin/internal/config"
	"election-checkin/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	voterRepo := repositories.NewVoterRepository(db)
	areaRepo := repositories.NewAreaRepository(db)
	configRepo := repositories.NewConfigRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo, refreshTokenRepo, areaRepo)
	voterService := services.NewVoterService(voterRepo)
	importService := services.NewImportService(voterRepo)
	checkinService := services.NewCheckinService(voterRepo)
	statsService := services.NewStatsService(voterRepo, configRepo)
	reportService := services.NewReportService(voterRepo)
	areaService := services.NewAreaService(areaRepo)
	settingsService := services.NewSettingsService(configRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	voterHandler := handlers.NewVoterHandler(voterService, importService)
	checkinHandler := handlers.NewCheckinHandler(checkinService)
	statsHandler := handlers.NewStatsHandler(statsService)
	reportHandler := handlers.NewReportHandler(reportService)
	areaHandler := handlers.NewAreaHandler(areaService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public + protected)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Check-in routes (staff + admin)
	checkinRoutes := apiV1.Group("/checkin")
	checkinRoutes.Use(middleware.AuthMiddleware(cfg))
	setupCheckinRoutes(checkinRoutes, checkinHandler)

	// Voter roster routes
	voterRoutes := apiV1.Group("/voters")
	voterRoutes.Use(middleware.AuthMiddleware(cfg))
	setupVoterRoutes(voterRoutes, voterHandler)

	// Stats routes
	statsRoutes := apiV1.Group("/stats")
	statsRoutes.Use(middleware.AuthMiddleware(cfg))
	setupStatsRoutes(statsRoutes, statsHandler)

	// Report routes
	reportRoutes := apiV1.Group("/reports")
	reportRoutes.Use(middleware.AuthMiddleware(cfg))
	setupReportRoutes(reportRoutes, reportHandler)

	// User management routes (Admin only)
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	userRoutes.Use(middleware.AdminOnly())
	setupUserRoutes(userRoutes, userHandler)

	// Voting area catalog routes
	areaRoutes := apiV1.Group("/areas")
	areaRoutes.Use(middleware.AuthMiddleware(cfg))
	setupAreaRoutes(areaRoutes, areaHandler)

	// Election settings routes
	settingsRoutes := apiV1.Group("/settings")
	settingsRoutes.Use(middleware.AuthMiddleware(cfg))
	setupSettingsRoutes(settingsRoutes, settingsHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes (rate limited against credential stuffing)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupCheckinRoutes configures check-in station routes
func setupCheckinRoutes(router fiber.Router, handler *handlers.CheckinHandler) {
	router.Get("/:id_card", handler.Lookup)
	router.Post("/:id_card", handler.CheckIn)
}

// setupVoterRoutes configures roster routes. Reads are scoped per caller;
// mutations are Admin only.
func setupVoterRoutes(router fiber.Router, handler *handlers.VoterHandler) {
	router.Get("/", handler.ListVoters)
	router.Get("/search", handler.SearchVoters)
	router.Get("/:id", handler.GetVoter)

	adminRoutes := router.Group("")
	adminRoutes.Use(middleware.AdminOnly())
	adminRoutes.Post("/", handler.CreateVoter)
	adminRoutes.Post("/import", handler.ImportVoters)
	adminRoutes.Put("/:id", handler.UpdateVoter)
	adminRoutes.Delete("/:id", handler.DeleteVoter)
	adminRoutes.Delete("/", handler.DeleteAllVoters)
}

// setupStatsRoutes configures turnout statistics routes
func setupStatsRoutes(router fiber.Router, handler *handlers.StatsHandler) {
	router.Get("/overview", handler.GetOverview)
	router.Get("/turnout", handler.GetTurnout)
}

// setupReportRoutes configures export routes
func setupReportRoutes(router fiber.Router, handler *handlers.ReportHandler) {
	router.Get("/voters", handler.ExportVoters)
}

// setupUserRoutes configures user management routes (Admin only)
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.ListUsers)
	router.Post("/", handler.CreateUser)
	router.Get("/:id", handler.GetUser)
	router.Put("/:id", handler.UpdateUser)
	router.Put("/:id/password", handler.ResetPassword)
	router.Delete("/:id", handler.DeleteUser)
}

// setupAreaRoutes configures voting area catalog routes
func setupAreaRoutes(router fiber.Router, handler *handlers.AreaHandler) {
	router.Get("/", handler.ListAreas)

	adminRoutes := router.Group("")
	adminRoutes.Use(middleware.AdminOnly())
	adminRoutes.Post("/", handler.CreateArea)
	adminRoutes.Delete("/:id", handler.DeleteArea)
}

// setupSettingsRoutes configures election settings routes
func setupSettingsRoutes(router fiber.Router, handler *handlers.SettingsHandler) {
	router.Get("/election", handler.GetSettings)
	router.Put("/election", middleware.AdminOnly(), handler.UpdateSettings)
}
