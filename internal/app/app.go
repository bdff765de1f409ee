package app

import (
	"karoo-backend/internal/access"
	"karoo-backend/internal/agents"
	"karoo-backend/internal/auth"
	"karoo-backend/internal/catalog"
	"karoo-backend/internal/config"
	"karoo-backend/internal/constants"
	"karoo-backend/internal/emails"
	"karoo-backend/internal/health"
	"karoo-backend/internal/inquiries"
	"karoo-backend/internal/middleware"
	"karoo-backend/internal/properties"
	"karoo-backend/internal/reviews"
	"karoo-backend/internal/savedsearches"
	"karoo-backend/internal/seed"
	"karoo-backend/internal/users"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration. db may be nil in tests that only exercise public routes; the
// returned scheduler is nil unless the digest scheduler is enabled.
func CreateApp(cfg *config.Config, db *gorm.DB) (*fiber.App, *savedsearches.Scheduler, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	// CORS before session so preflights never touch Redis.
	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.AllowedOrigin,
	}))

	sessionCfg := middleware.SessionConfig{
		Secret:       cfg.SessionSecret,
		RedisURL:     cfg.RedisURL,
		IsProduction: cfg.Env == "production",
	}
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		sessionHandler, client, err := middleware.Session(sessionCfg)
		if err != nil {
			return nil, nil, err
		}
		rdb = client
		app.Use(sessionHandler)
	}

	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	sched, err := registerRoutes(app, cfg, db, rdb, sessionCfg)
	if err != nil {
		return nil, nil, err
	}
	return app, sched, nil
}

// CreateTestApp wires the app around already-open handles. Tests pass an
// in-memory sqlite DB and a miniredis-backed client.
func CreateTestApp(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})
	app.Use(middleware.CORS(middleware.CORSConfig{AllowedSuffix: cfg.AllowedOrigin}))
	if rdb != nil {
		app.Use(middleware.SessionWithClient(rdb))
	}
	app.Use(middleware.Tracing())

	sessionCfg := middleware.SessionConfig{
		Secret:       cfg.SessionSecret,
		IsProduction: false,
	}
	_, err := registerRoutes(app, cfg, db, rdb, sessionCfg)
	return app, err
}

func registerRoutes(app *fiber.App, cfg *config.Config, db *gorm.DB, rdb *redis.Client,
	sessionCfg middleware.SessionConfig) (*savedsearches.Scheduler, error) {

	mailer := &emails.BrevoClient{APIKey: cfg.BrevoAPIKey, MailFrom: cfg.MailFrom}

	// Health endpoints stay up even without a database.
	healthHandlers := &health.Handlers{Redis: rdb, DB: db}
	app.Get("/health", healthHandlers.Summary)
	app.Get("/health/json", healthHandlers.Full)

	if db == nil {
		return nil, nil
	}

	authService := &auth.Service{DB: db, Rdb: rdb, Emails: mailer, ResetBaseURL: cfg.ResetBaseURL}
	authHandlers := &auth.Handlers{Service: authService, Rdb: rdb, Config: sessionCfg}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/signup", authHandlers.Signup)
	authGroup.Post("/login", authHandlers.Login)
	authGroup.Get("/me", authHandlers.Me)
	authGroup.Delete("/logout", authHandlers.Logout)
	authGroup.Post("/reset-password", authHandlers.ResetPassword)

	catalogService := &catalog.Service{DB: db}
	propService := &properties.Service{DB: db}
	propHandlers := &properties.Handlers{Service: propService, Catalog: catalogService}
	propGroup := app.Group("/api/v1/properties")
	propGroup.Get("/", propHandlers.List)
	propGroup.Get("/featured", propHandlers.Featured)
	propGroup.Get("/:id", propHandlers.GetByID)
	propGroup.Post("/", middleware.RequireAuth(),
		middleware.AuthorizePermission(constants.CreateProperty), propHandlers.Create)
	propGroup.Put("/:id", middleware.RequireAuth(),
		middleware.AuthorizePermission(constants.EditProperty), propHandlers.Update)
	propGroup.Delete("/:id", middleware.RequireAuth(),
		middleware.AuthorizePermission(constants.DeleteProperty), propHandlers.Delete)

	agentService := &agents.Service{DB: db}
	agentHandlers := &agents.Handlers{Service: agentService}
	agentGroup := app.Group("/api/v1/agents")
	agentGroup.Get("/", agentHandlers.List)
	agentGroup.Get("/:id", agentHandlers.GetByID)

	reviewService := &reviews.Service{DB: db, Agents: agentService}
	reviewHandlers := &reviews.Handlers{Service: reviewService}
	reviewGroup := app.Group("/api/v1/reviews")
	reviewGroup.Post("/", middleware.RequireAuth(), reviewHandlers.Create)
	reviewGroup.Get("/property/:id", reviewHandlers.ForProperty)
	reviewGroup.Patch("/:id/approve", middleware.RequireAuth(),
		middleware.AuthorizePermission(constants.ApproveReview), reviewHandlers.Approve)

	inquiryService := &inquiries.Service{DB: db, Properties: propService, Emails: mailer}
	inquiryHandlers := &inquiries.Handlers{Service: inquiryService}
	inquiryGroup := app.Group("/api/v1/inquiries")
	inquiryGroup.Post("/", inquiryHandlers.Create)
	inquiryGroup.Get("/agent", middleware.RequireAuth(),
		middleware.AuthorizePermission(constants.ViewAgentData), inquiryHandlers.ForAgent)
	inquiryGroup.Patch("/:id/respond", middleware.RequireAuth(),
		middleware.AuthorizePermission(constants.RespondInquiry), inquiryHandlers.Respond)
	inquiryGroup.Patch("/:id/status", middleware.RequireAuth(),
		middleware.AuthorizePermission(constants.RespondInquiry), inquiryHandlers.SetStatus)

	userService := &users.Service{DB: db}
	userHandlers := &users.Handlers{Service: userService}
	userGroup := app.Group("/api/v1/users", middleware.RequireAuth())
	userGroup.Get("/profile", userHandlers.Profile)
	userGroup.Put("/profile", userHandlers.UpdateProfile)
	userGroup.Post("/saved-properties/:id", userHandlers.SaveProperty)
	userGroup.Delete("/saved-properties/:id", userHandlers.UnsaveProperty)
	userGroup.Post("/viewed-properties/:id", userHandlers.MarkViewed)

	searchService := &savedsearches.Service{DB: db, Catalog: catalogService}
	searchHandlers := &savedsearches.Handlers{Service: searchService}
	searchGroup := app.Group("/api/v1/saved-searches", middleware.RequireAuth())
	searchGroup.Post("/", searchHandlers.Create)
	searchGroup.Get("/", searchHandlers.List)
	searchGroup.Put("/:id", searchHandlers.Update)
	searchGroup.Delete("/:id", searchHandlers.Delete)

	seedService := &seed.Service{DB: db, Agents: agentService}
	seedHandlers := &seed.Handlers{Service: seedService}
	adminGroup := app.Group("/api/v1/admin", middleware.RequireAuth(),
		middleware.RequireRole(access.RoleAdmin))
	adminGroup.Post("/seed", middleware.AuthorizePermission(constants.RunSeed), seedHandlers.Seed)
	adminGroup.Post("/clear", middleware.AuthorizePermission(constants.RunSeed), seedHandlers.Clear)
	adminGroup.Patch("/promote-role", middleware.AuthorizePermission(constants.ManageUsers), userHandlers.PromoteRole)
	adminGroup.Post("/backfill-roles", middleware.AuthorizePermission(constants.ManageUsers), userHandlers.BackfillRoles)

	var sched *savedsearches.Scheduler
	if cfg.DigestSchedule {
		sched = savedsearches.NewScheduler(searchService, db, mailer)
		if err := sched.Start(); err != nil {
			return nil, err
		}
	}
	return sched, nil
}
