package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/services"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// NewApp returns a Fiber app with the global middleware stack installed.
func NewApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "portfolio-backend",
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	if cfg.Env != "test" {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
		}))
	}
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())
	app.Use(middleware.Metrics())

	return app
}

// Build wires services, handlers and routes onto a new app.
func Build(cfg *config.Config, db *gorm.DB) *fiber.App {
	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db)
	projectService := services.NewProjectService(db)
	skillService := services.NewSkillService(db)
	messageService := services.NewMessageService(db)

	app := NewApp(cfg)
	Setup(app, cfg, authService,
		handlers.NewAuthHandler(authService, cfg),
		handlers.NewUserHandler(userService),
		handlers.NewProjectHandler(projectService),
		handlers.NewSkillHandler(skillService),
		handlers.NewMessageHandler(messageService),
		handlers.NewHealthHandler(db),
		handlers.NewPageHandler(userService, cfg),
	)
	return app
}

func Setup(
	app *fiber.App,
	cfg *config.Config,
	sessions middleware.SessionParser,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	projectHandler *handlers.ProjectHandler,
	skillHandler *handlers.SkillHandler,
	messageHandler *handlers.MessageHandler,
	healthHandler *handlers.HealthHandler,
	pageHandler *handlers.PageHandler,
) {
	limits := middleware.NewMemoryStorage(5 * time.Minute)
	protected := middleware.JWTProtected(cfg)

	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := app.Group("/api")
	api.Use(middleware.RateLimit("api", cfg.RateLimitAPI, time.Minute, limits))

	api.Get("/health", healthHandler.Check)

	// Auth: stricter per-IP limit
	auth := api.Group("/auth")
	auth.Use(middleware.RateLimit("auth", cfg.RateLimitAuth, time.Minute, limits))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)
	auth.Post("/check-username", authHandler.CheckUsername)
	auth.Post("/check-email", authHandler.CheckEmail)
	auth.Get("/session", authHandler.Session)

	// Owner account and portfolio content
	users := api.Group("/users")
	users.Get("/me", protected, userHandler.Me)
	users.Post("/update-account", protected, userHandler.UpdateAccount)
	users.Post("/update-about", protected, userHandler.UpdateAbout)
	users.Post("/update-status", protected, userHandler.UpdateStatus)
	users.Post("/update-password", protected, authHandler.UpdatePassword)
	users.Post("/update-projects", protected, projectHandler.Save)
	users.Post("/delete-project", protected, projectHandler.Delete)
	users.Put("/update-skills", protected, skillHandler.Save)
	users.Post("/delete-skill", protected, skillHandler.Delete)
	users.Get("/:username", userHandler.Portfolio)

	api.Get("/projects/published", projectHandler.Published)
	api.Get("/projects", protected, projectHandler.List)
	api.Post("/projects", protected, projectHandler.Save)

	api.Get("/skills", protected, skillHandler.List)
	api.Post("/skills", protected, skillHandler.Save)

	// Messages: public submit, owner-only inbox
	api.Post("/messages", middleware.RateLimit("messages", cfg.RateLimitMessages, time.Minute, limits), messageHandler.Send)
	api.Get("/messages", protected, messageHandler.List)
	api.Put("/messages/:id", protected, messageHandler.Update)
	api.Delete("/messages/:id", protected, messageHandler.Delete)

	// Pages
	app.Get("/", func(c *fiber.Ctx) error { return c.Redirect("/dashboard", fiber.StatusFound) })
	app.Get("/login", middleware.RedirectIfAuthenticated(sessions), pageHandler.Login)
	app.Get("/register", middleware.RedirectIfAuthenticated(sessions), pageHandler.Register)
	app.Get("/dashboard", middleware.RequirePage(sessions), pageHandler.Dashboard)

	// Must stay last: matches any single path segment.
	app.Get("/:username", pageHandler.Portfolio)
}
