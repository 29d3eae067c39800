package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cleancity/pickup-service/internal/api/http/handlers"
	"github.com/cleancity/pickup-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Pickups        *handlers.PickupsHandler
	Feedback       *handlers.FeedbackHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireUser())
	authProtected.Post("/logout", cfg.Auth.Logout)
	authProtected.Get("/me", cfg.Auth.Me)

	app.Get("/availability", cfg.Pickups.Availability)

	pickups := app.Group("/pickups", cfg.AuthMiddleware.Handle, auth.RequireUser())
	pickups.Post("", cfg.Pickups.Schedule)
	pickups.Get("", cfg.Pickups.List)
	pickups.Get("/:id", cfg.Pickups.Get)
	pickups.Post("/:id/cancel", cfg.Pickups.Cancel)

	app.Post("/feedback", cfg.Feedback.Submit)
	app.Get("/feedback", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Feedback.List)
}
