package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/resume-review-service/internal/api/http/handlers"
	"github.com/spec-kit/resume-review-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Admin          *handlers.AdminHandler
	Resumes        *handlers.ResumesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	users := app.Group("/users")
	users.Post("/register", cfg.Users.Register)
	users.Post("/login", cfg.Users.Login)
	users.Post("/refresh_token", cfg.Users.Refresh)
	users.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Users.Logout)

	resumes := app.Group("/resumes", cfg.AuthMiddleware.Handle)
	resumes.Post("/upload", cfg.Resumes.Upload)
	resumes.Get("/download/:id", cfg.Resumes.Download)
	resumes.Get("/mine", cfg.Resumes.Mine)
	resumes.Get("/expert/all", auth.RequireExpert(), cfg.Resumes.ExpertAll)
	resumes.Delete("/:id", cfg.Resumes.Delete)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Patch("/users/:id/role", cfg.Admin.UpdateRole)
	admin.Patch("/users/:id/activation", cfg.Admin.ToggleActivation)
	admin.Get("/stats", cfg.Admin.Stats)
}
