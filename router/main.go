package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taskward/taskward/handlers"
)

// SetupRoutes wires the HTTP surface. Everything under /api sits
// behind the auth middleware; signup, login and health do not.
func SetupRoutes(app *fiber.App, h *handlers.Handlers, requireAuth fiber.Handler) {
	app.Get("/health", h.HandleHealthCheck)

	user := app.Group("/user")
	user.Post("/signup", h.HandleSignup)
	user.Post("/login", h.HandleLogin)

	api := app.Group("/api", requireAuth)

	api.Get("/tasks", h.HandleAllTasks)
	api.Post("/tasks", h.HandleCreateTask)
	api.Get("/tasks/:id", h.HandleGetOneTask)
	api.Patch("/tasks/:id", h.HandleUpdateTask)
	api.Delete("/tasks/:id", h.HandleDeleteTask)
	api.Get("/events", h.HandleTaskEvents)
}
