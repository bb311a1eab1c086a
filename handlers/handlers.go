package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taskward/taskward/apperr"
	"github.com/taskward/taskward/auth"
	"github.com/taskward/taskward/events"
	"github.com/taskward/taskward/tasks"
)

// errMissingIdentity rejects a request that reached a protected
// handler without a resolved identity. The router keeps every such
// route behind the auth middleware, so hitting this means a route was
// wired wrong; answering 401 keeps the ownership scoping intact even
// then.
func errMissingIdentity(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"error": "missing token", "reason": apperr.CodeNoToken})
}

// Handlers holds the services the HTTP layer dispatches to. It is
// constructed once at startup with its dependencies.
type Handlers struct {
	auth   *auth.Service
	tasks  *tasks.Service
	broker *events.Broker
}

func New(authSvc *auth.Service, taskSvc *tasks.Service, broker *events.Broker) *Handlers {
	return &Handlers{auth: authSvc, tasks: taskSvc, broker: broker}
}

// HandleHealthCheck godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handlers) HandleHealthCheck(c *fiber.Ctx) error {
	return c.Status(200).JSON(fiber.Map{"status": "ok"})
}

// writeError maps a service error onto the documented response shape:
// a short message, a machine-readable reason and, for validation
// errors, the list of offending fields.
func writeError(c *fiber.Ctx, err error) error {
	code := apperr.CodeOf(err)
	message := err.Error()
	if code == apperr.CodeInternal {
		message = "internal server error"
	}
	body := fiber.Map{"error": message, "reason": code}
	if fields := apperr.FieldsOf(err); len(fields) > 0 {
		body["emptyFields"] = fields
	}
	return c.Status(code.HTTPStatus()).JSON(body)
}
