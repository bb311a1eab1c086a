package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taskward/taskward/apperr"
	"github.com/taskward/taskward/events"
	"github.com/taskward/taskward/middleware"
	"github.com/taskward/taskward/tasks"
)

// HandleAllTasks godoc
// @Summary List the caller's tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Task
// @Router /api/tasks [get]
func (h *Handlers) HandleAllTasks(c *fiber.Ctx) error {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		return errMissingIdentity(c)
	}

	list, err := h.tasks.List(c.Context(), caller)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(200).JSON(list)
}

// HandleCreateTask godoc
// @Summary Create a task owned by the caller
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body tasks.CreateInput true "task"
// @Success 201 {object} models.Task
// @Failure 400 {object} map[string]interface{}
// @Router /api/tasks [post]
func (h *Handlers) HandleCreateTask(c *fiber.Ctx) error {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		return errMissingIdentity(c)
	}

	in := new(tasks.CreateInput)
	if err := c.BodyParser(in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error(), "reason": apperr.CodeValidation})
	}

	task, err := h.tasks.Create(c.Context(), caller, *in)
	if err != nil {
		return writeError(c, err)
	}

	h.broker.Publish(caller.ID, events.Event{Type: events.TaskCreated, Task: task})
	return c.Status(201).JSON(task)
}

// HandleGetOneTask godoc
// @Summary Get one of the caller's tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "task id"
// @Success 200 {object} models.Task
// @Failure 404 {object} map[string]interface{}
// @Router /api/tasks/{id} [get]
func (h *Handlers) HandleGetOneTask(c *fiber.Ctx) error {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		return errMissingIdentity(c)
	}

	task, err := h.tasks.Get(c.Context(), caller, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(200).JSON(task)
}

// HandleUpdateTask godoc
// @Summary Patch one of the caller's tasks
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "task id"
// @Param body body tasks.Patch true "fields to change"
// @Success 200 {object} models.Task
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/tasks/{id} [patch]
func (h *Handlers) HandleUpdateTask(c *fiber.Ctx) error {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		return errMissingIdentity(c)
	}

	patch := new(tasks.Patch)
	if err := c.BodyParser(patch); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error(), "reason": apperr.CodeValidation})
	}

	task, err := h.tasks.Update(c.Context(), caller, c.Params("id"), *patch)
	if err != nil {
		return writeError(c, err)
	}

	h.broker.Publish(caller.ID, events.Event{Type: events.TaskUpdated, Task: task})
	return c.Status(200).JSON(task)
}

// HandleDeleteTask godoc
// @Summary Delete one of the caller's tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "task id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/tasks/{id} [delete]
func (h *Handlers) HandleDeleteTask(c *fiber.Ctx) error {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		return errMissingIdentity(c)
	}

	task, err := h.tasks.Delete(c.Context(), caller, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}

	h.broker.Publish(caller.ID, events.Event{Type: events.TaskDeleted, Task: task})
	return c.Status(200).JSON(fiber.Map{
		"message": "Task deleted successfully",
		"task":    task,
	})
}
