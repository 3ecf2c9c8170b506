package handlers

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"task-api/internal/auth"
	"task-api/internal/models"
	"task-api/internal/repository"
	"task-api/pkg/logger"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 40

	msgInternalError  = "Internal server error"
	msgInvalidRequest = "Invalid request."
	msgMissingFields  = "One or more parts of the request are missing."
	msgIDNotNumber    = "Task id must be a number"
	msgTaskNotFound   = "Task not found"
	msgNoTasks        = "No tasks are available"
	msgTasksRetrieved = "Data retrieved successfully."
	msgTaskFound      = "Task was found."
	msgTaskCreated    = "Task created successfully."
	msgTaskUpdated    = "Task updated successfully"
	msgTaskDeleted    = "Task deleted successfully"
)

type TaskHandler struct {
	tasks    repository.TaskStore
	validate *validator.Validate
	log      *logger.Loggers
}

func NewTaskHandler(tasks repository.TaskStore, validate *validator.Validate, log *logger.Loggers) *TaskHandler {
	return &TaskHandler{tasks: tasks, validate: validate, log: log}
}

// TaskRequest is the body of create and update.
type TaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Status      string `json:"status" validate:"required,oneof=pending in_progress done"`
}

func respond(c *fiber.Ctx, res models.TaskResponse) error {
	return c.Status(res.Status).JSON(res)
}

func fail(c *fiber.Ctx, status int, message string) error {
	return respond(c, models.NewTaskResponse(status, message))
}

// userID returns the id the auth gate put on the request, 0 if none.
func userID(c *fiber.Ctx) int64 {
	if claims, ok := auth.ClaimsFromContext(c.UserContext()); ok {
		return claims.UserID
	}
	return 0
}

// parseTaskID reports false when the id path segment is not an integer.
func parseTaskID(c *fiber.Ctx) (int64, bool) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return 0, false
	}
	return int64(id), true
}

// parseTaskRequest validates the body before anything touches the store.
// On failure it has already written the 400 response.
func (h *TaskHandler) parseTaskRequest(c *fiber.Ctx) (models.TaskInput, bool, error) {
	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		h.log.Audit.Warn("Bad task request body", zap.Error(err))
		return models.TaskInput{}, false, fail(c, fiber.StatusBadRequest, msgInvalidRequest)
	}

	// status dicek lebih dulu supaya pesan error-nya spesifik
	if !models.TaskStatus(req.Status).Valid() {
		h.log.Audit.Warn("Invalid task status", zap.String("status", req.Status))
		return models.TaskInput{}, false, fail(c, fiber.StatusBadRequest, fmt.Sprintf("Status %s is not a valid status", req.Status))
	}
	if err := h.validate.Struct(req); err != nil {
		h.log.Audit.Warn("Validation error in task request", zap.Error(err))
		return models.TaskInput{}, false, fail(c, fiber.StatusBadRequest, msgMissingFields)
	}
	// whitespace-only counts as missing, but the stored text is kept as sent
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		h.log.Audit.Warn("Blank title or description in task request")
		return models.TaskInput{}, false, fail(c, fiber.StatusBadRequest, msgMissingFields)
	}

	return models.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatus(req.Status),
	}, true, nil
}

// pagination reads page and limit, falling back to defaults for missing,
// non-numeric or non-positive values. ok is false when the offset would
// overflow int; no such page can exist.
func pagination(c *fiber.Ctx) (limit, offset int, ok bool) {
	page := c.QueryInt("page", DefaultPage)
	if page < 1 {
		page = DefaultPage
	}
	limit = c.QueryInt("limit", DefaultLimit)
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if page-1 > math.MaxInt/limit {
		return limit, 0, false
	}
	return limit, (page - 1) * limit, true
}

// ListTasks mengambil satu halaman task.
func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	limit, offset, ok := pagination(c)
	if !ok {
		return fail(c, fiber.StatusNotFound, msgNoTasks)
	}

	tasks, err := h.tasks.List(c.UserContext(), limit, offset)
	if err != nil {
		h.log.Error.Error("Error fetching tasks", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, msgInternalError)
	}
	if len(tasks) == 0 {
		return fail(c, fiber.StatusNotFound, msgNoTasks)
	}

	res := models.NewTaskResponse(fiber.StatusOK, msgTasksRetrieved)
	res.TasksList = tasks
	return respond(c, res)
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	id, ok := parseTaskID(c)
	if !ok {
		return fail(c, fiber.StatusNotFound, msgIDNotNumber)
	}

	task, err := h.tasks.GetByID(c.UserContext(), id)
	if errors.Is(err, repository.ErrTaskNotFound) {
		return fail(c, fiber.StatusNotFound, msgTaskNotFound)
	}
	if err != nil {
		h.log.Error.Error("Error fetching task", zap.Int64("task_id", id), zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, msgInternalError)
	}

	res := models.NewTaskResponse(fiber.StatusOK, msgTaskFound)
	res.SingleTask = task
	return respond(c, res)
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	in, ok, err := h.parseTaskRequest(c)
	if !ok {
		return err
	}

	task, err := h.tasks.Create(c.UserContext(), in)
	if err != nil {
		h.log.Error.Error("Error creating task", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, msgInternalError)
	}

	h.log.Audit.Info("Task created", zap.Int64("task_id", task.ID), zap.Int64("user_id", userID(c)))
	res := models.NewTaskResponse(fiber.StatusCreated, msgTaskCreated)
	res.SingleTask = task
	return respond(c, res)
}

// UpdateTask overwrites title, description and status of an existing task.
func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	id, ok := parseTaskID(c)
	if !ok {
		return fail(c, fiber.StatusNotFound, msgIDNotNumber)
	}
	in, ok, err := h.parseTaskRequest(c)
	if !ok {
		return err
	}

	task, err := h.tasks.Update(c.UserContext(), id, in)
	if errors.Is(err, repository.ErrTaskNotFound) {
		return fail(c, fiber.StatusNotFound, msgTaskNotFound)
	}
	if err != nil {
		h.log.Error.Error("Error updating task", zap.Int64("task_id", id), zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, msgInternalError)
	}

	h.log.Audit.Info("Task updated", zap.Int64("task_id", id), zap.Int64("user_id", userID(c)))
	res := models.NewTaskResponse(fiber.StatusOK, msgTaskUpdated)
	res.SingleTask = task
	return respond(c, res)
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	id, ok := parseTaskID(c)
	if !ok {
		return fail(c, fiber.StatusNotFound, msgIDNotNumber)
	}

	err := h.tasks.Delete(c.UserContext(), id)
	if errors.Is(err, repository.ErrTaskNotFound) {
		return fail(c, fiber.StatusNotFound, msgTaskNotFound)
	}
	if err != nil {
		h.log.Error.Error("Error deleting task", zap.Int64("task_id", id), zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, msgInternalError)
	}

	h.log.Audit.Info("Task deleted", zap.Int64("task_id", id), zap.Int64("user_id", userID(c)))
	return respond(c, models.NewTaskResponse(fiber.StatusOK, msgTaskDeleted))
}
