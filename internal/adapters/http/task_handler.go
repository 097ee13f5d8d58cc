package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/core/internal/application/services"
	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/infrastructure/logger"
	"github.com/taskflow/core/internal/ports"
)

// TaskHandler handles dashboard task requests
type TaskHandler struct {
	taskService *services.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// ListTasks returns the tasks matching the filter query parameter, sorted by
// due date ascending.
func (h *TaskHandler) ListTasks(c echo.Context) error {
	mode := entities.FilterMode(c.QueryParam("filter"))
	if mode == "" {
		mode = entities.FilterAll
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), mode)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidFilterMode) {
			return echo.NewHTTPError(http.StatusBadRequest, "Filter must be all, pending or completed")
		}
		h.logger.Errorw("List tasks failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list tasks")
	}

	if tasks == nil {
		tasks = []entities.Task{}
	}
	return c.JSON(http.StatusOK, tasks)
}

// CreateTask handles task creation
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.AddTask(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Create task failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create task")
	}

	return c.JSON(http.StatusCreated, task)
}

// GetTask handles task lookup by id
func (h *TaskHandler) GetTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Task not found")
		}
		h.logger.Errorw("Get task failed", "error", err, "task_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get task")
	}

	return c.JSON(http.StatusOK, task)
}

// UpdateTask handles task field updates
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	var req ports.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Task not found")
		}
		h.logger.Errorw("Update task failed", "error", err, "task_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update task")
	}

	return c.JSON(http.StatusOK, task)
}

// DeleteTask handles task deletion
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	removed, err := h.taskService.DeleteTask(c.Request().Context(), id)
	if err != nil {
		h.logger.Errorw("Delete task failed", "error", err, "task_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete task")
	}
	if !removed {
		return echo.NewHTTPError(http.StatusNotFound, "Task not found")
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Task deleted"})
}

// ToggleTask flips the completed flag
func (h *TaskHandler) ToggleTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.ToggleComplete(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Task not found")
		}
		h.logger.Errorw("Toggle task failed", "error", err, "task_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to toggle task")
	}

	return c.JSON(http.StatusOK, task)
}

// GetStats returns the aggregate counters
func (h *TaskHandler) GetStats(c echo.Context) error {
	stats, err := h.taskService.GetStats(c.Request().Context())
	if err != nil {
		h.logger.Errorw("Get stats failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute stats")
	}

	return c.JSON(http.StatusOK, stats)
}

func taskID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid task id")
	}
	return id, nil
}
