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

// CalendarHandler handles calendar view requests
type CalendarHandler struct {
	calendarService *services.CalendarService
	logger          *logger.Logger
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(calendarService *services.CalendarService, logger *logger.Logger) *CalendarHandler {
	return &CalendarHandler{
		calendarService: calendarService,
		logger:          logger,
	}
}

// MonthGrid returns the grid for /calendar/:year/:month. The month segment
// is zero-based, like the rest of the calendar interface.
func (h *CalendarHandler) MonthGrid(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid year")
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid month")
	}

	grid, err := h.calendarService.MonthGrid(c.Request().Context(), year, month)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidMonth) {
			return echo.NewHTTPError(http.StatusBadRequest, "Month must be in [0,11]")
		}
		h.logger.Errorw("Month grid failed", "error", err, "year", year, "month", month)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to build month grid")
	}

	return c.JSON(http.StatusOK, grid)
}

// ListTasks returns the calendar task collection
func (h *CalendarHandler) ListTasks(c echo.Context) error {
	tasks, err := h.calendarService.ListTasks(c.Request().Context())
	if err != nil {
		h.logger.Errorw("List calendar tasks failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list calendar tasks")
	}

	if tasks == nil {
		tasks = []entities.CalendarTask{}
	}
	return c.JSON(http.StatusOK, tasks)
}

// CreateTask handles the add-task modal submission
func (h *CalendarHandler) CreateTask(c echo.Context) error {
	var req ports.CreateCalendarTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.calendarService.AddTask(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Create calendar task failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create calendar task")
	}

	return c.JSON(http.StatusCreated, task)
}

// DeleteTask removes a calendar task
func (h *CalendarHandler) DeleteTask(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid calendar task id")
	}

	removed, err := h.calendarService.DeleteTask(c.Request().Context(), id)
	if err != nil {
		h.logger.Errorw("Delete calendar task failed", "error", err, "task_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete calendar task")
	}
	if !removed {
		return echo.NewHTTPError(http.StatusNotFound, "Calendar task not found")
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Calendar task deleted"})
}
