package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/core/internal/application/services"
	"github.com/taskflow/core/internal/infrastructure/logger"
)

// ReportHandler serves the read-only reports view
type ReportHandler struct {
	reportService *services.ReportService
	logger        *logger.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService, logger *logger.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// GetReport returns stats, the priority breakdown and the overdue list
func (h *ReportHandler) GetReport(c echo.Context) error {
	report, err := h.reportService.BuildReport(c.Request().Context(), time.Now())
	if err != nil {
		h.logger.Errorw("Build report failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to build report")
	}

	return c.JSON(http.StatusOK, report)
}
