package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/core/internal/application/services"
	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/infrastructure/logger"
	"github.com/taskflow/core/internal/ports"
)

// SessionHandler handles the login/signup/settings forms
type SessionHandler struct {
	sessionService *services.SessionService
	logger         *logger.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *services.SessionService, logger *logger.Logger) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		logger:         logger,
	}
}

// Login handles user login
func (h *SessionHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.sessionService.Login(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Login failed", "error", err, "email", req.Email)
		return echo.NewHTTPError(http.StatusInternalServerError, "Login failed")
	}

	return c.JSON(http.StatusOK, user)
}

// Signup handles account creation
func (h *SessionHandler) Signup(c echo.Context) error {
	var req ports.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.sessionService.Signup(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Signup failed", "error", err, "email", req.Email)
		return echo.NewHTTPError(http.StatusInternalServerError, "Signup failed")
	}

	return c.JSON(http.StatusCreated, user)
}

// Logout clears the session
func (h *SessionHandler) Logout(c echo.Context) error {
	if err := h.sessionService.Logout(c.Request().Context()); err != nil {
		h.logger.Errorw("Logout failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Logout failed")
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

// Me returns the current session user
func (h *SessionHandler) Me(c echo.Context) error {
	user, err := h.sessionService.Current(c.Request().Context())
	if err != nil {
		if errors.Is(err, entities.ErrNotLoggedIn) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Not logged in")
		}
		h.logger.Errorw("Get session failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read session")
	}

	return c.JSON(http.StatusOK, user)
}

// SaveProfile handles the settings form
func (h *SessionHandler) SaveProfile(c echo.Context) error {
	var req ports.SaveProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.sessionService.SaveProfile(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Save profile failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save profile")
	}

	return c.JSON(http.StatusOK, user)
}
