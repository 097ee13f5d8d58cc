package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/core/internal/adapters/repository"
	"github.com/taskflow/core/internal/application/services"
	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/infrastructure/kvstore"
	"github.com/taskflow/core/internal/infrastructure/logger"
)

func newSessionEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := newTestEcho()
	kv := kvstore.NewMemoryStore()
	svc := services.NewSessionService(repository.NewSessionRepository(kv), logger.NewNop())
	h := NewSessionHandler(svc, logger.NewNop())

	g := e.Group("/api/v1/auth")
	g.POST("/login", h.Login)
	g.POST("/signup", h.Signup)
	g.POST("/logout", h.Logout)
	g.GET("/me", h.Me)
	e.PUT("/api/v1/settings/profile", h.SaveProfile)
	return e
}

func TestLoginFlow(t *testing.T) {
	e := newSessionEcho(t)

	// Not logged in yet.
	rec := doRequest(e, http.MethodGet, "/api/v1/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(e, http.MethodPost, "/api/v1/auth/login",
		`{"email":"ada@example.com","password":"pw"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var user entities.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "ada", user.Name)

	rec = doRequest(e, http.MethodGet, "/api/v1/auth/me", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodPost, "/api/v1/auth/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/v1/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginValidation(t *testing.T) {
	e := newSessionEcho(t)

	rec := doRequest(e, http.MethodPost, "/api/v1/auth/login", `{"email":"not-an-email","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(e, http.MethodPost, "/api/v1/auth/login", `{"email":"ada@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignupFlow(t *testing.T) {
	e := newSessionEcho(t)

	rec := doRequest(e, http.MethodPost, "/api/v1/auth/signup",
		`{"name":"Grace","email":"grace@example.com","password":"hunter2"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var user entities.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "Grace", user.Name)
	// The response never echoes a password.
	assert.NotContains(t, rec.Body.String(), "password")

	rec = doRequest(e, http.MethodGet, "/api/v1/auth/me", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSaveProfile(t *testing.T) {
	e := newSessionEcho(t)

	rec := doRequest(e, http.MethodPut, "/api/v1/settings/profile",
		`{"name":"Ada Lovelace","email":"ada@lovelace.dev"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/v1/auth/me", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var user entities.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "Ada Lovelace", user.Name)

	rec = doRequest(e, http.MethodPut, "/api/v1/settings/profile", `{"name":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
