package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-reservations/database"
	"github.com/yeremiapane/restaurant-reservations/models"
)

func TestLoginAndProfile(t *testing.T) {
	app := setupTestApp(t)
	require.NoError(t, database.SeedAdmin(app.db, "admin@example.com", "secret123"))

	w := app.do(t, http.MethodPost, "/login", gin.H{"email": "admin@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodPost, "/login", gin.H{"email": "ADMIN@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeData(t, w, &login)
	require.NotEmpty(t, login.Token)
	assert.Equal(t, models.RoleAdmin, login.User.Role)
	assert.NotContains(t, w.Body.String(), "password")

	w = app.do(t, http.MethodGet, "/admin/profile", nil, "Authorization", "Bearer "+login.Token)
	require.Equal(t, http.StatusOK, w.Code)
	var profile models.User
	decodeData(t, w, &profile)
	assert.Equal(t, "admin@example.com", profile.Email)

	w = app.do(t, http.MethodGet, "/admin/profile", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodGet, "/admin/profile", nil, "Authorization", "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateUserRequiresAdmin(t *testing.T) {
	app := setupTestApp(t)
	body := gin.H{"name": "Host", "email": "host@example.com", "password": "password1", "role": "host"}

	w := app.do(t, http.MethodPost, "/admin/users", body, app.bearer(t, 5, models.RoleHost)...)
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := app.bearer(t, 1, models.RoleAdmin)
	w = app.do(t, http.MethodPost, "/admin/users", body, admin...)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = app.do(t, http.MethodPost, "/admin/users", body, admin...)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email host@example.com is already registered", decodeError(t, w).Message)

	w = app.do(t, http.MethodPost, "/admin/users", gin.H{"name": "X", "email": "x@example.com", "password": "password1", "role": "chef"}, admin...)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSeededMixedCaseAdminCanLogIn(t *testing.T) {
	app := setupTestApp(t)
	require.NoError(t, database.SeedAdmin(app.db, "Admin@Example.com", "secret123"))

	w := app.do(t, http.MethodPost, "/login", gin.H{"email": "Admin@Example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeData(t, w, &login)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, "admin@example.com", login.User.Email)
}
