package v1_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/homework-helper-api/internal/config"
	"github.com/nulzo/homework-helper-api/internal/server/middleware"
	v1 "github.com/nulzo/homework-helper-api/internal/server/v1"
	"github.com/nulzo/homework-helper-api/internal/server/validator"
	"github.com/nulzo/homework-helper-api/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLoginEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	validator.InitValidator()

	engine := gin.New()
	engine.Use(middleware.ErrorHandler())

	h := v1.NewLoginHandler(config.AuthConfig{Username: "user", Password: "password123"})
	engine.POST("/login", h.Login)
	return engine
}

func TestLogin_Success(t *testing.T) {
	engine := setupLoginEngine()

	w := postJSON(t, engine, "/login", `{"username": "user", "password": "password123"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp api.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Login successful!", resp.Message)
	assert.Equal(t, "success", resp.Status)
}

func TestLogin_WrongPassword(t *testing.T) {
	engine := setupLoginEngine()

	w := postJSON(t, engine, "/login", `{"username": "user", "password": "wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
	assert.Empty(t, w.Header().Get("Set-Cookie"), "no session is issued")
}

func TestLogin_MissingFields(t *testing.T) {
	engine := setupLoginEngine()

	w := postJSON(t, engine, "/login", `{"username": "user"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
