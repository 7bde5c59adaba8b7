package v1

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/homework-helper-api/internal/config"
	"github.com/nulzo/homework-helper-api/internal/server/validator"
	"github.com/nulzo/homework-helper-api/pkg/api"
)

// LoginHandler implements the placeholder fixed-credential login. No session
// or token is issued on success; the frontend only checks the status field.
type LoginHandler struct {
	auth config.AuthConfig
}

func NewLoginHandler(auth config.AuthConfig) *LoginHandler {
	return &LoginHandler{auth: auth}
}

func (h *LoginHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(api.ValidationError(validator.ParseValidationError(err)))
		return
	}

	userMatch := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.auth.Username)) == 1
	passMatch := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.auth.Password)) == 1

	if !userMatch || !passMatch {
		c.Header("WWW-Authenticate", "Bearer")
		_ = c.Error(api.UnauthorizedError("Invalid credentials"))
		return
	}

	c.JSON(http.StatusOK, api.LoginResponse{
		Message: "Login successful!",
		Status:  "success",
	})
}
