package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/homework-helper-api/pkg/api"
)

// BasicAuth gates routes behind the fixed credential pair from configuration.
// This is a placeholder access control, not a security boundary: a single
// hardcoded user, no sessions, no tokens. It exists so the frontend contract
// holds until a real identity provider replaces it.
func BasicAuth(username, password string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, pass, ok := c.Request.BasicAuth()

		userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(username)) == 1
		passMatch := subtle.ConstantTimeCompare([]byte(pass), []byte(password)) == 1

		if !ok || !userMatch || !passMatch {
			c.Header("WWW-Authenticate", `Basic realm="homework-helper"`)
			problem := api.UnauthorizedError("Invalid credentials")
			c.AbortWithStatusJSON(problem.Status, problem)
			return
		}

		c.Next()
	}
}
