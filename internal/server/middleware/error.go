package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/homework-helper-api/internal/platform/logger"
	"github.com/nulzo/homework-helper-api/pkg/api"
	"go.uber.org/zap"
)

// ErrorHandler renders errors attached by handlers. Problems serialize per
// RFC 9457 with their own status; anything else collapses to a 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		if problem, ok := err.(*api.Problem); ok {
			// if there is an internal error attached, log it server-side
			if problem.Log != nil {
				logger.Error("Request failed",
					zap.Int("status", problem.Status),
					zap.String("title", problem.Title),
					zap.Error(problem.Log),
				)
			}

			// RFC 9457 dictates the json is at the root
			c.JSON(problem.Status, problem)
			c.Abort()
			return
		}

		logger.Error("Unhandled error", zap.Error(err))

		c.JSON(http.StatusInternalServerError, api.NewProblem(
			http.StatusInternalServerError,
			"Internal Server Error",
			"An unexpected error occurred.",
		))
		c.Abort()
	}
}
