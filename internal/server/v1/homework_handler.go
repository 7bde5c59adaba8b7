package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/homework-helper-api/internal/gateway"
	"github.com/nulzo/homework-helper-api/internal/server/validator"
	"github.com/nulzo/homework-helper-api/pkg/api"
)

type HomeworkHandler struct {
	service gateway.Service
}

func NewHomeworkHandler(service gateway.Service) *HomeworkHandler {
	return &HomeworkHandler{service: service}
}

// Process validates the payload and hands it to the dispatch router. Anything
// outside the {gemini, llama} enumeration is rejected here, before dispatch.
func (h *HomeworkHandler) Process(c *gin.Context) {
	var req api.HomeworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(api.ValidationError(validator.ParseValidationError(err)))
		return
	}

	resp, err := h.service.Process(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
