package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/homework-helper-api/internal/gateway"
	"github.com/nulzo/homework-helper-api/pkg/api"
)

// HistoryHandler exposes the operator-facing dispatch history.
type HistoryHandler struct {
	service gateway.Service
}

func NewHistoryHandler(service gateway.Service) *HistoryHandler {
	return &HistoryHandler{service: service}
}

func (h *HistoryHandler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	logs, err := h.service.History(c.Request.Context(), limit)
	if err != nil {
		_ = c.Error(api.InternalError("Failed to list recent requests", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   logs,
	})
}

func (h *HistoryHandler) Stats(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	stats, err := h.service.Stats(c.Request.Context(), days)
	if err != nil {
		_ = c.Error(api.InternalError("Failed to aggregate request stats", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   stats,
	})
}
