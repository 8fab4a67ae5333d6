package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alumbridge/scholarship-service/internal/models"
	"github.com/alumbridge/scholarship-service/internal/services"
	"github.com/alumbridge/scholarship-service/internal/utils"
)

type StatsHandler struct {
	BaseHandler
	service services.StatsService
}

func NewStatsHandler(service services.StatsService, logger utils.Logger) *StatsHandler {
	return &StatsHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GetStats returns the portal-wide counters for the landing view.
func (h *StatsHandler) GetStats(c *gin.Context) {
	h.LogRequest(c, "Computing stats snapshot")

	snapshot, err := h.service.Snapshot(c.Request.Context())
	if err != nil {
		h.LogError(c, err, "Stats snapshot failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
