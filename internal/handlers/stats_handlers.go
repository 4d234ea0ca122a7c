package handlers

import (
	"net/http"

	"apartment_booking_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// StatsHandler serves the derived aggregate snapshot.
type StatsHandler struct {
	statsService services.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(ss services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: ss}
}

// GetStats returns the last computed stats snapshot. The snapshot is only
// recomputed on booking mutations, never on read.
func (h *StatsHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.statsService.GetStats())
}
