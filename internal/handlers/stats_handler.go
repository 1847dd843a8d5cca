package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/services"
)

// StatsHandler handles income statistics requests.
type StatsHandler struct {
	statsService services.StatsServicer
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService services.StatsServicer) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// IncomeStats returns income aggregations for the trailing 30 days
// @Summary     Income statistics
// @Description Per-date and per-source income totals over the trailing 30 days
// @Tags        stats
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.IncomeStats "Income statistics"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income-stats [get]
func (h *StatsHandler) IncomeStats(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.statsService.IncomeStats(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
