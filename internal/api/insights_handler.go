package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cyclesync/adapters/quality"
	"cyclesync/domain/core"
	"cyclesync/internal/errors"
)

// InsightsHandler exposes the historical-data insights façade as a
// JSON endpoint.
type InsightsHandler struct{}

// NewInsightsHandler constructs an InsightsHandler.
func NewInsightsHandler() *InsightsHandler {
	return &InsightsHandler{}
}

type insightsRequest struct {
	Cycles       []reconcileCycleInput       `json:"cycles" binding:"required"`
	Observations []reconcileObservationInput `json:"observations"`
}

// Insights handles POST /api/v1/quality/insights. Observations are
// accepted as part of the request shape for symmetry with the other
// pipeline endpoints, but the computation itself operates purely over
// cycle-length history.
func (h *InsightsHandler) Insights(c *gin.Context) {
	var req insightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidInput(err.Error()))
		return
	}

	now := core.Now()
	cycles, err := toCycles(req.Cycles, now)
	if err != nil {
		respondError(c, errors.InvalidInput(err.Error()))
		return
	}

	c.JSON(http.StatusOK, quality.Insight(cycles))
}
