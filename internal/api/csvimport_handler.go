package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cyclesync/adapters/csvnormalizer"
	"cyclesync/domain/core"
	"cyclesync/internal/errors"
)

// CSVImportHandler exposes the CSV normalizer and cycle-inference lift
// as a single JSON endpoint.
type CSVImportHandler struct{}

// NewCSVImportHandler constructs a CSVImportHandler.
func NewCSVImportHandler() *CSVImportHandler {
	return &CSVImportHandler{}
}

type csvImportRequest struct {
	CSV string `json:"csv" binding:"required"`
}

// Import handles POST /api/v1/csv/import.
func (h *CSVImportHandler) Import(c *gin.Context) {
	var req csvImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidInput(err.Error()))
		return
	}

	result := csvnormalizer.Normalize(req.CSV)

	now := core.Now()
	observations := csvnormalizer.ToObservations(result.Observations, now)
	cycles := csvnormalizer.InferCycles(observations, now)

	c.JSON(http.StatusOK, gin.H{
		"success":      result.Success,
		"observations": observations,
		"errors":       result.Errors,
		"warnings":     result.Warnings,
		"cycles":       cycles,
	})
}
