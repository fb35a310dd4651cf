package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cyclesync/domain/core"
	"cyclesync/domain/cycle"
	"cyclesync/domain/observation"
	"cyclesync/domain/prediction"
	"cyclesync/internal/errors"
	"cyclesync/ports"
)

// StoreHandler exposes basic CRUD over the persistence contract
// (cycles, predictions, observations) so external clients can record
// history for the pipeline endpoints to consume on a later call.
type StoreHandler struct {
	cycles       ports.CycleRepository
	predictions  ports.PredictionRepository
	observations ports.ObservationRepository
}

// NewStoreHandler constructs a StoreHandler over the three
// persistence repositories.
func NewStoreHandler(cycles ports.CycleRepository, predictions ports.PredictionRepository, observations ports.ObservationRepository) *StoreHandler {
	return &StoreHandler{cycles: cycles, predictions: predictions, observations: observations}
}

func listParams(c *gin.Context) (limit, offset int) {
	limit, offset = 50, 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

// ListCycles handles GET /api/v1/cycles.
func (h *StoreHandler) ListCycles(c *gin.Context) {
	limit, offset := listParams(c)
	cycles, err := h.cycles.List(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cycles": cycles})
}

// UpsertCycle handles POST /api/v1/cycles.
func (h *StoreHandler) UpsertCycle(c *gin.Context) {
	var cy cycle.Cycle
	if err := c.ShouldBindJSON(&cy); err != nil {
		respondError(c, errors.InvalidInput(err.Error()))
		return
	}
	if err := cy.Validate(); err != nil {
		respondError(c, err)
		return
	}
	if cy.ID == "" {
		cy.ID = core.NewCycleID()
	}
	now := core.Now()
	if cy.CreatedAt.IsZero() {
		cy.CreatedAt = now
	}
	cy.UpdatedAt = now

	if err := h.cycles.Upsert(c.Request.Context(), &cy); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cy)
}

// DeleteCycle handles DELETE /api/v1/cycles/:id.
func (h *StoreHandler) DeleteCycle(c *gin.Context) {
	id := core.CycleID(c.Param("id"))
	if err := h.cycles.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListObservations handles GET /api/v1/observations.
func (h *StoreHandler) ListObservations(c *gin.Context) {
	limit, offset := listParams(c)
	obs, err := h.observations.List(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"observations": obs})
}

// UpsertObservation handles POST /api/v1/observations.
func (h *StoreHandler) UpsertObservation(c *gin.Context) {
	var o observation.Observation
	if err := c.ShouldBindJSON(&o); err != nil {
		respondError(c, errors.InvalidInput(err.Error()))
		return
	}
	if err := o.Validate(); err != nil {
		respondError(c, err)
		return
	}
	if o.ID == "" {
		o.ID = core.NewObservationID()
	}
	now := core.Now()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now

	if err := h.observations.Upsert(c.Request.Context(), &o); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// DeleteObservation handles DELETE /api/v1/observations/:id.
func (h *StoreHandler) DeleteObservation(c *gin.Context) {
	id := core.ObservationID(c.Param("id"))
	if err := h.observations.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListPredictions handles GET /api/v1/predictions.
func (h *StoreHandler) ListPredictions(c *gin.Context) {
	limit, offset := listParams(c)
	preds, err := h.predictions.List(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"predictions": preds})
}

// UpsertPrediction handles POST /api/v1/predictions.
func (h *StoreHandler) UpsertPrediction(c *gin.Context) {
	var p prediction.Prediction
	if err := c.ShouldBindJSON(&p); err != nil {
		respondError(c, errors.InvalidInput(err.Error()))
		return
	}
	if err := p.Validate(); err != nil {
		respondError(c, err)
		return
	}
	if p.ID == "" {
		p.ID = core.NewPredictionID()
	}
	now := core.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	if err := h.predictions.Upsert(c.Request.Context(), &p); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeletePrediction handles DELETE /api/v1/predictions/:id.
func (h *StoreHandler) DeletePrediction(c *gin.Context) {
	id := core.PredictionID(c.Param("id"))
	if err := h.predictions.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
