package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cyclesync/domain/civildate"
	"cyclesync/domain/core"
	"cyclesync/domain/cycle"
)

func TestStoreHandler_ListCycles(t *testing.T) {
	cycles := &mockCycleRepository{}
	start, _ := civildate.Parse("2026-06-01")
	stored := []*cycle.Cycle{{ID: core.NewCycleID(), StartDate: start, Length: 28, PeriodLength: 5}}
	cycles.On("List", mock.Anything, 50, 0).Return(stored, nil)

	h := NewStoreHandler(cycles, &mockPredictionRepository{}, &mockObservationRepository{})
	r := newTestRouter()
	r.GET("/api/v1/cycles", h.ListCycles)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cycles", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2026-06-01")
	cycles.AssertExpectations(t)
}

func TestStoreHandler_UpsertCycle_MintsIDAndTimestamps(t *testing.T) {
	cycles := &mockCycleRepository{}
	cycles.On("Upsert", mock.Anything, mock.MatchedBy(func(c *cycle.Cycle) bool {
		return c.ID != "" && !c.CreatedAt.IsZero() && !c.UpdatedAt.IsZero()
	})).Return(nil)

	h := NewStoreHandler(cycles, &mockPredictionRepository{}, &mockObservationRepository{})
	r := newTestRouter()
	r.POST("/api/v1/cycles", h.UpsertCycle)

	body := `{"start_date": "2026-06-01", "length": 28, "period_length": 5}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cycles", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	cycles.AssertExpectations(t)
}

func TestStoreHandler_UpsertCycle_InvalidLengthRejected(t *testing.T) {
	cycles := &mockCycleRepository{}
	h := NewStoreHandler(cycles, &mockPredictionRepository{}, &mockObservationRepository{})
	r := newTestRouter()
	r.POST("/api/v1/cycles", h.UpsertCycle)

	body := `{"start_date": "2026-06-01", "length": 3, "period_length": 5}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cycles", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	cycles.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestStoreHandler_DeleteCycle(t *testing.T) {
	cycles := &mockCycleRepository{}
	id := core.NewCycleID()
	cycles.On("Delete", mock.Anything, id).Return(nil)

	h := NewStoreHandler(cycles, &mockPredictionRepository{}, &mockObservationRepository{})
	r := newTestRouter()
	r.DELETE("/api/v1/cycles/:id", h.DeleteCycle)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cycles/"+string(id), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	cycles.AssertExpectations(t)
}

func TestStoreHandler_DeleteCycle_NotFound(t *testing.T) {
	cycles := &mockCycleRepository{}
	id := core.NewCycleID()
	cycles.On("Delete", mock.Anything, id).Return(core.NewNotFoundError("cycle", string(id)))

	h := NewStoreHandler(cycles, &mockPredictionRepository{}, &mockObservationRepository{})
	r := newTestRouter()
	r.DELETE("/api/v1/cycles/:id", h.DeleteCycle)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cycles/"+string(id), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
