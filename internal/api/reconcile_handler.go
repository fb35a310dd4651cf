package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cyclesync/adapters/calendarpredictor"
	"cyclesync/adapters/quality"
	"cyclesync/adapters/reconciler"
	"cyclesync/adapters/symptompredictor"
	"cyclesync/domain/civildate"
	"cyclesync/domain/core"
	"cyclesync/domain/cycle"
	"cyclesync/domain/observation"
	"cyclesync/domain/prediction"
	"cyclesync/internal/errors"
)

// ReconcileHandler exposes the calendar/symptom/reconciler/quality
// pipeline as a single JSON endpoint.
type ReconcileHandler struct{}

// NewReconcileHandler constructs a ReconcileHandler. The pipeline it
// wraps is entirely pure; the handler's only job is request shaping
// and supplying "now".
func NewReconcileHandler() *ReconcileHandler {
	return &ReconcileHandler{}
}

type reconcileRequest struct {
	CurrentCycleStart   string                      `json:"current_cycle_start" binding:"required"`
	HistoricalCycles    []reconcileCycleInput       `json:"historical_cycles"`
	Observations        []reconcileObservationInput `json:"observations"`
	ExternalPredictions []reconcilePredictionInput  `json:"external_predictions"`
}

type reconcileCycleInput struct {
	StartDate    string `json:"start_date" binding:"required"`
	Length       int    `json:"length"`
	PeriodLength int    `json:"period_length"`
}

type reconcileObservationInput struct {
	Date        string  `json:"date" binding:"required"`
	Kind        string  `json:"kind" binding:"required"`
	CMValue     string  `json:"cm_value,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	OPKValue    string  `json:"opk_value,omitempty"`
	SymptomTag  string  `json:"symptom_tag,omitempty"`
	Severity    int     `json:"severity,omitempty"`
}

type reconcilePredictionInput struct {
	Source        string `json:"source" binding:"required"`
	FertileStart  string `json:"fertile_start" binding:"required"`
	FertileEnd    string `json:"fertile_end" binding:"required"`
	OvulationDate string `json:"ovulation_date,omitempty"`
	Confidence    int    `json:"confidence"`
}

// Reconcile handles POST /api/v1/reconcile.
func (h *ReconcileHandler) Reconcile(c *gin.Context) {
	var req reconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidInput(err.Error()))
		return
	}

	currentStart, err := civildate.Parse(req.CurrentCycleStart)
	if err != nil {
		respondError(c, errors.InvalidInput("current_cycle_start: "+err.Error()))
		return
	}

	now := core.Now()

	history, err := toCycles(req.HistoricalCycles, now)
	if err != nil {
		respondError(c, errors.InvalidInput(err.Error()))
		return
	}

	obs, err := toObservations(req.Observations, now)
	if err != nil {
		respondError(c, errors.InvalidInput(err.Error()))
		return
	}

	externals, err := toPredictions(req.ExternalPredictions, now)
	if err != nil {
		respondError(c, errors.InvalidInput(err.Error()))
		return
	}

	predictions := []prediction.Prediction{calendarpredictor.Predict(currentStart, history, calendarpredictor.DefaultOptions(), now)}
	if sp, ok := symptompredictor.Predict(obs, symptompredictor.DefaultOptions(), now); ok {
		predictions = append(predictions, sp)
	}
	predictions = append(predictions, externals...)

	result, ok := reconciler.Reconcile(predictions, prediction.DefaultWeights(), reconciler.DefaultOptions())
	if !ok {
		respondError(c, core.ErrInsufficientData)
		return
	}

	assessment := quality.Assess(quality.AssessmentInput{
		HistoricalCycles:    history,
		Observations:        obs,
		ExternalPredictions: externals,
	})

	c.JSON(http.StatusOK, gin.H{
		"reconciled": result,
		"assessment": assessment,
	})
}

func toCycles(in []reconcileCycleInput, now core.Timestamp) ([]cycle.Cycle, error) {
	out := make([]cycle.Cycle, 0, len(in))
	for _, c := range in {
		start, err := civildate.Parse(c.StartDate)
		if err != nil {
			return nil, err
		}
		cy := cycle.New(start, c.Length, c.PeriodLength, "", now)
		out = append(out, cy)
	}
	return out, nil
}

func toObservations(in []reconcileObservationInput, now core.Timestamp) ([]observation.Observation, error) {
	out := make([]observation.Observation, 0, len(in))
	for _, o := range in {
		date, err := civildate.Parse(o.Date)
		if err != nil {
			return nil, err
		}
		switch observation.Kind(o.Kind) {
		case observation.KindCervicalMucus:
			out = append(out, observation.NewCervicalMucus(date, observation.CMValue(o.CMValue), now))
		case observation.KindBBT:
			out = append(out, observation.NewBBT(date, o.Temperature, "", now))
		case observation.KindOPK:
			out = append(out, observation.NewOPK(date, observation.OPKValue(o.OPKValue), now))
		case observation.KindSymptom:
			out = append(out, observation.NewSymptom(date, o.SymptomTag, observation.Severity(o.Severity), now))
		}
	}
	return out, nil
}

func toPredictions(in []reconcilePredictionInput, now core.Timestamp) ([]prediction.Prediction, error) {
	out := make([]prediction.Prediction, 0, len(in))
	for _, p := range in {
		start, err := civildate.Parse(p.FertileStart)
		if err != nil {
			return nil, err
		}
		end, err := civildate.Parse(p.FertileEnd)
		if err != nil {
			return nil, err
		}
		pred := prediction.New(prediction.Source(p.Source), start, end, p.Confidence, now)
		if p.OvulationDate != "" {
			ov, err := civildate.Parse(p.OvulationDate)
			if err != nil {
				return nil, err
			}
			pred.OvulationDate = &ov
		}
		out = append(out, pred)
	}
	return out, nil
}
