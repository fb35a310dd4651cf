// Package reconciled holds the pipeline's terminal output type: a
// single fused fertile-window prediction plus the diagnostics that
// explain how it was derived.
package reconciled

import (
	"cyclesync/domain/civildate"
	"cyclesync/domain/prediction"
)

// DayProbability is one date's fused fertility probability, emitted
// in ascending date order.
type DayProbability struct {
	Date        civildate.Date `json:"date"`
	Probability float64        `json:"probability"`
}

// Diagnostics carries the reconciler's supporting evidence: why the
// window and confidence came out the way they did.
type Diagnostics struct {
	SourceAgreement  float64                  `json:"source_agreement"`
	Outliers         []prediction.Source      `json:"outliers"`
	EffectiveWeights map[prediction.Source]float64 `json:"effective_weights"`
	DayProbabilities []DayProbability         `json:"day_probabilities"`
	InputPredictions int                      `json:"input_predictions"`
}

// ReconciledPrediction is the pipeline's output: a unified fertile
// window with calibrated confidence and a human-readable explanation.
type ReconciledPrediction struct {
	FertileStart  civildate.Date  `json:"fertile_start"`
	FertileEnd    civildate.Date  `json:"fertile_end"`
	OvulationDate *civildate.Date `json:"ovulation_date,omitempty"`
	Confidence    float64         `json:"confidence"` // [0,1]
	Explanation   []string        `json:"explanation"`
	Diagnostics   Diagnostics     `json:"diagnostics"`
}
