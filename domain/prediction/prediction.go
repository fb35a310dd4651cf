// Package prediction holds the Prediction value type and the source
// tag / weight table that the reconciler uses to trust one source
// over another.
package prediction

import (
	"cyclesync/domain/civildate"
	"cyclesync/domain/core"
)

// Source identifies which tracking app or method produced a
// prediction. Unknown tags are accepted and fall back to the default
// weight.
type Source string

const (
	SourceNaturalCycles    Source = "natural-cycles"
	SourceFertilityFriend  Source = "fertility-friend"
	SourceFertileAlgorithm Source = "fertile-algorithm"
	SourceFlo              Source = "flo"
	SourceClue             Source = "clue"
	SourceOvia             Source = "ovia"
	SourceManual           Source = "manual"
	SourceSymptoms         Source = "symptoms"
	SourceCalendar         Source = "calendar"
)

// DefaultFallbackWeight is used for any source tag absent from
// SourceWeights, including unrecognized ones.
const DefaultFallbackWeight = 0.5

// DefaultWeights returns a fresh copy of the authoritative default
// source-weight table. Callers may override any subset; missing keys
// still fall back to DefaultFallbackWeight.
func DefaultWeights() SourceWeights {
	return SourceWeights{
		SourceNaturalCycles:    0.95,
		SourceFertilityFriend:  0.90,
		SourceFertileAlgorithm: 0.85,
		SourceSymptoms:         0.75,
		SourceFlo:              0.70,
		SourceClue:             0.70,
		SourceOvia:             0.65,
		SourceManual:           0.60,
		SourceCalendar:         0.55,
	}
}

// SourceWeights maps a source tag to a trust weight in [0,1]. Missing
// keys resolve to DefaultFallbackWeight via Weight.
type SourceWeights map[Source]float64

// Weight returns the weight for source s, falling back to
// DefaultFallbackWeight when s is not present in the map.
func (w SourceWeights) Weight(s Source) float64 {
	if v, ok := w[s]; ok {
		return v
	}
	return DefaultFallbackWeight
}

// Prediction is a fertile-window claim from one source.
type Prediction struct {
	ID             core.PredictionID `json:"id"`
	Source         Source            `json:"source"`
	FertileStart   civildate.Date    `json:"fertile_start"`
	FertileEnd     civildate.Date    `json:"fertile_end"`
	OvulationDate  *civildate.Date   `json:"ovulation_date,omitempty"`
	Confidence     int               `json:"confidence"` // [0,100]
	CycleID        *core.CycleID     `json:"cycle_id,omitempty"`
	Notes          string            `json:"notes,omitempty"`
	CreatedAt      core.Timestamp    `json:"created_at"`
	UpdatedAt      core.Timestamp    `json:"updated_at"`
}

// Validate checks fertileStart <= fertileEnd. ovulationDate falling
// outside [fertileStart, fertileEnd] is expected to be possible and is
// not rejected here; the reconciler handles source dissent.
func (p Prediction) Validate() error {
	if p.FertileEnd.Before(p.FertileStart) {
		return core.NewValidationError(core.ErrInvalidPrediction, "fertile_end", "must not be before fertile_start")
	}
	if p.Confidence < 0 || p.Confidence > 100 {
		return core.NewValidationError(core.ErrInvalidPrediction, "confidence", "must be in [0,100]")
	}
	return nil
}

// ConfidenceFraction returns the prediction's self-reported confidence
// as a value in [0,1]: Confidence divided by 100, with no default
// substituted for a zero confidence.
func (p Prediction) ConfidenceFraction() float64 {
	return float64(p.Confidence) / 100.0
}

// New constructs a Prediction with freshly minted identity and
// timestamps.
func New(source Source, start, end civildate.Date, confidence int, now core.Timestamp) Prediction {
	return Prediction{
		ID:           core.NewPredictionID(),
		Source:       source,
		FertileStart: start,
		FertileEnd:   end,
		Confidence:   confidence,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
