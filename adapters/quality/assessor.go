// Package quality implements the two read-only façades over cycle
// and observation data: an input-sufficiency assessor for prediction
// purposes (assessor.go) and a historical-data insights report
// (insights.go). Neither alters the reconciled window; both share the
// statistical toolbox in internal/statsutil.
package quality

import (
	"cyclesync/domain/cycle"
	"cyclesync/domain/observation"
	"cyclesync/domain/prediction"
	"cyclesync/internal/statsutil"
)

// Band is the overall qualitative rating of input data quality.
type Band string

const (
	BandExcellent Band = "excellent"
	BandGood      Band = "good"
	BandFair      Band = "fair"
	BandPoor      Band = "poor"
)

// Impact categorizes whether a Factor helped or hurt the score.
type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNegative Impact = "negative"
	ImpactNeutral  Impact = "neutral"
)

// Factor explains one contribution to the overall score.
type Factor struct {
	Name        string `json:"name"`
	Impact      Impact `json:"impact"`
	Description string `json:"description"`
}

// Assessment is the quality assessor's output.
type Assessment struct {
	Band            Band     `json:"band"`
	Score           float64  `json:"score"`
	Factors         []Factor `json:"factors"`
	Recommendations []string `json:"recommendations"`
}

// AssessmentInput bundles everything the assessor scores.
type AssessmentInput struct {
	HistoricalCycles    []cycle.Cycle
	Observations        []observation.Observation
	ExternalPredictions []prediction.Prediction
}

func bandFor(score float64) Band {
	switch {
	case score >= 80:
		return BandExcellent
	case score >= 60:
		return BandGood
	case score >= 40:
		return BandFair
	default:
		return BandPoor
	}
}

// Assess scores input sufficiency for the prediction pipeline.
func Assess(in AssessmentInput) Assessment {
	score := 50.0
	var factors []Factor
	var recommendations []string

	switch n := len(in.HistoricalCycles); {
	case n >= 6:
		score += 15
		factors = append(factors, Factor{"cycle_count", ImpactPositive, "6 or more historical cycles on record"})
	case n >= 3:
		score += 8
		factors = append(factors, Factor{"cycle_count", ImpactPositive, "3 to 5 historical cycles on record"})
	default:
		score -= 5
		factors = append(factors, Factor{"cycle_count", ImpactNegative, "fewer than 3 historical cycles on record"})
		recommendations = append(recommendations, "log a few more cycles to improve calendar predictions")
	}

	if len(in.HistoricalCycles) >= 2 {
		lengths := make([]float64, len(in.HistoricalCycles))
		for i, c := range in.HistoricalCycles {
			lengths[i] = float64(c.Length)
		}
		stdDev := statsutil.PopulationStdDev(lengths)
		switch {
		case stdDev <= 2:
			score += 10
			factors = append(factors, Factor{"regularity", ImpactPositive, "cycle lengths are highly consistent"})
		case stdDev <= 4:
			factors = append(factors, Factor{"regularity", ImpactNeutral, "cycle lengths vary moderately"})
		default:
			score -= 10
			factors = append(factors, Factor{"regularity", ImpactNegative, "cycle lengths vary widely"})
			recommendations = append(recommendations, "irregular cycles reduce calendar-prediction confidence; symptom tracking may help")
		}
	}

	hasOPK := false
	cmCount := 0
	for _, o := range in.Observations {
		switch o.Kind {
		case observation.KindOPK:
			hasOPK = true
		case observation.KindCervicalMucus:
			cmCount++
		}
	}
	if hasOPK {
		score += 20
		factors = append(factors, Factor{"opk_presence", ImpactPositive, "OPK readings present"})
	} else {
		recommendations = append(recommendations, "OPK testing around the expected fertile window sharpens the prediction")
	}

	switch {
	case cmCount >= 7:
		score += 10
		factors = append(factors, Factor{"cm_observations", ImpactPositive, "7 or more cervical-mucus observations"})
	case cmCount >= 1:
		score += 3
		factors = append(factors, Factor{"cm_observations", ImpactNeutral, "1 to 6 cervical-mucus observations"})
	}

	externalSourceCount := len(in.ExternalPredictions)
	if externalSourceCount > 3 {
		externalSourceCount = 3
	}
	if externalSourceCount > 0 {
		score += 5 * float64(externalSourceCount)
		factors = append(factors, Factor{"external_predictions", ImpactPositive, "corroborating predictions from other sources"})
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Assessment{Band: bandFor(score), Score: score, Factors: factors, Recommendations: recommendations}
}
