// Package calendarpredictor implements C3: a fertile-window
// prediction derived purely from a cycle start date and the user's
// historical cycle lengths. It holds no state and performs no I/O.
package calendarpredictor

import (
	"cyclesync/domain/civildate"
	"cyclesync/domain/core"
	"cyclesync/domain/cycle"
	"cyclesync/domain/prediction"
	"cyclesync/internal/statsutil"
)

// Options tunes the calendar model. Zero-valued fields are replaced
// by their defaults in Predict/Multi.
type Options struct {
	LutealPhaseLength   int // L, default 14
	DaysBeforeOvulation int // B, default 5
	DaysAfterOvulation  int // A, default 1
	RegularityBonus     int // R, default 10
}

// DefaultOptions returns the model's default tuning.
func DefaultOptions() Options {
	return Options{LutealPhaseLength: 14, DaysBeforeOvulation: 5, DaysAfterOvulation: 1, RegularityBonus: 10}
}

func (o Options) withDefaults() Options {
	if o.LutealPhaseLength == 0 {
		o.LutealPhaseLength = 14
	}
	if o.DaysBeforeOvulation == 0 {
		o.DaysBeforeOvulation = 5
	}
	if o.DaysAfterOvulation == 0 {
		o.DaysAfterOvulation = 1
	}
	if o.RegularityBonus == 0 {
		o.RegularityBonus = 10
	}
	return o
}

const (
	minConfidence = 20
	maxConfidence = 80
)

func clampConfidence(c int) int {
	if c < minConfidence {
		return minConfidence
	}
	if c > maxConfidence {
		return maxConfidence
	}
	return c
}

// historicalStats returns the average cycle length (rounded) and the
// population standard deviation of historical cycle lengths. An empty
// history yields (28, 5); a one-cycle history yields (its length, 5).
func historicalStats(history []cycle.Cycle) (avgLength int, stdDev float64) {
	if len(history) == 0 {
		return 28, 5
	}
	lengths := make([]float64, len(history))
	for i, c := range history {
		lengths[i] = float64(c.Length)
	}
	mean := statsutil.Mean(lengths)
	avgLength = int(mean + 0.5)

	if len(history) < 2 {
		return avgLength, 5
	}
	return avgLength, statsutil.PopulationStdDev(lengths)
}

// Predict produces a single fertile-window prediction for the cycle
// starting at start, using history for calibration. History may be
// empty.
func Predict(start civildate.Date, history []cycle.Cycle, opts Options, now core.Timestamp) prediction.Prediction {
	opts = opts.withDefaults()

	avgLength, stdDev := historicalStats(history)
	ovulationOffset := avgLength - opts.LutealPhaseLength

	windowStart := start.AddDays(ovulationOffset - opts.DaysBeforeOvulation)
	windowEnd := start.AddDays(ovulationOffset + opts.DaysAfterOvulation)
	ovulationDate := start.AddDays(ovulationOffset)

	confidence := 55
	if len(history) >= 6 {
		confidence += 10
	} else if len(history) >= 3 {
		confidence += 5
	}
	confidence = clampConfidence(confidence)

	switch {
	case stdDev <= 2:
		confidence += opts.RegularityBonus
	case stdDev <= 4:
		confidence += opts.RegularityBonus / 2
	case stdDev > 6:
		confidence -= 15
	}
	confidence = clampConfidence(confidence)

	p := prediction.New(prediction.SourceManual, windowStart, windowEnd, confidence, now)
	p.OvulationDate = &ovulationDate
	return p
}

// Multi produces n consecutive predictions, each seeded avgLength days
// after the prior one's start, with confidence decaying 10 points per
// step down to a floor of 20.
func Multi(start civildate.Date, history []cycle.Cycle, n int, opts Options, now core.Timestamp) []prediction.Prediction {
	if n <= 0 {
		return nil
	}
	opts = opts.withDefaults()
	avgLength, _ := historicalStats(history)

	out := make([]prediction.Prediction, 0, n)
	seed := start
	for i := 0; i < n; i++ {
		p := Predict(seed, history, opts, now)
		decayed := p.Confidence - 10*i
		if decayed < 20 {
			decayed = 20
		}
		p.Confidence = decayed
		out = append(out, p)
		seed = seed.AddDays(avgLength)
	}
	return out
}
