package quality

import (
	"cyclesync/domain/cycle"
	"cyclesync/internal/statsutil"
)

// AnomalyFlag marks a cycle whose length or period length falls
// outside a fixed bound (see the thresholds below).
type AnomalyFlag string

const (
	FlagShortCycle AnomalyFlag = "short_cycle"
	FlagLongCycle  AnomalyFlag = "long_cycle"
	FlagLongPeriod AnomalyFlag = "long_period"
)

// CycleAnomaly reports one cycle's z-score against the historical
// length distribution and its tail probability.
type CycleAnomaly struct {
	CycleIndex      int     `json:"cycle_index"`
	Length          int     `json:"length"`
	ZScore          float64 `json:"z_score"`
	TailProbability float64 `json:"tail_probability"`
}

// CycleFlags attaches flags to one cycle by index.
type CycleFlags struct {
	CycleIndex int           `json:"cycle_index"`
	Flags      []AnomalyFlag `json:"flags"`
}

// Insights is the data-quality insights endpoint's output: a
// user-facing read on historical cycle data, distinct from the
// input-sufficiency Assessment.
type Insights struct {
	Regularity float64        `json:"regularity"` // population stdev of cycle lengths
	Drift      float64        `json:"drift"`       // OLS slope of length against cycle order
	Anomalies  []CycleAnomaly `json:"anomalies"`
	Flags      []CycleFlags   `json:"flags"`
}

const (
	shortCycleThreshold = 21
	longCycleThreshold  = 35
	longPeriodThreshold = 7
	anomalyZThreshold   = 2.0
)

// Insight computes regularity, drift, z-score anomalies, and
// short/long-cycle and long-period flags over a user's historical
// cycles.
func Insight(cycles []cycle.Cycle) Insights {
	if len(cycles) == 0 {
		return Insights{}
	}

	lengths := make([]float64, len(cycles))
	for i, c := range cycles {
		lengths[i] = float64(c.Length)
	}
	mean := statsutil.Mean(lengths)
	stdDev := statsutil.PopulationStdDev(lengths)

	var anomalies []CycleAnomaly
	var flags []CycleFlags

	for i, c := range cycles {
		z := statsutil.ZScore(float64(c.Length), mean, stdDev)
		if abs(z) > anomalyZThreshold {
			anomalies = append(anomalies, CycleAnomaly{
				CycleIndex:      i,
				Length:          c.Length,
				ZScore:          z,
				TailProbability: statsutil.TailProbability(z),
			})
		}

		var cf []AnomalyFlag
		if c.Length < shortCycleThreshold {
			cf = append(cf, FlagShortCycle)
		}
		if c.Length > longCycleThreshold {
			cf = append(cf, FlagLongCycle)
		}
		if c.PeriodLength > longPeriodThreshold {
			cf = append(cf, FlagLongPeriod)
		}
		if len(cf) > 0 {
			flags = append(flags, CycleFlags{CycleIndex: i, Flags: cf})
		}
	}

	return Insights{
		Regularity: stdDev,
		Drift:      statsutil.Drift(lengths),
		Anomalies:  anomalies,
		Flags:      flags,
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
