package csvnormalizer

import (
	"cyclesync/domain/civildate"
	"cyclesync/domain/core"
	"cyclesync/domain/cycle"
	"cyclesync/domain/observation"
)

// InferCycles derives Cycle boundaries from an already-normalized
// observation stream. A new cycle begins after any gap of at least 8
// days between consecutive observation dates; an inferred cycle is
// retained only if its span (first to last observation date) is at
// least 14 days. This is independent of the row-level parsing in
// Normalize.
func InferCycles(observations []observation.Observation, now core.Timestamp) []cycle.Cycle {
	dates := uniqueSortedDates(observations)
	if len(dates) == 0 {
		return nil
	}

	var groups [][]civildate.Date
	current := []civildate.Date{dates[0]}
	for i := 1; i < len(dates); i++ {
		gap := dates[i].Sub(dates[i-1])
		if gap >= 8 {
			groups = append(groups, current)
			current = []civildate.Date{dates[i]}
		} else {
			current = append(current, dates[i])
		}
	}
	groups = append(groups, current)

	var out []cycle.Cycle
	for _, g := range groups {
		first := g[0]
		last := g[len(g)-1]
		span := last.Sub(first) + 1
		if span < 14 {
			continue
		}
		out = append(out, cycle.New(first, span, 0, "inferred from CSV import", now))
	}
	return out
}

func uniqueSortedDates(observations []observation.Observation) []civildate.Date {
	seen := map[civildate.Date]bool{}
	var out []civildate.Date
	for _, o := range observations {
		if !seen[o.Date] {
			seen[o.Date] = true
			out = append(out, o.Date)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Before(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
