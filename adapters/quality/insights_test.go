package quality

import (
	"testing"

	"cyclesync/domain/civildate"
	"cyclesync/domain/core"
	"cyclesync/domain/cycle"
)

func cycleAt(t *testing.T, date string, length, periodLength int) cycle.Cycle {
	d, err := civildate.Parse(date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return cycle.New(d, length, periodLength, "", core.Now())
}

func TestInsightFlagsShortAndLongCycles(t *testing.T) {
	cycles := []cycle.Cycle{
		cycleAt(t, "2025-01-01", 18, 4),
		cycleAt(t, "2025-01-19", 40, 4),
		cycleAt(t, "2025-02-28", 28, 9),
	}
	insights := Insight(cycles)

	var flags []AnomalyFlag
	for _, f := range insights.Flags {
		flags = append(flags, f.Flags...)
	}
	want := map[AnomalyFlag]bool{FlagShortCycle: false, FlagLongCycle: false, FlagLongPeriod: false}
	for _, f := range flags {
		want[f] = true
	}
	for flag, seen := range want {
		if !seen {
			t.Errorf("expected flag %s to be reported", flag)
		}
	}
}

func TestInsightEmptyInput(t *testing.T) {
	insights := Insight(nil)
	if insights.Regularity != 0 || len(insights.Anomalies) != 0 || len(insights.Flags) != 0 {
		t.Error("expected zero-value insights for empty input")
	}
}

func TestInsightDriftDetectsLengthening(t *testing.T) {
	cycles := []cycle.Cycle{
		cycleAt(t, "2025-01-01", 26, 4),
		cycleAt(t, "2025-01-27", 28, 4),
		cycleAt(t, "2025-02-24", 30, 4),
		cycleAt(t, "2025-03-26", 32, 4),
	}
	insights := Insight(cycles)
	if insights.Drift <= 0 {
		t.Errorf("drift = %v, want > 0 for a lengthening trend", insights.Drift)
	}
}
