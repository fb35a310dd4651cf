package csvnormalizer

import (
	"testing"

	"cyclesync/domain/core"
	"cyclesync/domain/observation"
)

func obsOn(t *testing.T, date string) observation.Observation {
	return observation.NewCervicalMucus(mustParse(t, date), observation.CMDry, core.Now())
}

func TestInferCyclesSplitsOnGap(t *testing.T) {
	obs := []observation.Observation{
		obsOn(t, "2024-01-01"), obsOn(t, "2024-01-10"), obsOn(t, "2024-01-20"),
		obsOn(t, "2024-02-05"), obsOn(t, "2024-02-15"), obsOn(t, "2024-02-25"),
	}
	cycles := InferCycles(obs, core.Now())
	if len(cycles) != 2 {
		t.Fatalf("expected 2 inferred cycles, got %d", len(cycles))
	}
}

func TestInferCyclesDropsShortSpans(t *testing.T) {
	obs := []observation.Observation{
		obsOn(t, "2024-01-01"), obsOn(t, "2024-01-05"),
	}
	cycles := InferCycles(obs, core.Now())
	if len(cycles) != 0 {
		t.Errorf("expected spans under 14 days to be dropped, got %d", len(cycles))
	}
}

func TestInferCyclesRetainsLongSpan(t *testing.T) {
	obs := []observation.Observation{
		obsOn(t, "2024-01-01"), obsOn(t, "2024-01-07"), obsOn(t, "2024-01-14"), obsOn(t, "2024-01-20"),
	}
	cycles := InferCycles(obs, core.Now())
	if len(cycles) != 1 {
		t.Fatalf("expected 1 inferred cycle, got %d", len(cycles))
	}
	if cycles[0].Length != 20 {
		t.Errorf("length = %d, want 20", cycles[0].Length)
	}
}
