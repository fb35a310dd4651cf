package statsutil

import (
	"math"
	"testing"
)

func TestMean(t *testing.T) {
	if got := Mean([]float64{2, 4, 6}); got != 4 {
		t.Errorf("Mean = %v, want 4", got)
	}
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %v, want 0", got)
	}
}

func TestPopulationVariance(t *testing.T) {
	// Population variance of {2,4,4,4,5,5,7,9} is 4 (textbook example).
	data := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	got := PopulationVariance(data)
	if math.Abs(got-4) > 1e-9 {
		t.Errorf("PopulationVariance = %v, want 4", got)
	}
}

func TestPopulationStdDev(t *testing.T) {
	data := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	got := PopulationStdDev(data)
	if math.Abs(got-2) > 1e-9 {
		t.Errorf("PopulationStdDev = %v, want 2", got)
	}
}

func TestDriftZeroForFlatSeries(t *testing.T) {
	got := Drift([]float64{28, 28, 28, 28})
	if math.Abs(got) > 1e-9 {
		t.Errorf("Drift of flat series = %v, want 0", got)
	}
}

func TestDriftPositiveForIncreasingSeries(t *testing.T) {
	got := Drift([]float64{26, 27, 28, 29, 30})
	if got <= 0 {
		t.Errorf("Drift of increasing series = %v, want > 0", got)
	}
}

func TestZScoreZeroStdDev(t *testing.T) {
	if got := ZScore(5, 5, 0); got != 0 {
		t.Errorf("ZScore with zero stddev = %v, want 0", got)
	}
}

func TestTailProbabilityMonotonic(t *testing.T) {
	near := TailProbability(0.1)
	far := TailProbability(3.0)
	if far >= near {
		t.Errorf("expected tail probability to shrink as |z| grows: near=%v far=%v", near, far)
	}
}
