package reconciler

import (
	"strings"
	"testing"

	"cyclesync/domain/civildate"
	"cyclesync/domain/core"
	"cyclesync/domain/prediction"
)

func mustDate(t *testing.T, s string) civildate.Date {
	d, err := civildate.Parse(s)
	if err != nil {
		t.Fatalf("unexpected error parsing %q: %v", s, err)
	}
	return d
}

func pred(t *testing.T, source prediction.Source, start, end string, confidence int) prediction.Prediction {
	return prediction.New(source, mustDate(t, start), mustDate(t, end), confidence, core.Now())
}

func TestSinglePredictionAgreementIsOne(t *testing.T) {
	p := pred(t, prediction.SourceFlo, "2025-02-10", "2025-02-15", 70)
	result, ok := Reconcile([]prediction.Prediction{p}, nil, DefaultOptions())
	if !ok {
		t.Fatal("expected a result")
	}
	if result.Diagnostics.InputPredictions != 1 {
		t.Errorf("inputPredictions = %d, want 1", result.Diagnostics.InputPredictions)
	}
	if result.Diagnostics.SourceAgreement != 1 {
		t.Errorf("sourceAgreement = %v, want 1", result.Diagnostics.SourceAgreement)
	}
}

func TestIdenticalPredictionsFullAgreement(t *testing.T) {
	preds := []prediction.Prediction{
		pred(t, prediction.SourceFlo, "2025-02-10", "2025-02-15", 70),
		pred(t, prediction.SourceClue, "2025-02-10", "2025-02-15", 70),
	}
	result, ok := Reconcile(preds, nil, DefaultOptions())
	if !ok {
		t.Fatal("expected a result")
	}
	if result.Diagnostics.SourceAgreement != 1 {
		t.Errorf("sourceAgreement = %v, want 1", result.Diagnostics.SourceAgreement)
	}
	if result.Confidence < 0.8 {
		t.Errorf("confidence = %v, want >= 0.8", result.Confidence)
	}
}

func TestConfidenceAlwaysInRange(t *testing.T) {
	preds := []prediction.Prediction{
		pred(t, prediction.SourceFlo, "2025-02-10", "2025-02-15", 70),
		pred(t, prediction.SourceClue, "2025-02-01", "2025-02-06", 65),
	}
	result, ok := Reconcile(preds, nil, DefaultOptions())
	if !ok {
		t.Fatal("expected a result")
	}
	if result.Confidence < 0 || result.Confidence > 1 {
		t.Errorf("confidence = %v, outside [0,1]", result.Confidence)
	}
}

func TestPerfectAgreementScenario(t *testing.T) {
	preds := []prediction.Prediction{
		pred(t, prediction.SourceNaturalCycles, "2025-02-10", "2025-02-15", 70),
		pred(t, prediction.SourceFlo, "2025-02-10", "2025-02-15", 75),
		pred(t, prediction.SourceClue, "2025-02-10", "2025-02-15", 65),
	}
	result, ok := Reconcile(preds, nil, DefaultOptions())
	if !ok {
		t.Fatal("expected a result")
	}
	if result.Diagnostics.SourceAgreement < 0.9 {
		t.Errorf("agreement = %v, want >= 0.9", result.Diagnostics.SourceAgreement)
	}
	if result.Confidence < 0.7 {
		t.Errorf("confidence = %v, want >= 0.7", result.Confidence)
	}
	if len(result.Diagnostics.Outliers) != 0 {
		t.Errorf("outliers = %v, want none", result.Diagnostics.Outliers)
	}
}

func TestOneFarOutlierScenario(t *testing.T) {
	agreeing := []prediction.Prediction{
		pred(t, prediction.SourceNaturalCycles, "2025-02-10", "2025-02-15", 70),
		pred(t, prediction.SourceFlo, "2025-02-10", "2025-02-15", 75),
		pred(t, prediction.SourceClue, "2025-02-10", "2025-02-15", 65),
	}
	baseline, ok := Reconcile(agreeing, nil, DefaultOptions())
	if !ok {
		t.Fatal("expected a baseline result")
	}

	withOutlier := append(append([]prediction.Prediction{}, agreeing...),
		pred(t, prediction.SourceManual, "2025-02-01", "2025-02-06", 60))
	result, ok := Reconcile(withOutlier, nil, DefaultOptions())
	if !ok {
		t.Fatal("expected a result")
	}

	found := false
	for _, o := range result.Diagnostics.Outliers {
		if o == prediction.SourceManual {
			found = true
		}
	}
	if !found {
		t.Errorf("expected manual to be reported as outlier, got %v", result.Diagnostics.Outliers)
	}
	if result.Confidence > baseline.Confidence {
		t.Errorf("confidence with outlier (%v) should not exceed baseline (%v)", result.Confidence, baseline.Confidence)
	}
}

func TestDisjointDisagreementScenario(t *testing.T) {
	preds := []prediction.Prediction{
		pred(t, prediction.SourceFlo, "2025-02-05", "2025-02-10", 70),
		pred(t, prediction.SourceClue, "2025-02-12", "2025-02-17", 70),
	}
	result, ok := Reconcile(preds, nil, DefaultOptions())
	if !ok {
		t.Fatal("expected a result")
	}
	if result.Diagnostics.SourceAgreement >= 0.5 {
		t.Errorf("agreement = %v, want < 0.5", result.Diagnostics.SourceAgreement)
	}
	if result.Confidence >= 0.5 {
		t.Errorf("confidence = %v, want < 0.5", result.Confidence)
	}
}

func TestFallbackScenario(t *testing.T) {
	preds := []prediction.Prediction{
		pred(t, prediction.SourceFlo, "2025-02-01", "2025-02-05", 70),
		pred(t, prediction.SourceClue, "2025-02-20", "2025-02-25", 70),
	}
	opts := DefaultOptions()
	opts.MinConfidenceThreshold = 0.99

	result, ok := Reconcile(preds, nil, opts)
	if !ok {
		t.Fatal("expected a fallback result")
	}
	if len(result.Explanation) == 0 || !strings.HasPrefix(result.Explanation[0], "Low confidence") {
		t.Errorf("expected explanation to begin with 'Low confidence', got %v", result.Explanation)
	}

	matchesFirst := result.FertileStart.Equal(preds[0].FertileStart) && result.FertileEnd.Equal(preds[0].FertileEnd)
	matchesSecond := result.FertileStart.Equal(preds[1].FertileStart) && result.FertileEnd.Equal(preds[1].FertileEnd)
	if !matchesFirst && !matchesSecond {
		t.Errorf("expected the fallback window to verbatim match one input prediction, got [%s,%s]", result.FertileStart, result.FertileEnd)
	}
}

func TestPermutationInvariance(t *testing.T) {
	a := []prediction.Prediction{
		pred(t, prediction.SourceNaturalCycles, "2025-02-10", "2025-02-15", 70),
		pred(t, prediction.SourceFlo, "2025-02-11", "2025-02-16", 60),
		pred(t, prediction.SourceManual, "2025-02-09", "2025-02-14", 55),
	}
	b := []prediction.Prediction{a[2], a[0], a[1]}

	r1, ok1 := Reconcile(a, nil, DefaultOptions())
	r2, ok2 := Reconcile(b, nil, DefaultOptions())
	if !ok1 || !ok2 {
		t.Fatal("expected both permutations to produce a result")
	}
	if !r1.FertileStart.Equal(r2.FertileStart) || !r1.FertileEnd.Equal(r2.FertileEnd) {
		t.Errorf("window differs across permutations: %s-%s vs %s-%s", r1.FertileStart, r1.FertileEnd, r2.FertileStart, r2.FertileEnd)
	}
	if r1.Confidence != r2.Confidence {
		t.Errorf("confidence differs across permutations: %v vs %v", r1.Confidence, r2.Confidence)
	}
}

func TestMinSourcesEquivalence(t *testing.T) {
	preds := []prediction.Prediction{
		pred(t, prediction.SourceFlo, "2025-02-10", "2025-02-15", 70),
		pred(t, prediction.SourceClue, "2025-02-10", "2025-02-15", 70),
	}
	optsK := DefaultOptions()
	optsK.MinSources = len(preds)
	opts1 := DefaultOptions()
	opts1.MinSources = 1

	rK, okK := Reconcile(preds, nil, optsK)
	r1, ok1 := Reconcile(preds, nil, opts1)
	if !okK || !ok1 {
		t.Fatal("expected both to produce a result")
	}
	if rK.Confidence != r1.Confidence || !rK.FertileStart.Equal(r1.FertileStart) {
		t.Error("reconcile with minSources=k should match minSources=1 on exactly k admitted predictions")
	}
}

func TestNoAdmissibleReturnsFalse(t *testing.T) {
	preds := []prediction.Prediction{
		pred(t, prediction.SourceFlo, "2025-02-10", "2025-02-15", 0),
	}
	if _, ok := Reconcile(preds, nil, DefaultOptions()); ok {
		t.Error("expected no result when all confidences are zero")
	}
}

func TestDayProbabilitiesNonNegativeAndAscending(t *testing.T) {
	preds := []prediction.Prediction{
		pred(t, prediction.SourceFlo, "2025-02-10", "2025-02-15", 70),
		pred(t, prediction.SourceClue, "2025-02-11", "2025-02-16", 60),
	}
	result, ok := Reconcile(preds, nil, DefaultOptions())
	if !ok {
		t.Fatal("expected a result")
	}
	days := result.Diagnostics.DayProbabilities
	for i, dp := range days {
		if dp.Probability < 0 {
			t.Errorf("day %s has negative probability %v", dp.Date, dp.Probability)
		}
		if i > 0 && !days[i-1].Date.Before(dp.Date) {
			t.Errorf("day probabilities not strictly ascending at index %d", i)
		}
	}
}
