// Package reconciler implements C5: fusing any number of fertile-
// window predictions — internal or imported — into one unified window
// with a calibrated confidence, a human-readable explanation, a
// day-by-day probability series, and an outlier list.
package reconciler

import (
	"fmt"
	"math"
	"strings"

	"cyclesync/domain/civildate"
	"cyclesync/domain/prediction"
	"cyclesync/domain/reconciled"
	"cyclesync/internal/statsutil"
)

// Options tunes the reconciler. Zero values are replaced by defaults
// in Reconcile.
type Options struct {
	MinConfidenceThreshold float64 // default 0.3
	DisagreementPenalty    float64 // default 0.15
	MinSources             int     // default 1
}

// DefaultOptions returns the reconciler's default tuning.
func DefaultOptions() Options {
	return Options{MinConfidenceThreshold: 0.3, DisagreementPenalty: 0.15, MinSources: 1}
}

func (o Options) withDefaults() Options {
	if o.MinConfidenceThreshold == 0 {
		o.MinConfidenceThreshold = 0.3
	}
	if o.DisagreementPenalty == 0 {
		o.DisagreementPenalty = 0.15
	}
	if o.MinSources == 0 {
		o.MinSources = 1
	}
	return o
}

// Reconcile fuses predictions into a single window. It returns
// (result, false) when admission fails (too few predictions, or all
// confidences are zero) — not an error, signaled to the caller as a
// boolean rather than a wrapped error.
func Reconcile(predictions []prediction.Prediction, weights prediction.SourceWeights, opts Options) (reconciled.ReconciledPrediction, bool) {
	opts = opts.withDefaults()
	if weights == nil {
		weights = prediction.DefaultWeights()
	}

	admitted := admit(predictions, opts.MinSources)
	if len(admitted) == 0 {
		return reconciled.ReconciledPrediction{}, false
	}

	agreement := sourceAgreement(admitted)
	outliers := findOutliers(admitted, weights)
	dayProbs := dayProbabilitySeries(admitted, weights)
	effectiveWeights := effectiveWeightsOf(admitted, weights)

	effectiveThreshold := opts.MinConfidenceThreshold
	if agreement < 0.7 {
		effectiveThreshold += opts.DisagreementPenalty * (1 - agreement)
	}

	diagnostics := reconciled.Diagnostics{
		SourceAgreement:  agreement,
		Outliers:         outliers,
		EffectiveWeights: effectiveWeights,
		DayProbabilities: dayProbs,
		InputPredictions: len(admitted),
	}

	windowStart, windowEnd, ovulation, ok := extractWindow(dayProbs, effectiveThreshold)
	if !ok {
		return fallback(admitted, effectiveWeights, agreement, diagnostics), true
	}

	confidence := confidenceSynthesis(agreement, len(admitted), len(outliers))

	result := reconciled.ReconciledPrediction{
		FertileStart:  windowStart,
		FertileEnd:    windowEnd,
		OvulationDate: &ovulation,
		Confidence:    confidence,
		Diagnostics:   diagnostics,
	}
	result.Explanation = explain(admitted, agreement, outliers, windowStart, windowEnd, dayProbs, "")
	return result, true
}

// admit applies the too-few-predictions and zero-confidence
// filtering.
func admit(predictions []prediction.Prediction, minSources int) []prediction.Prediction {
	if len(predictions) < minSources {
		return nil
	}
	out := make([]prediction.Prediction, 0, len(predictions))
	for _, p := range predictions {
		if p.Confidence != 0 {
			out = append(out, p)
		}
	}
	return out
}

// sourceAgreement scores how closely the admitted predictions agree.
func sourceAgreement(admitted []prediction.Prediction) float64 {
	if len(admitted) == 1 {
		return 1
	}
	starts := make([]float64, len(admitted))
	ends := make([]float64, len(admitted))
	epoch := admitted[0].FertileStart
	for i, p := range admitted {
		starts[i] = float64(p.FertileStart.Sub(epoch))
		ends[i] = float64(p.FertileEnd.Sub(epoch))
	}
	vs := statsutil.PopulationVariance(starts)
	ve := statsutil.PopulationVariance(ends)
	vbar := (vs + ve) / 2
	return math.Exp(-vbar / 8)
}

// effectiveWeightsOf returns each admitted prediction's source weight
// keyed by source tag (the last-seen weight wins for a repeated
// source, which is always the same value since weights are a pure
// lookup table).
func effectiveWeightsOf(admitted []prediction.Prediction, weights prediction.SourceWeights) map[prediction.Source]float64 {
	out := make(map[prediction.Source]float64, len(admitted))
	for _, p := range admitted {
		out[p.Source] = weights.Weight(p.Source)
	}
	return out
}

// findOutliers flags predictions far from the weighted centroid.
// Undefined (nil) for fewer than three predictions.
func findOutliers(admitted []prediction.Prediction, weights prediction.SourceWeights) []prediction.Source {
	if len(admitted) < 3 {
		return nil
	}

	epoch := admitted[0].FertileStart
	var sumW, sumWStart, sumWEnd float64
	for _, p := range admitted {
		w := weights.Weight(p.Source)
		sumW += w
		sumWStart += w * float64(p.FertileStart.Sub(epoch))
		sumWEnd += w * float64(p.FertileEnd.Sub(epoch))
	}
	if sumW == 0 {
		return nil
	}
	centroidStart := sumWStart / sumW
	centroidEnd := sumWEnd / sumW

	var outliers []prediction.Source
	for _, p := range admitted {
		startDiff := math.Abs(float64(p.FertileStart.Sub(epoch)) - centroidStart)
		endDiff := math.Abs(float64(p.FertileEnd.Sub(epoch)) - centroidEnd)
		if startDiff > 3 || endDiff > 3 {
			outliers = append(outliers, p.Source)
		}
	}
	return outliers
}

// dayProbabilitySeries fuses each admitted prediction into a
// per-day fertility probability curve.
func dayProbabilitySeries(admitted []prediction.Prediction, weights prediction.SourceWeights) []reconciled.DayProbability {
	rangeStart := admitted[0].FertileStart
	rangeEnd := admitted[0].FertileEnd
	for _, p := range admitted[1:] {
		rangeStart = civildate.Min(rangeStart, p.FertileStart)
		rangeEnd = civildate.Max(rangeEnd, p.FertileEnd)
	}
	rangeStart = rangeStart.AddDays(-2)
	rangeEnd = rangeEnd.AddDays(2)

	var totalWeight float64
	for _, p := range admitted {
		totalWeight += weights.Weight(p.Source)
	}
	if totalWeight == 0 {
		return nil
	}

	days := civildate.Range(rangeStart, rangeEnd)
	out := make([]reconciled.DayProbability, 0, len(days))
	for _, d := range days {
		var sum float64
		for _, p := range admitted {
			w := weights.Weight(p.Source)
			c := p.ConfidenceFraction()
			if c == 0 {
				c = 0.5
			}
			var contribution float64
			if !d.Before(p.FertileStart) && !d.After(p.FertileEnd) {
				contribution = w * c
			} else {
				k := minInt(absInt(d.Sub(p.FertileStart)), absInt(d.Sub(p.FertileEnd)))
				contribution = w * c * math.Exp(-float64(k*k)/2)
				if contribution < 0.1 {
					contribution = 0
				}
			}
			sum += contribution
		}
		out = append(out, reconciled.DayProbability{Date: d, Probability: sum / totalWeight})
	}
	return out
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// extractWindow finds the longest run of consecutive
// days at or above the effective threshold, and the highest-
// probability day within that run as the ovulation estimate.
func extractWindow(dayProbs []reconciled.DayProbability, threshold float64) (start, end, ovulation civildate.Date, ok bool) {
	type run struct {
		startIdx, endIdx int
	}
	var bestRun run
	haveBest := false

	curStart := -1
	for i, dp := range dayProbs {
		if dp.Probability >= threshold {
			if curStart == -1 {
				curStart = i
			}
			continuing := i == len(dayProbs)-1 || dayProbs[i+1].Probability < threshold
			if continuing {
				length := i - curStart + 1
				if !haveBest || length > (bestRun.endIdx-bestRun.startIdx+1) {
					bestRun = run{startIdx: curStart, endIdx: i}
					haveBest = true
				}
				curStart = -1
			}
		}
	}

	if !haveBest {
		return civildate.Date{}, civildate.Date{}, civildate.Date{}, false
	}

	start = dayProbs[bestRun.startIdx].Date
	end = dayProbs[bestRun.endIdx].Date

	bestIdx := bestRun.startIdx
	for i := bestRun.startIdx + 1; i <= bestRun.endIdx; i++ {
		if dayProbs[i].Probability > dayProbs[bestIdx].Probability {
			bestIdx = i
		}
	}
	ovulation = dayProbs[bestIdx].Date
	return start, end, ovulation, true
}

// confidenceSynthesis combines agreement, source count, and outlier
// count into a single confidence score.
func confidenceSynthesis(agreement float64, n, outlierCount int) float64 {
	confidence := agreement * math.Min(1, 0.7+0.1*float64(n)) * math.Max(0.5, 1-0.1*float64(outlierCount))
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return confidence
}

// fallback picks the highest-weighted admitted prediction when the
// day-probability curve never clears the confidence threshold.
func fallback(admitted []prediction.Prediction, effectiveWeights map[prediction.Source]float64, agreement float64, diagnostics reconciled.Diagnostics) reconciled.ReconciledPrediction {
	best := admitted[0]
	bestWeight := effectiveWeights[best.Source]
	for _, p := range admitted[1:] {
		w := effectiveWeights[p.Source]
		if w > bestWeight {
			best = p
			bestWeight = w
		}
	}

	confidence := math.Max(0.2, agreement*0.5)

	result := reconciled.ReconciledPrediction{
		FertileStart:  best.FertileStart,
		FertileEnd:    best.FertileEnd,
		OvulationDate: best.OvulationDate,
		Confidence:    confidence,
		Diagnostics:   diagnostics,
	}
	result.Explanation = explain(admitted, agreement, diagnostics.Outliers, best.FertileStart, best.FertileEnd, diagnostics.DayProbabilities, string(best.Source))
	return result
}

func agreementLabel(agreement float64) string {
	switch {
	case agreement >= 0.9:
		return "strong"
	case agreement >= 0.7:
		return "good"
	case agreement >= 0.5:
		return "moderate"
	default:
		return "low"
	}
}

// explain renders the human-readable rationale lines. fallbackSource
// is non-empty only when
// called from the fallback path.
func explain(admitted []prediction.Prediction, agreement float64, outliers []prediction.Source, start, end civildate.Date, dayProbs []reconciled.DayProbability, fallbackSource string) []string {
	var lines []string

	if fallbackSource != "" {
		lines = append(lines, fmt.Sprintf("Low confidence: falling back to the highest-weighted source (%s)", fallbackSource))
	}

	var uniqueSources []string
	seen := map[prediction.Source]bool{}
	for _, p := range admitted {
		if !seen[p.Source] {
			seen[p.Source] = true
			uniqueSources = append(uniqueSources, string(p.Source))
		}
	}
	if len(uniqueSources) == 1 {
		lines = append(lines, fmt.Sprintf("based on %s only", uniqueSources[0]))
	} else {
		lines = append(lines, fmt.Sprintf("reconciled from %d predictions (%s)", len(admitted), strings.Join(uniqueSources, ", ")))
	}

	lines = append(lines, fmt.Sprintf("%s agreement", agreementLabel(agreement)))

	dayLength := end.Sub(start) + 1
	lines = append(lines, fmt.Sprintf("window %s to %s (%d days)", start, end, dayLength))

	if len(outliers) > 0 {
		seenOut := map[prediction.Source]bool{}
		var names []string
		for _, o := range outliers {
			if !seenOut[o] {
				seenOut[o] = true
				names = append(names, string(o))
			}
		}
		lines = append(lines, fmt.Sprintf("note: %s differ significantly from consensus", strings.Join(names, ", ")))
	}

	if peak, ok := peakFertilityDay(dayProbs); ok {
		lines = append(lines, fmt.Sprintf("peak fertility date %s", peak))
	}

	return lines
}

// peakFertilityDay is the highest-probability day among days whose
// probability is at least 0.8, or (zero, false) if none qualify.
func peakFertilityDay(dayProbs []reconciled.DayProbability) (civildate.Date, bool) {
	var best reconciled.DayProbability
	found := false
	for _, dp := range dayProbs {
		if dp.Probability >= 0.8 && (!found || dp.Probability > best.Probability) {
			best = dp
			found = true
		}
	}
	if !found {
		return civildate.Date{}, false
	}
	return best.Date, true
}
