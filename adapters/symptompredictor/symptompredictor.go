// Package symptompredictor implements C4: a fertile-window prediction
// derived from daily cervical-mucus, OPK, and BBT observations, plus
// an auxiliary BBT-shift detector used for diagnostic (not
// predictive) reporting.
package symptompredictor

import (
	"sort"

	"cyclesync/domain/civildate"
	"cyclesync/domain/core"
	"cyclesync/domain/observation"
	"cyclesync/domain/prediction"
)

// Options tunes the symptom model. Zero-valued fields are replaced by
// their defaults in Predict.
type Options struct {
	MinCMScoreThreshold int     // default 3
	DaysBeforeOPK       int     // default 2
	DaysAfterOPK        int     // default 2
	CMWeight            float64 // default 0.6
	OPKWeight           float64 // default 0.9
}

// DefaultOptions returns the model's default tuning.
func DefaultOptions() Options {
	return Options{MinCMScoreThreshold: 3, DaysBeforeOPK: 2, DaysAfterOPK: 2, CMWeight: 0.6, OPKWeight: 0.9}
}

func (o Options) withDefaults() Options {
	if o.MinCMScoreThreshold == 0 {
		o.MinCMScoreThreshold = 3
	}
	if o.DaysBeforeOPK == 0 {
		o.DaysBeforeOPK = 2
	}
	if o.DaysAfterOPK == 0 {
		o.DaysAfterOPK = 2
	}
	if o.CMWeight == 0 {
		o.CMWeight = 0.6
	}
	if o.OPKWeight == 0 {
		o.OPKWeight = 0.9
	}
	return o
}

var cmScoreTable = map[observation.CMValue]int{
	observation.CMDry:      0,
	observation.CMSticky:   1,
	observation.CMCreamy:   2,
	observation.CMWatery:   4,
	observation.CMEggWhite: 5,
	observation.CMSpotting: 1,
}

// dayAggregate is the per-day fusion of one date's observations.
type dayAggregate struct {
	date           civildate.Date
	cmScore        int
	hasCM          bool
	opkPositive    bool
	hasOPK         bool
	bbt            float64
	hasBBT         bool
	fertilityScore float64
}

// aggregateByDay groups observations by date and computes the fused
// per-day fertility score.
func aggregateByDay(obs []observation.Observation, opts Options) []dayAggregate {
	byDate := map[civildate.Date]*dayAggregate{}
	order := []civildate.Date{}

	get := func(d civildate.Date) *dayAggregate {
		if a, ok := byDate[d]; ok {
			return a
		}
		a := &dayAggregate{date: d}
		byDate[d] = a
		order = append(order, d)
		return a
	}

	for _, o := range obs {
		a := get(o.Date)
		switch o.Kind {
		case observation.KindCervicalMucus:
			score, ok := cmScoreTable[o.CMValue]
			if ok {
				if !a.hasCM || score > a.cmScore {
					a.cmScore = score
				}
				a.hasCM = true
			}
		case observation.KindOPK:
			a.hasOPK = true
			if o.OPKValue == observation.OPKPositive {
				a.opkPositive = true
			}
		case observation.KindBBT:
			a.bbt = o.Temperature
			a.hasBBT = true
		}
	}

	sort.Slice(order, func(i, j int) bool { return order[i].Before(order[j]) })

	out := make([]dayAggregate, 0, len(order))
	for _, d := range order {
		a := byDate[d]
		cmComponent := (float64(a.cmScore) / 5.0) * opts.CMWeight
		opkComponent := 0.0
		if a.opkPositive {
			opkComponent = opts.OPKWeight
		}
		score := cmComponent + opkComponent
		if score > 1 {
			score = 1
		}
		a.fertilityScore = score
		out = append(out, *a)
	}
	return out
}

// Predict produces a fertile-window prediction from a heterogeneous
// observation list, or a zero Prediction and false when neither OPK nor sufficient CM
// signal is present.
func Predict(obs []observation.Observation, opts Options, now core.Timestamp) (prediction.Prediction, bool) {
	opts = opts.withDefaults()
	days := aggregateByDay(obs, opts)

	var opkDay *dayAggregate
	for i := range days {
		if days[i].hasOPK && days[i].opkPositive {
			opkDay = &days[i]
			break
		}
	}

	var windowStart, windowEnd, ovulation civildate.Date
	found := false

	if opkDay != nil {
		windowStart = opkDay.date.AddDays(-opts.DaysBeforeOPK)
		windowEnd = opkDay.date.AddDays(opts.DaysAfterOPK)
		ovulation = opkDay.date.AddDays(1)
		found = true
	} else {
		var highest *dayAggregate
		var earliestHigh civildate.Date
		haveEarliest := false
		for i := range days {
			if days[i].hasCM && days[i].cmScore >= opts.MinCMScoreThreshold {
				if !haveEarliest {
					earliestHigh = days[i].date
					haveEarliest = true
				}
				if highest == nil || days[i].cmScore > highest.cmScore {
					highest = &days[i]
				}
			}
		}
		if highest != nil {
			windowStart = earliestHigh
			windowEnd = highest.date.AddDays(2)
			ovulation = highest.date.AddDays(1)
			found = true
		}
	}

	if !found {
		return prediction.Prediction{}, false
	}

	anyOPK := false
	anyHighCM := false
	datedCount := 0
	for _, d := range days {
		if d.hasOPK {
			anyOPK = true
		}
		if d.hasCM && d.cmScore >= opts.MinCMScoreThreshold {
			anyHighCM = true
		}
		datedCount++
	}

	confidence := 40
	if anyOPK {
		confidence += 35
	}
	if anyHighCM {
		confidence += 15
	}
	if datedCount >= 10 {
		confidence += 10
	} else if datedCount >= 5 {
		confidence += 5
	}
	if anyOPK && anyHighCM {
		confidence += 10
	}
	if confidence > 95 {
		confidence = 95
	}

	p := prediction.New(prediction.SourceFertilityFriend, windowStart, windowEnd, confidence, now)
	p.OvulationDate = &ovulation
	return p, true
}

// BBTShift is the result of the auxiliary BBT-shift detector: a
// sustained post-ovulatory temperature rise. This is diagnostic, not
// an input to the reconciler.
type BBTShift struct {
	Date      civildate.Date
	Confirmed bool
}

// DetectBBTShift requires at least 6 BBT observations. It establishes
// a baseline from the mean of the lowest 5 of the first 6 readings,
// then walks forward looking for the first three consecutive readings
// all at least 0.2F above baseline.
func DetectBBTShift(obs []observation.Observation) (BBTShift, bool) {
	bbt := make([]observation.Observation, 0, len(obs))
	for _, o := range obs {
		if o.Kind == observation.KindBBT {
			bbt = append(bbt, o)
		}
	}
	if len(bbt) < 6 {
		return BBTShift{}, false
	}
	sort.Slice(bbt, func(i, j int) bool { return bbt[i].Date.Before(bbt[j].Date) })

	firstSix := make([]float64, 6)
	for i := 0; i < 6; i++ {
		firstSix[i] = bbt[i].Temperature
	}
	sorted := append([]float64{}, firstSix...)
	sort.Float64s(sorted)
	lowestFive := sorted[:5]
	sum := 0.0
	for _, v := range lowestFive {
		sum += v
	}
	baseline := sum / 5.0
	threshold := baseline + 0.2

	for i := 6; i+2 < len(bbt); i++ {
		if bbt[i].Temperature >= threshold && bbt[i+1].Temperature >= threshold && bbt[i+2].Temperature >= threshold {
			return BBTShift{Date: bbt[i].Date, Confirmed: true}, true
		}
	}
	return BBTShift{}, false
}
