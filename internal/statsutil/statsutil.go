// Package statsutil provides the shared statistical helpers used by
// the calendar predictor, the reconciler, and the quality façade: a
// thin wrapper over github.com/montanaflynn/stats for the functions it
// exposes directly, plus population-variance/drift/tail-probability
// helpers computed here, with variance in the biased (divide-by-N)
// form.
package statsutil

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Mean returns the arithmetic mean of data, or 0 for an empty slice.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	m, err := stats.Mean(data)
	if err != nil {
		return 0
	}
	return m
}

// PopulationVariance returns the biased (divide-by-N) variance of
// data, or 0 for an empty slice.
func PopulationVariance(data []float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	m := Mean(data)
	sum := 0.0
	for _, x := range data {
		d := x - m
		sum += d * d
	}
	return sum / float64(n)
}

// PopulationStdDev returns the square root of PopulationVariance.
func PopulationStdDev(data []float64) float64 {
	return math.Sqrt(PopulationVariance(data))
}

// Drift fits a simple ordinary-least-squares line to (index, value)
// pairs and returns its slope. Used to report whether cycle lengths
// are trending longer or shorter over time. Returns 0 for fewer than
// two points.
func Drift(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	nf := float64(n)
	denom := nf*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (nf*sumXY - sumX*sumY) / denom
}

// ZScore returns (x - mean) / stdDev, or 0 when stdDev is 0.
func ZScore(x, mean, stdDev float64) float64 {
	if stdDev == 0 {
		return 0
	}
	return (x - mean) / stdDev
}

// TailProbability returns the two-tailed probability of observing a
// value at least as extreme as z under a standard normal
// distribution, via gonum's distuv.Normal.
func TailProbability(z float64) float64 {
	n := distuv.Normal{Mu: 0, Sigma: 1}
	az := math.Abs(z)
	return 2 * (1 - n.CDF(az))
}
