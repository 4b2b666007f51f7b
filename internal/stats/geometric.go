// Package stats holds the numeric helpers behind comparative performance
// charts: a sign-tolerant geometric mean, relative percent change, and the
// geometric standard deviation / standard score pair.
package stats

import "math"

// GeometricMean approximates the geometric mean of values while tolerating
// zeros and negative numbers.
//
// Values are split into strictly positive and strictly negative subsets
// (zeros land in neither). Each non-empty subset contributes the
// exponentiated mean of ln|v|, weighted by its share of the whole input;
// the negative contribution is subtracted. An empty input returns 0.
//
// For purely positive data this is the classical geometric mean. For mixed
// data it is a heuristic kept for output compatibility with existing charts.
func GeometricMean(values []float64) float64 {
	var sumPos, sumNeg float64
	var nPos, nNeg int
	for _, v := range values {
		switch {
		case v > 0:
			sumPos += math.Log(v)
			nPos++
		case v < 0:
			sumNeg += math.Log(-v)
			nNeg++
		}
	}

	n := float64(len(values))
	mean := 0.0
	if nPos > 0 {
		mean += math.Exp(sumPos/float64(nPos)) * (float64(nPos) / n)
	}
	if nNeg > 0 {
		mean -= math.Exp(sumNeg/float64(nNeg)) * (float64(nNeg) / n)
	}
	return mean
}

// PercentDiff returns the change from baseline to x in percent, rounded to
// four decimal places of the ratio.
func PercentDiff(baseline, x float64) float64 {
	return 100 * RoundHalfUp(1e4*((x-baseline)/baseline)) / 1e4
}

// GeometricStdDev returns exp(sqrt(mean(ln(y/mean)^2))) over values.
// An empty input returns 1 so callers never see NaN from a missing series.
func GeometricStdDev(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 1
	}
	inner := 0.0
	for _, y := range values {
		l := math.Log(y / mean)
		inner += l * l
	}
	return math.Exp(math.Sqrt(inner / float64(len(values))))
}

// ZScore is the geometric standard score of x. A constant series
// (ln(stddev) == 0) scores 0 everywhere.
func ZScore(mean, stddev, x float64) float64 {
	lsig := math.Log(stddev)
	if lsig == 0 {
		return 0
	}
	return (math.Log(x) - math.Log(mean)) / lsig
}

// RoundHalfUp rounds to the nearest integer, ties toward +Inf.
// math.Round sends negative ties away from zero, which shifts
// percentages like -0.00005 by a digit.
func RoundHalfUp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r := math.Floor(v)
	if v-r >= 0.5 {
		r++
	}
	return r
}
