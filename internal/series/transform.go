package series

import (
	"fmt"

	"dashboard-go/internal/stats"
)

// Transform selects the post-processing applied to each series.
type Transform string

const (
	TransformNone    Transform = "none"
	TransformGeomean Transform = "geomean"
	TransformZScore  Transform = "zscore"
)

// ParseTransform accepts "none", "geomean", "zscore"; empty means none.
func ParseTransform(s string) (Transform, error) {
	switch Transform(s) {
	case "", TransformNone:
		return TransformNone, nil
	case TransformGeomean, TransformZScore:
		return Transform(s), nil
	}
	return "", fmt.Errorf("series: unknown transform %q", s)
}

// seriesStats holds the per-series figures every transform is computed from.
type seriesStats struct {
	mean   float64
	stddev float64
}

func computeStats(ys []float64) seriesStats {
	mean := stats.GeometricMean(ys)
	return seriesStats{mean: mean, stddev: stats.GeometricStdDev(ys, mean)}
}

// apply maps an untransformed y value through t using s.
func (t Transform) apply(s seriesStats, y float64) float64 {
	switch t {
	case TransformGeomean:
		return stats.PercentDiff(s.mean, y)
	case TransformZScore:
		return stats.ZScore(s.mean, s.stddev, y)
	}
	return y
}
