package series

import (
	"math"
	"strconv"

	"dashboard-go/internal/stats"
)

// Bounds are the y-axis limits handed to the renderer. Nil leaves the side
// to the chart library.
type Bounds struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// YAxisBounds picks y-axis limits. Explicit limits always win. In interval
// mode the chart library would clip whiskers, so the missing sides are
// derived from the transformed interval ends with one unit of padding.
func YAxisBounds(datasets []ChartDataset, explicitMin, explicitMax *float64, intervals bool) Bounds {
	b := Bounds{Min: explicitMin, Max: explicitMax}
	if !intervals || (b.Min != nil && b.Max != nil) {
		return b
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, ds := range datasets {
		for _, iv := range ds.Intervals {
			if iv == nil {
				continue
			}
			if m := float64(iv.Min); !math.IsNaN(m) {
				lo = math.Min(lo, m-1)
			}
			if m := float64(iv.Max); !math.IsNaN(m) {
				hi = math.Max(hi, m+1)
			}
		}
	}

	if b.Min == nil && !math.IsInf(lo, 0) {
		v := math.Floor(lo)
		b.Min = &v
	}
	if b.Max == nil && !math.IsInf(hi, 0) {
		v := math.Ceil(hi)
		b.Max = &v
	}
	return b
}

// TickLabel formats a y value for the given transform, the way axis ticks
// and point tooltips show it. Non-finite values format as "".
func TickLabel(t Transform, v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	switch t {
	case TransformGeomean:
		return formatFloat(stats.RoundHalfUp(v*1e4)/1e4) + "%"
	case TransformZScore:
		return formatFloat(v) + " σ"
	}
	return formatFloat(v)
}

func formatFloat(v float64) string {
	if v == 0 {
		v = 0 // no "-0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
