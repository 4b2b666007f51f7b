package series

import (
	"dashboard-go/internal/palette"
	"dashboard-go/internal/stats"
)

// Options controls BuildDatasets.
type Options struct {
	Transform Transform
	// Hidden lists labels the user has toggled off in the legend.
	Hidden []string
	// DropZeros skips rows whose y is exactly zero.
	DropZeros bool
	// Intervals attaches transformed y_min / y_max whiskers to each point.
	Intervals bool
}

// Point is one plotted value. Display is Y formatted by TickLabel.
type Point struct {
	X       float64 `json:"x"`
	Y       Float   `json:"y"`
	Display string  `json:"display"`
}

// Interval is the transformed whisker range of a point.
type Interval struct {
	Min Float `json:"min"`
	Max Float `json:"max"`
}

// ChartDataset is one labeled line, aligned to the chart's x-axis. Points,
// FullData and Intervals share indexes; a nil entry means the label has no
// observation at that x.
type ChartDataset struct {
	Label           string         `json:"label"`
	Points          []*Point       `json:"points"`
	FullData        []*Observation `json:"full_data"`
	Intervals       []*Interval    `json:"intervals,omitempty"`
	Color           string         `json:"color"`
	GeometricMean   Float          `json:"geometric_mean"`
	GeometricStdDev Float          `json:"geometric_std_dev"`
	Hidden          bool           `json:"hidden"`
}

// Chart bundles the shared x-axis with its datasets.
type Chart struct {
	Axis     []float64      `json:"axis"`
	Datasets []ChartDataset `json:"datasets"`
}

// BuildDatasets groups rows by label and emits one dataset per label in
// first-seen order. See BuildChart.
func BuildDatasets(rows []Row, opts Options) ([]ChartDataset, error) {
	chart, err := BuildChart(rows, opts)
	if err != nil {
		return nil, err
	}
	return chart.Datasets, nil
}

// BuildChart parses rows, groups them by label, transforms each series and
// aligns every series to the sorted set of distinct x values.
//
// Transforms always start from the untransformed y values of a series. Any
// row missing x, y or label fails the whole call.
func BuildChart(rows []Row, opts Options) (*Chart, error) {
	obs, err := ParseObservations(rows)
	if err != nil {
		return nil, err
	}

	var labels []string
	groups := make(map[string][]Observation)
	xs := make([]float64, 0, len(obs))
	for _, o := range obs {
		if _, ok := groups[o.Label]; !ok {
			labels = append(labels, o.Label)
			groups[o.Label] = nil
		}
		xs = append(xs, o.X)
		if opts.DropZeros && o.Y == 0 {
			continue
		}
		groups[o.Label] = append(groups[o.Label], o)
	}

	axis := stats.Unique(xs)
	position := make(map[float64]int, len(axis))
	for i, x := range axis {
		position[x] = i
	}

	hidden := make(map[string]bool, len(opts.Hidden))
	for _, l := range opts.Hidden {
		hidden[l] = true
	}

	datasets := make([]ChartDataset, 0, len(labels))
	for _, label := range labels {
		ds := buildSeries(label, groups[label], axis, position, opts)
		ds.Hidden = hidden[label]
		datasets = append(datasets, ds)
	}
	return &Chart{Axis: axis, Datasets: datasets}, nil
}

func buildSeries(label string, obs []Observation, axis []float64, position map[float64]int, opts Options) ChartDataset {
	ys := make([]float64, len(obs))
	for i, o := range obs {
		ys[i] = o.Y
	}
	st := computeStats(ys)

	ds := ChartDataset{
		Label:           label,
		Points:          make([]*Point, len(axis)),
		FullData:        make([]*Observation, len(axis)),
		Color:           palette.ColorForLabel(label),
		GeometricMean:   Float(st.mean),
		GeometricStdDev: Float(st.stddev),
	}
	if opts.Intervals {
		ds.Intervals = make([]*Interval, len(axis))
	}

	// Later rows for the same x overwrite earlier ones.
	for _, o := range obs {
		o := o // per-iteration copy; module targets go 1.21 loop semantics
		i := position[o.X]
		y := opts.Transform.apply(st, o.Y)
		ds.Points[i] = &Point{X: o.X, Y: Float(y), Display: TickLabel(opts.Transform, y)}
		ds.FullData[i] = &o
		if opts.Intervals {
			ds.Intervals[i] = intervalFor(o, st, opts.Transform)
		}
	}
	return ds
}

func intervalFor(o Observation, st seriesStats, t Transform) *Interval {
	lo, okLo := optionalFloat(o.Row, "y_min")
	hi, okHi := optionalFloat(o.Row, "y_max")
	if !okLo || !okHi {
		return nil
	}
	return &Interval{Min: Float(t.apply(st, lo)), Max: Float(t.apply(st, hi))}
}
