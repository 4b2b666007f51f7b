package series_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"dashboard-go/internal/palette"
	"dashboard-go/internal/series"
	"dashboard-go/internal/stats"

	"github.com/stretchr/testify/require"
)

func rows(rs ...series.Row) []series.Row { return rs }

func TestBuildChartGeomeanScenario(t *testing.T) {
	chart, err := series.BuildChart(rows(
		series.Row{"x": 1.0, "y": 10.0, "label": "A"},
		series.Row{"x": 2.0, "y": 20.0, "label": "A"},
		series.Row{"x": 1.0, "y": 5.0, "label": "B"},
	), series.Options{Transform: series.TransformGeomean})
	require.NoError(t, err)

	require.Equal(t, []float64{1, 2}, chart.Axis)
	require.Len(t, chart.Datasets, 2)

	a := chart.Datasets[0]
	require.Equal(t, "A", a.Label)
	mean := math.Sqrt(200)
	require.InDelta(t, mean, float64(a.GeometricMean), 1e-9)
	require.InDelta(t, stats.PercentDiff(mean, 10), float64(a.Points[0].Y), 1e-9)
	require.InDelta(t, stats.PercentDiff(mean, 20), float64(a.Points[1].Y), 1e-9)
	require.InDelta(t, -29.29, float64(a.Points[0].Y), 1e-9)
	require.InDelta(t, 41.42, float64(a.Points[1].Y), 1e-9)

	b := chart.Datasets[1]
	require.Equal(t, "B", b.Label)
	require.NotNil(t, b.Points[0])
	require.Equal(t, 0.0, float64(b.Points[0].Y))
	require.Nil(t, b.Points[1], "B has no observation at x=2")
	require.Nil(t, b.FullData[1])
	require.Equal(t, 5.0, b.FullData[0].Y)
}

func TestBuildDatasetsPassThrough(t *testing.T) {
	ds, err := series.BuildDatasets(rows(
		series.Row{"x": 10, "y": 3, "label": "late", "changelist": "cl-1"},
		series.Row{"x": 9, "y": 2, "label": "early"},
		series.Row{"x": 2, "y": 1, "label": "late"},
	), series.Options{})
	require.NoError(t, err)

	require.Equal(t, "late", ds[0].Label, "labels keep first-seen order")
	require.Equal(t, "early", ds[1].Label)

	// axis is [2, 9, 10], sorted numerically
	late := ds[0]
	require.Equal(t, 2.0, late.Points[0].X)
	require.Equal(t, 1.0, float64(late.Points[0].Y))
	require.Nil(t, late.Points[1])
	require.Equal(t, 3.0, float64(late.Points[2].Y))
	require.Equal(t, "cl-1", late.FullData[2].Row["changelist"], "extra fields are carried")

	require.Equal(t, palette.ColorForLabel("late"), late.Color)
	require.False(t, late.Hidden)
}

func TestBuildDatasetsZScore(t *testing.T) {
	ds, err := series.BuildDatasets(rows(
		series.Row{"x": 1, "y": 2, "label": "A"},
		series.Row{"x": 2, "y": 8, "label": "A"},
	), series.Options{Transform: series.TransformZScore})
	require.NoError(t, err)

	require.InDelta(t, 4.0, float64(ds[0].GeometricMean), 1e-12)
	require.InDelta(t, 2.0, float64(ds[0].GeometricStdDev), 1e-12)
	require.InDelta(t, -1.0, float64(ds[0].Points[0].Y), 1e-12)
	require.InDelta(t, 1.0, float64(ds[0].Points[1].Y), 1e-12)
}

func TestBuildDatasetsConstantSeriesZScore(t *testing.T) {
	ds, err := series.BuildDatasets(rows(
		series.Row{"x": 1, "y": 5, "label": "flat"},
		series.Row{"x": 2, "y": 5, "label": "flat"},
	), series.Options{Transform: series.TransformZScore})
	require.NoError(t, err)
	for _, p := range ds[0].Points {
		require.Equal(t, 0.0, float64(p.Y))
	}
}

func TestBuildDatasetsLastWriteWins(t *testing.T) {
	ds, err := series.BuildDatasets(rows(
		series.Row{"x": 1, "y": 1, "label": "A", "run": 1},
		series.Row{"x": 1, "y": 3, "label": "A", "run": 2},
	), series.Options{})
	require.NoError(t, err)

	require.Len(t, ds[0].Points, 1)
	require.Equal(t, 3.0, float64(ds[0].Points[0].Y))
	require.Equal(t, 2, ds[0].FullData[0].Row["run"])
	// both rows still feed the series statistics
	require.InDelta(t, math.Sqrt(3), float64(ds[0].GeometricMean), 1e-12)
}

func TestBuildDatasetsHidden(t *testing.T) {
	ds, err := series.BuildDatasets(rows(
		series.Row{"x": 1, "y": 1, "label": "A"},
		series.Row{"x": 1, "y": 1, "label": "B"},
	), series.Options{Hidden: []string{"B", "missing"}})
	require.NoError(t, err)
	require.False(t, ds[0].Hidden)
	require.True(t, ds[1].Hidden)
}

func TestBuildDatasetsDropZeros(t *testing.T) {
	chart, err := series.BuildChart(rows(
		series.Row{"x": 1, "y": 0, "label": "zero"},
		series.Row{"x": 2, "y": 4, "label": "A"},
		series.Row{"x": 3, "y": 0, "label": "A"},
	), series.Options{DropZeros: true})
	require.NoError(t, err)

	require.Equal(t, []float64{1, 2, 3}, chart.Axis, "dropped rows still define the axis")
	require.Equal(t, "zero", chart.Datasets[0].Label)
	for _, p := range chart.Datasets[0].Points {
		require.Nil(t, p)
	}
	require.Nil(t, chart.Datasets[1].Points[2])
	require.Equal(t, 1.0, float64(chart.Datasets[0].GeometricStdDev))
}

func TestBuildDatasetsIntervals(t *testing.T) {
	ds, err := series.BuildDatasets(rows(
		series.Row{"x": 1, "y": 2, "y_min": 1, "y_max": 4, "label": "A"},
		series.Row{"x": 2, "y": 8, "label": "A"},
	), series.Options{Transform: series.TransformGeomean, Intervals: true})
	require.NoError(t, err)

	iv := ds[0].Intervals[0]
	require.NotNil(t, iv)
	require.InDelta(t, stats.PercentDiff(4, 1), float64(iv.Min), 1e-12)
	require.InDelta(t, stats.PercentDiff(4, 4), float64(iv.Max), 1e-12)
	require.Nil(t, ds[0].Intervals[1], "row without bounds has no whisker")
}

func TestBuildDatasetsNumericStrings(t *testing.T) {
	ds, err := series.BuildDatasets(rows(
		series.Row{"x": "3", "y": json.Number("1.5"), "label": 42},
	), series.Options{})
	require.NoError(t, err)
	require.Equal(t, "42", ds[0].Label)
	require.Equal(t, 3.0, ds[0].Points[0].X)
	require.Equal(t, 1.5, float64(ds[0].Points[0].Y))
}

func TestBuildDatasetsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		row   series.Row
		field string
	}{
		{"missing y", series.Row{"x": 1, "label": "A"}, "y"},
		{"null x", series.Row{"x": nil, "y": 1, "label": "A"}, "x"},
		{"missing label", series.Row{"x": 1, "y": 1}, "label"},
		{"non numeric x", series.Row{"x": "abc", "y": 1, "label": "A"}, "x"},
		{"object label", series.Row{"x": 1, "y": 1, "label": map[string]any{}}, "label"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := series.BuildDatasets(rows(series.Row{"x": 0, "y": 1, "label": "ok"}, tt.row), series.Options{})
			require.True(t, errors.Is(err, series.ErrMalformedObservation))

			var me *series.MalformedObservationError
			require.ErrorAs(t, err, &me)
			require.Equal(t, 1, me.Index)
			require.Equal(t, tt.field, me.Field)
		})
	}
}

func TestBuildDatasetsEmpty(t *testing.T) {
	chart, err := series.BuildChart(nil, series.Options{})
	require.NoError(t, err)
	require.Empty(t, chart.Axis)
	require.Empty(t, chart.Datasets)
}

func TestParseTransform(t *testing.T) {
	for in, want := range map[string]series.Transform{
		"":        series.TransformNone,
		"none":    series.TransformNone,
		"geomean": series.TransformGeomean,
		"zscore":  series.TransformZScore,
	} {
		got, err := series.ParseTransform(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := series.ParseTransform("log")
	require.Error(t, err)
}

func TestDatasetJSONHandlesNaN(t *testing.T) {
	ds, err := series.BuildDatasets(rows(
		series.Row{"x": 1, "y": -1, "label": "neg"},
		series.Row{"x": 2, "y": 4, "label": "neg"},
	), series.Options{Transform: series.TransformZScore})
	require.NoError(t, err)

	data, err := json.Marshal(ds)
	require.NoError(t, err)
	require.Contains(t, string(data), `"label":"neg"`)
}

func TestBuildDatasetsIntegerWidths(t *testing.T) {
	for _, x := range []any{
		int(2), int8(2), int16(2), int32(2), int64(2),
		uint(2), uint8(2), uint16(2), uint32(2), uint64(2),
		float32(2), float64(2), json.Number("2"), "2", []byte("2"),
	} {
		ds, err := series.BuildDatasets([]series.Row{{"x": x, "y": x, "label": "A"}}, series.Options{})
		require.NoError(t, err, "%T", x)
		require.Equal(t, 2.0, ds[0].Points[0].X, "%T", x)
		require.Equal(t, series.Float(2), ds[0].Points[0].Y, "%T", x)
	}
}
