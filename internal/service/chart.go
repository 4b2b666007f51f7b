package service

import (
	"context"
	"errors"
	"net/url"

	"dashboard-go/internal/models"
	"dashboard-go/internal/params"
	"dashboard-go/internal/series"
	"dashboard-go/internal/source"
	"dashboard-go/internal/state"
)

// ErrNoSource is returned when a table is charted before any source is connected.
var ErrNoSource = errors.New("service: no row source connected")

// ChartService turns rows and renderer parameters into chart payloads.
type ChartService struct {
	State    *state.AppState
	RowLimit int
}

func NewChartService(st *state.AppState, rowLimit int) *ChartService {
	return &ChartService{State: st, RowLimit: rowLimit}
}

// Conform checks req.Model against the request's schema, or against the
// named renderer's schema when no explicit schema is given.
func (s *ChartService) Conform(req models.ConformRequest) (*models.ConformResponse, error) {
	schema := req.Params
	if schema == nil && req.Renderer != "" {
		var err error
		if schema, err = params.RendererSchema(req.Renderer); err != nil {
			return nil, err
		}
	} else if err := schema.Validate(); err != nil {
		return nil, err
	}

	model, rep := params.Conform(schema, req.Model)
	resp := &models.ConformResponse{
		Model:    model,
		Modified: rep.Modified,
		Valid:    rep.Valid,
		Invalid:  rep.Invalid,
		Result:   rep.Modified,
	}
	if resp.Invalid == nil {
		resp.Invalid = []string{}
	}
	if req.Strict {
		resp.Result = rep.Valid
	}
	return resp, nil
}

// EditMulti adds values to, or removes one index from, a multi parameter and
// returns the conformed model.
func (s *ChartService) EditMulti(req models.MultiEditRequest) (*models.MultiEditResponse, error) {
	if err := req.Params.Validate(); err != nil {
		return nil, err
	}
	model := req.Model.Clone()

	var (
		v   params.Value
		err error
	)
	switch {
	case req.Remove != nil:
		v, err = params.RemoveValue(model, req.Name, *req.Remove)
	default:
		v, err = params.AddValues(model, req.Name, req.Add, req.NoDuplicates)
	}
	if err != nil {
		return nil, err
	}
	model, _ = params.Conform(req.Params, model)
	return &models.MultiEditResponse{Model: model, Value: v}, nil
}

// MigrateLegacyParams rewrites the retired boolean geomean flag as
// post=geomean. It reports whether the model changed.
func MigrateLegacyParams(model params.Model) bool {
	legacy, ok := model["geomean"]
	if !ok {
		return false
	}
	delete(model, "geomean")

	on, isBool := legacy.AsBool()
	if !isBool {
		str, _ := legacy.AsString()
		on = str == "true"
	}
	if on && postUnset(model["post"]) {
		model["post"] = params.String(string(series.TransformGeomean))
	}
	return true
}

// postUnset reports whether post carries no choice: absent, null or "".
func postUnset(post params.Value) bool {
	if post.IsNull() {
		return true
	}
	s, ok := post.AsString()
	return ok && s == ""
}

// LineOptions maps conformed line-graph parameters onto series options.
func LineOptions(model params.Model, hidden []string) (series.Options, error) {
	post, _ := model["post"].AsString()
	t, err := series.ParseTransform(post)
	if err != nil {
		return series.Options{}, err
	}
	return series.Options{
		Transform: t,
		Hidden:    hidden,
		DropZeros: flag(model, "drop_zeros"),
		Intervals: flag(model, "intervals"),
	}, nil
}

// Line builds a line graph from req.
func (s *ChartService) Line(req models.LineChartRequest) (*models.LineChartResponse, error) {
	model := req.Params.Clone()
	migrated := MigrateLegacyParams(model)

	schema, err := params.RendererSchema(params.RendererLineGraph)
	if err != nil {
		return nil, err
	}
	model, rep := params.Conform(schema, model)
	rep.Modified = rep.Modified || migrated

	opts, err := LineOptions(model, req.Hidden)
	if err != nil {
		return nil, err
	}
	chart, err := series.BuildChart(req.Rows, opts)
	if err != nil {
		return nil, err
	}

	return &models.LineChartResponse{
		Params:     model,
		Report:     rep,
		Axis:       chart.Axis,
		Datasets:   chart.Datasets,
		YAxis:      series.YAxisBounds(chart.Datasets, number(model, "ymin"), number(model, "ymax"), opts.Intervals),
	}, nil
}

// TableLine charts rows of table from the connected source. Line-graph
// parameters come from query, along with hidden labels ("hide"), legend
// clicks that flip a label's visibility ("toggle") and a label filter
// ("label"). When the repaired parameters render to a different query string,
// Redirect carries the repaired one; toggles always produce a redirect with
// the updated "hide" list.
func (s *ChartService) TableLine(ctx context.Context, table string, query url.Values) (*models.LineChartResponse, error) {
	ds := s.State.GetSource()
	if ds == nil {
		return nil, ErrNoSource
	}

	schema, err := params.RendererSchema(params.RendererLineGraph)
	if err != nil {
		return nil, err
	}
	model := params.FromQuery(query, schema)
	hidden, labels := query["hide"], query["label"]
	for _, label := range query["toggle"] {
		hidden = series.ToggleHidden(hidden, label)
	}
	delete(model, "hide")
	delete(model, "toggle")
	delete(model, "label")

	rows, err := ds.FetchRows(ctx, table, source.Query{Labels: labels, Limit: s.RowLimit})
	if err != nil {
		return nil, err
	}

	resp, err := s.Line(models.LineChartRequest{Rows: rows, Params: model, Hidden: hidden})
	if err != nil {
		return nil, err
	}

	repaired := params.ToQuery(resp.Params)
	for _, h := range hidden {
		repaired.Add("hide", h)
	}
	for _, l := range labels {
		repaired.Add("label", l)
	}
	if enc := repaired.Encode(); enc != query.Encode() {
		resp.Redirect = enc
	}
	return resp, nil
}

// Bar builds a bar chart from req.
func (s *ChartService) Bar(req models.BarChartRequest) (*models.BarChartResponse, error) {
	schema, err := params.RendererSchema(params.RendererBarChart)
	if err != nil {
		return nil, err
	}
	model, rep := params.Conform(schema, req.Params)
	chart, err := series.BuildBarChart(req.Rows, req.Hidden)
	if err != nil {
		return nil, err
	}
	return &models.BarChartResponse{Params: model, Report: rep, Chart: chart}, nil
}

// Pie builds a pie chart from req.
func (s *ChartService) Pie(req models.PieChartRequest) (*models.PieChartResponse, error) {
	schema, err := params.RendererSchema(params.RendererPieChart)
	if err != nil {
		return nil, err
	}
	model, rep := params.Conform(schema, req.Params)
	pie, err := series.BuildPie(req.Rows)
	if err != nil {
		return nil, err
	}
	return &models.PieChartResponse{Params: model, Report: rep, Chart: pie}, nil
}

func flag(model params.Model, name string) bool {
	b, _ := model[name].AsBool()
	return b
}

func number(model params.Model, name string) *float64 {
	n, ok := model[name].AsNumber()
	if !ok {
		return nil
	}
	return &n
}
