package models

import (
	"dashboard-go/internal/params"
	"dashboard-go/internal/series"
	"dashboard-go/internal/state"
)

// HealthResponse is returned by /health
type HealthResponse struct {
	Status     string            `json:"status"`
	Connected  bool              `json:"connected"`
	Connection *state.Connection `json:"connection,omitempty"`
}

// RenderersResponse lists renderer names.
type RenderersResponse struct {
	Renderers []string `json:"renderers"`
}

// SchemaResponse is returned by /api/renderers/{renderer}/params
type SchemaResponse struct {
	Renderer string        `json:"renderer"`
	Params   params.Schema `json:"params"`
}

// ConformResponse reports the repaired model.
type ConformResponse struct {
	Model    params.Model `json:"model"`
	Modified bool         `json:"modified"`
	Valid    bool         `json:"valid"`
	Invalid  []string     `json:"invalid"`
	// Result is Valid for strict requests and Modified otherwise.
	Result bool `json:"result"`
}

// MultiEditResponse holds the updated model after a multi edit.
type MultiEditResponse struct {
	Model params.Model `json:"model"`
	Value params.Value `json:"value"`
}

// LineChartResponse is everything the frontend needs to draw a line graph.
type LineChartResponse struct {
	Params   params.Model          `json:"params"`
	Report   params.Report         `json:"report"`
	Axis     []float64             `json:"axis"`
	Datasets []series.ChartDataset `json:"datasets"`
	YAxis    series.Bounds         `json:"y_axis"`
	// Redirect is the repaired query string when the request's was modified.
	Redirect string `json:"redirect,omitempty"`
}

// BarChartResponse wraps a bar chart with its conformed parameters.
type BarChartResponse struct {
	Params params.Model     `json:"params"`
	Report params.Report    `json:"report"`
	Chart  *series.BarChart `json:"chart"`
}

// PieChartResponse wraps a pie chart with its conformed parameters.
type PieChartResponse struct {
	Params params.Model  `json:"params"`
	Report params.Report `json:"report"`
	Chart  *series.Pie   `json:"chart"`
}

// ColorResponse is returned by /api/colors/{label}
type ColorResponse struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// TablesResponse lists tables of the connected source.
type TablesResponse struct {
	Tables []string `json:"tables"`
}

// ConnectResponse confirms a new row source.
type ConnectResponse struct {
	Status string `json:"status"`
	Driver string `json:"driver"`
	Tables int    `json:"tables"`
}
