package models

import (
	"dashboard-go/internal/params"
	"dashboard-go/internal/series"
	"dashboard-go/internal/source"
)

// ConformRequest asks for a model to be checked against a schema. Either
// Params or Renderer names the schema; Params wins when both are set.
type ConformRequest struct {
	Params   params.Schema `json:"params,omitempty"`
	Renderer string        `json:"renderer,omitempty"`
	Model    params.Model  `json:"model"`
	Strict   bool          `json:"strict"`
}

// LineChartRequest carries rows plus line-graph parameters.
type LineChartRequest struct {
	Rows   []series.Row `json:"rows"`
	Params params.Model `json:"params"`
	Hidden []string     `json:"hidden,omitempty"`
}

// BarChartRequest carries rows plus bar-chart parameters.
type BarChartRequest struct {
	Rows   []series.Row `json:"rows"`
	Params params.Model `json:"params"`
	Hidden []string     `json:"hidden,omitempty"`
}

// PieChartRequest carries rows plus pie-chart parameters.
type PieChartRequest struct {
	Rows   []series.Row `json:"rows"`
	Params params.Model `json:"params"`
}

// MultiEditRequest adds to or removes from a multi parameter.
type MultiEditRequest struct {
	Params       params.Schema `json:"params"`
	Model        params.Model  `json:"model"`
	Name         string        `json:"name"`
	Add          []string      `json:"add,omitempty"`
	Remove       *int          `json:"remove,omitempty"`
	NoDuplicates bool          `json:"no_duplicates"`
}

// ConnectRequest is the body of /api/db/connect.
type ConnectRequest = source.Config
