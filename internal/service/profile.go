package service

import (
	"context"
	"fmt"
	"sort"

	"dashboard-go/internal/palette"
	"dashboard-go/internal/series"
	"dashboard-go/internal/source"
)

// ColumnProfile summarizes one column of fetched rows.
type ColumnProfile struct {
	Name          string  `json:"name"`
	NonNullRows   int     `json:"non_null_rows"`
	NullRate      float64 `json:"null_rate"`
	DistinctCount int     `json:"distinct_count"`
	Numeric       bool    `json:"numeric"`
}

// LabelInfo is one series label with the color it will be drawn in.
type LabelInfo struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Rows  int    `json:"rows"`
}

// TableProfile tells the dashboard whether a table can feed a line graph.
type TableProfile struct {
	Table     string          `json:"table"`
	TotalRows int             `json:"total_rows"`
	Columns   []ColumnProfile `json:"columns"`
	Chartable bool            `json:"chartable"`
	// Problem explains why the rows cannot be charted.
	Problem string      `json:"problem,omitempty"`
	Labels  []LabelInfo `json:"labels"`
}

// ProfileRows profiles rows; table is only used for the report.
func ProfileRows(table string, rows []series.Row) TableProfile {
	p := TableProfile{Table: table, TotalRows: len(rows), Labels: []LabelInfo{}}

	names := map[string]bool{}
	for _, row := range rows {
		for name := range row {
			names[name] = true
		}
	}
	cols := make([]string, 0, len(names))
	for name := range names {
		cols = append(cols, name)
	}
	sort.Strings(cols)

	for _, name := range cols {
		p.Columns = append(p.Columns, profileColumn(name, rows))
	}

	obs, err := series.ParseObservations(rows)
	if err != nil {
		p.Problem = err.Error()
		return p
	}
	p.Chartable = len(obs) > 0
	if !p.Chartable {
		p.Problem = "no rows"
	}

	counts := map[string]int{}
	for _, o := range obs {
		if counts[o.Label] == 0 {
			p.Labels = append(p.Labels, LabelInfo{Label: o.Label, Color: palette.ColorForLabel(o.Label)})
		}
		counts[o.Label]++
	}
	for i := range p.Labels {
		p.Labels[i].Rows = counts[p.Labels[i].Label]
	}
	return p
}

func profileColumn(name string, rows []series.Row) ColumnProfile {
	c := ColumnProfile{Name: name, Numeric: true}
	distinct := map[string]bool{}

	for _, row := range rows {
		v, ok := row[name]
		if !ok || v == nil {
			continue
		}
		c.NonNullRows++
		distinct[fmt.Sprint(v)] = true
		if !series.Numeric(v) {
			c.Numeric = false
		}
	}

	c.DistinctCount = len(distinct)
	if len(rows) > 0 {
		c.NullRate = float64(len(rows)-c.NonNullRows) / float64(len(rows))
	}
	if c.NonNullRows == 0 {
		c.Numeric = false
	}
	return c
}

// ProfileTable fetches up to RowLimit rows of table and profiles them.
func (s *ChartService) ProfileTable(ctx context.Context, table string) (*TableProfile, error) {
	ds := s.State.GetSource()
	if ds == nil {
		return nil, ErrNoSource
	}
	rows, err := ds.FetchRows(ctx, table, source.Query{Limit: s.RowLimit})
	if err != nil {
		return nil, err
	}
	p := ProfileRows(table, rows)
	return &p, nil
}
