package series

import "dashboard-go/internal/palette"

// Pie is a single pie chart; slices keep input order.
type Pie struct {
	Labels   []string `json:"labels"`
	Values   []Float  `json:"values"`
	Colors   []string `json:"colors"`
	FullData []Row    `json:"full_data"`
}

// BuildPie reads slices from rows carrying name and value.
func BuildPie(rows []Row) (*Pie, error) {
	pie := &Pie{
		Labels:   make([]string, 0, len(rows)),
		Values:   make([]Float, 0, len(rows)),
		FullData: make([]Row, 0, len(rows)),
	}
	for i, row := range rows {
		name, err := labelField(row, "name", i)
		if err != nil {
			return nil, err
		}
		value, err := numberField(row, "value", i)
		if err != nil {
			return nil, err
		}
		pie.Labels = append(pie.Labels, name)
		pie.Values = append(pie.Values, Float(value))
		pie.FullData = append(pie.FullData, row)
	}
	pie.Colors = palette.ColorsForLabels(pie.Labels)
	return pie, nil
}
