package series

import (
	"dashboard-go/internal/palette"
	"dashboard-go/internal/stats"
)

// BarDataset is one label's bars over the sorted categories.
type BarDataset struct {
	Label    string   `json:"label"`
	Values   []*Float `json:"values"`
	FullData []Row    `json:"full_data"`
	Color    string   `json:"color"`
	Hidden   bool     `json:"hidden"`
}

// BarChart holds the category axis and one dataset per label.
type BarChart struct {
	Categories []string     `json:"categories"`
	Datasets   []BarDataset `json:"datasets"`
}

// BuildBarChart groups rows with a categorical x by label. Rows need x, y
// and label; numeric x values are used as their decimal text.
func BuildBarChart(rows []Row, hidden []string) (*BarChart, error) {
	type bar struct {
		category string
		y        float64
		row      Row
	}

	var labels []string
	groups := make(map[string][]bar)
	var categories []string
	for i, row := range rows {
		category, err := labelField(row, "x", i)
		if err != nil {
			return nil, err
		}
		y, err := numberField(row, "y", i)
		if err != nil {
			return nil, err
		}
		label, err := labelField(row, "label", i)
		if err != nil {
			return nil, err
		}
		if _, ok := groups[label]; !ok {
			labels = append(labels, label)
		}
		groups[label] = append(groups[label], bar{category: category, y: y, row: row})
		categories = append(categories, category)
	}
	categories = stats.UniqueStrings(categories)

	position := make(map[string]int, len(categories))
	for i, c := range categories {
		position[c] = i
	}
	isHidden := make(map[string]bool, len(hidden))
	for _, l := range hidden {
		isHidden[l] = true
	}

	chart := &BarChart{Categories: categories, Datasets: make([]BarDataset, 0, len(labels))}
	for _, label := range labels {
		ds := BarDataset{
			Label:    label,
			Values:   make([]*Float, len(categories)),
			FullData: make([]Row, len(categories)),
			Color:    palette.ColorForLabel(label),
			Hidden:   isHidden[label],
		}
		for _, b := range groups[label] {
			i := position[b.category]
			v := Float(b.y)
			ds.Values[i] = &v
			ds.FullData[i] = b.row
		}
		chart.Datasets = append(chart.Datasets, ds)
	}
	return chart, nil
}
