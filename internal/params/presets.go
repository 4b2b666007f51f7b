package params

import (
	"fmt"
	"sort"
)

// Renderer names understood by the dashboard.
const (
	RendererLineGraph = "line-graph"
	RendererBarChart  = "bar-chart"
	RendererPieChart  = "pie-chart"
	RendererTable     = "table"
)

func boolParam(name, doc string) Description {
	return Description{Name: name, Kind: KindBoolean, Optional: true, Default: ptr(Bool(false)), Doc: doc}
}

func textParam(name, doc string) Description {
	return Description{Name: name, Kind: KindString, Optional: true, Doc: doc}
}

func realParam(name, doc string) Description {
	return Description{Name: name, Kind: KindReal, Optional: true, Doc: doc}
}

func choiceParam(name, doc string, options ...string) Description {
	return Description{Name: name, Kind: KindChoice, Optional: true, Options: options, Default: ptr(String(options[0])), Doc: doc}
}

func ptr(v Value) *Value { return &v }

var rendererSchemas = map[string]func() Schema{
	RendererLineGraph: func() Schema {
		return Schema{
			textParam("title", "Set title of displayed graph."),
			textParam("xlabel", "Set label for the X axis of the graph"),
			textParam("ylabel", "Set label for the Y axis of the graph"),
			realParam("ymin", "Set minimum value for y axis"),
			realParam("ymax", "Set maximum value for y axis"),
			boolParam("intervals", "Show a box and whisker plot"),
			boolParam("hide_points", "Hide points on the graph so it does not look cluttered."),
			choiceParam("post", "Do some post processing on the input data.", "none", "geomean", "zscore"),
			choiceParam("smoothing", "Types of line smoothing.", "none", "bezier"),
			boolParam("drop_zeros", "Remove points where y=0 from the graph."),
			boolParam("axis_on_right", "Put the y axis label on the right of the graph."),
		}
	},
	RendererBarChart: func() Schema {
		return Schema{
			textParam("title", "Set title of displayed graph."),
			textParam("xlabel", "Set label for the X axis of the graph"),
			textParam("ylabel", "Set label for the Y axis of the graph"),
			realParam("min", "Minimum value on the value axes (y unless horizontal)"),
			realParam("max", "Maximum value on the value axes (y unless horizontal)"),
			boolParam("stacked", "Stack bars from different datasets on top of each other."),
			boolParam("horizontal", "If checked, layout bars horizontally."),
		}
	},
	RendererPieChart: func() Schema {
		return Schema{
			textParam("title", "Set title of displayed graph."),
		}
	},
	RendererTable: func() Schema {
		return Schema{}
	},
}

// RendererSchema returns a fresh copy of the parameters a renderer accepts.
func RendererSchema(name string) (Schema, error) {
	build, ok := rendererSchemas[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRenderer, name)
	}
	return build(), nil
}

// Renderers lists the known renderer names, sorted.
func Renderers() []string {
	names := make([]string, 0, len(rendererSchemas))
	for name := range rendererSchemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
