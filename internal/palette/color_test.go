package palette_test

import (
	"regexp"
	"testing"

	"dashboard-go/internal/palette"

	"github.com/stretchr/testify/require"
)

func TestColorForLabelKnownValues(t *testing.T) {
	// Colors already present in bookmarked charts.
	known := map[string]string{
		"gm200":     "#08750b",
		"gm204":     "#8ba8fb",
		"":          "#e9da6f",
		"A":         "#47ca2c",
		"B":         "#19d733",
		"linux-x64": "#bf32c7",
		"é✓":        "#afc80f",
		"😀":         "#70492b",
	}
	for label, want := range known {
		require.Equal(t, want, palette.ColorForLabel(label), "label %q", label)
	}
}

func TestColorForLabelSuffixDiverges(t *testing.T) {
	require.NotEqual(t, palette.ColorForLabel("gm200"), palette.ColorForLabel("gm204"))
}

func TestColorForLabelStable(t *testing.T) {
	first := palette.ColorForLabel("nightly")
	_ = palette.ColorsForLabels([]string{"a", "b", "c"})
	require.Equal(t, first, palette.ColorForLabel("nightly"))
}

func TestColorForLabelFormat(t *testing.T) {
	hex := regexp.MustCompile(`^#[0-9a-f]{6}$`)
	for _, l := range []string{"x", "series-with-a-long-name", "123", "ΔT"} {
		require.Regexp(t, hex, palette.ColorForLabel(l))
	}
}

func TestColorsForLabels(t *testing.T) {
	colors := palette.ColorsForLabels([]string{"gm200", "gm204"})
	require.Equal(t, []string{"#08750b", "#8ba8fb"}, colors)
}
