package params_test

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"dashboard-go/internal/params"

	"github.com/stretchr/testify/require"
)

func TestValueJSON(t *testing.T) {
	m := params.Model{
		"s":     params.String("x"),
		"n":     params.Number(2.5),
		"b":     params.Bool(false),
		"d":     params.Date(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)),
		"l":     params.List("a"),
		"empty": params.List(),
		"nan":   params.Number(math.NaN()),
	}
	data, err := json.Marshal(m)
	require.NoError(t, err)
	require.JSONEq(t, `{"s":"x","n":2.5,"b":false,"d":"2024-01-02T03:04:05Z","l":["a"],"empty":[],"nan":null}`, string(data))
}

func TestValueEqual(t *testing.T) {
	require.True(t, params.Number(1).Equal(params.Number(1)))
	require.False(t, params.Number(1).Equal(params.String("1")))
	require.False(t, params.List("a").Equal(params.List("a", "b")))
	require.True(t, params.Value{}.Equal(params.Value{}))

	at := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	require.True(t, params.Date(at).Equal(params.Date(at.In(time.FixedZone("x", 3600)))))
}

func TestListIsCopied(t *testing.T) {
	items := []string{"a", "b"}
	v := params.List(items...)
	items[0] = "z"

	got, ok := v.AsList()
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, got)

	got[1] = "z"
	again, _ := v.AsList()
	require.Equal(t, "b", again[1])
}

func TestFromInterfaceRejectsObjects(t *testing.T) {
	_, err := params.FromInterface(map[string]any{"a": 1})
	require.Error(t, err)
}

func TestFromInterfaceIntegerWidths(t *testing.T) {
	for _, x := range []any{
		int(7), int8(7), int16(7), int32(7), int64(7),
		uint(7), uint8(7), uint16(7), uint32(7), uint64(7),
		float32(7), float64(7), json.Number("7"),
	} {
		v, err := params.FromInterface(x)
		require.NoError(t, err, "%T", x)
		n, ok := v.AsNumber()
		require.True(t, ok, "%T", x)
		require.Equal(t, 7.0, n, "%T", x)
	}
}
