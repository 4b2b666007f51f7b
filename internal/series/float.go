package series

import (
	"math"
	"strconv"
)

// Float is a float64 that encodes NaN and ±Inf as JSON null. Geometric
// transforms of non-positive data produce NaN, and encoding/json refuses to
// marshal it.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}
