// Package series turns raw result rows into chart-ready datasets: rows are
// grouped by label, aligned on a shared x-axis, and optionally rescaled
// relative to each series' geometric mean or spread.
package series

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrMalformedObservation is wrapped by every row-shape failure.
var ErrMalformedObservation = errors.New("series: malformed observation")

// MalformedObservationError identifies the offending row and field.
type MalformedObservationError struct {
	Index int
	Field string
	Value any
}

func (e *MalformedObservationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("row %d: expected %q column in data", e.Index, e.Field)
	}
	return fmt.Sprintf("row %d: bad %q value %v", e.Index, e.Field, e.Value)
}

func (e *MalformedObservationError) Unwrap() error {
	return ErrMalformedObservation
}

// Row is one raw result row as decoded from JSON or scanned from SQL.
type Row map[string]any

// Observation is a parsed row. Row keeps every original field, including
// y_min / y_max and anything the point inspector wants to show.
type Observation struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
	Row   Row     `json:"row"`
}

func parseObservation(row Row, index int) (Observation, error) {
	x, err := numberField(row, "x", index)
	if err != nil {
		return Observation{}, err
	}
	y, err := numberField(row, "y", index)
	if err != nil {
		return Observation{}, err
	}
	label, err := labelField(row, "label", index)
	if err != nil {
		return Observation{}, err
	}
	return Observation{X: x, Y: y, Label: label, Row: row}, nil
}

// ParseObservations parses every row, failing on the first malformed one.
func ParseObservations(rows []Row) ([]Observation, error) {
	obs := make([]Observation, len(rows))
	for i, row := range rows {
		o, err := parseObservation(row, i)
		if err != nil {
			return nil, err
		}
		obs[i] = o
	}
	return obs, nil
}

func numberField(row Row, field string, index int) (float64, error) {
	raw, ok := row[field]
	if !ok || raw == nil {
		return 0, &MalformedObservationError{Index: index, Field: field}
	}
	f, ok := toFloat(raw)
	if !ok {
		return 0, &MalformedObservationError{Index: index, Field: field, Value: raw}
	}
	return f, nil
}

func labelField(row Row, field string, index int) (string, error) {
	raw, ok := row[field]
	if !ok || raw == nil {
		return "", &MalformedObservationError{Index: index, Field: field}
	}
	switch t := raw.(type) {
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	}
	if f, ok := toFloat(raw); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
	return "", &MalformedObservationError{Index: index, Field: field, Value: raw}
}

// optionalFloat reads a numeric field that may be missing.
func optionalFloat(row Row, field string) (float64, bool) {
	raw, ok := row[field]
	if !ok || raw == nil {
		return 0, false
	}
	return toFloat(raw)
}

// Numeric reports whether v would be accepted as an x or y value.
func Numeric(v any) bool {
	_, ok := toFloat(v)
	return ok
}

// toFloat accepts Go numbers, json.Number and numeric strings; SQL drivers
// hand NUMERIC columns back as text.
func toFloat(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int8:
		f = float64(t)
	case int16:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint8:
		f = float64(t)
	case uint16:
		f = float64(t)
	case uint32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case []byte:
		return toFloat(string(t))
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
