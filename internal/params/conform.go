package params

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Report summarizes one conformance pass.
type Report struct {
	// Modified is set when the returned model differs from the input.
	Modified bool `json:"modified"`
	// Valid is set when every parameter held an acceptable value before repair.
	Valid bool `json:"valid"`
	// Invalid names the parameters that failed validation, in schema order.
	Invalid []string `json:"invalid,omitempty"`
}

// Conform coerces and validates model against schema and returns a repaired
// copy. The input model is not modified.
//
// Each parameter is handled independently, in schema order. A value that can
// be coerced to its kind is written back in coerced form. A value that cannot
// is removed and replaced by the parameter's default when one is usable, or
// by an empty list for multi parameters. An absent optional parameter is
// valid; it only picks up its default if it has one.
//
// Keys the schema does not mention are carried over untouched.
func Conform(schema Schema, model Model) (Model, Report) {
	out := model.Clone()
	rep := Report{Valid: true}

	for _, d := range schema {
		orig, present := out[d.Name]
		if present && orig.IsNull() {
			delete(out, d.Name)
			present = false
		}

		if !present && d.Optional {
			if def, ok := d.defaultValue(); ok {
				out[d.Name] = def
				rep.Modified = true
			}
			continue
		}

		if present {
			if v, ok := d.coerce(orig); ok {
				if !v.Equal(orig) {
					rep.Modified = true
				}
				out[d.Name] = v
				continue
			}
			delete(out, d.Name)
			rep.Modified = true
		}

		rep.Valid = false
		rep.Invalid = append(rep.Invalid, d.Name)

		if def, ok := d.defaultValue(); ok {
			out[d.Name] = def
			rep.Modified = true
		} else if d.Kind == KindMulti {
			out[d.Name] = List()
			rep.Modified = true
		}
	}
	return out, rep
}

// ConformInPlace repairs model in place. With strict it returns whether the
// model was fully valid; otherwise whether anything was changed.
//
// Only writes count as changes: a required parameter that is absent and has
// no default (and is not multi) makes the model invalid but leaves it
// unmodified, so the non-strict result is false for it. Callers that need
// "anything was wrong" should pass strict and negate the result.
func ConformInPlace(schema Schema, model Model, strict bool) bool {
	out, rep := Conform(schema, model)
	for k := range model {
		if _, ok := out[k]; !ok {
			delete(model, k)
		}
	}
	for k, v := range out {
		model[k] = v
	}
	if strict {
		return rep.Valid
	}
	return rep.Modified
}

// defaultValue returns the default coerced to the parameter's kind. A default
// that cannot satisfy its own kind is treated as absent.
func (d Description) defaultValue() (Value, bool) {
	if d.Default == nil || d.Default.IsNull() {
		return Value{}, false
	}
	return d.coerce(*d.Default)
}

// coerce converts v to d's kind and reports whether the result is valid.
func (d Description) coerce(v Value) (Value, bool) {
	switch d.Kind {
	case KindQuery, KindChoice:
		s, ok := v.AsString()
		if !ok {
			return v, false
		}
		for _, o := range d.Options {
			if o == s {
				return v, true
			}
		}
		return v, false

	case KindNatural:
		n, ok := toNumber(v)
		return Number(n), ok && isInteger(n) && n >= 0

	case KindInteger:
		n, ok := toNumber(v)
		return Number(n), ok && isInteger(n)

	case KindIntegerRange:
		n, ok := toNumber(v)
		return Number(n), ok && isInteger(n) && d.inRange(n)

	case KindReal:
		n, ok := toNumber(v)
		return Number(n), ok

	case KindRealRange:
		n, ok := toNumber(v)
		return Number(n), ok && d.inRange(n)

	case KindText, KindString:
		s, ok := v.AsString()
		return v, ok && (d.Optional || s != "")

	case KindBoolean:
		if s, ok := v.AsString(); ok {
			switch s {
			case "true":
				return Bool(true), true
			case "false":
				return Bool(false), true
			}
			return v, false
		}
		return v, v.Type() == TypeBool

	case KindDate:
		t, ok := toDate(v)
		if !ok {
			return v, false
		}
		return Date(t), true

	case KindMulti:
		items, ok := v.AsList()
		if !ok {
			return v, false
		}
		if d.NoDuplicates && hasDuplicates(items) {
			return v, false
		}
		return v, true
	}
	return v, true
}

func (d Description) inRange(n float64) bool {
	if d.Min != nil && n < *d.Min {
		return false
	}
	if d.Max != nil && n > *d.Max {
		return false
	}
	return true
}

// toNumber parses numbers out of strings. Only finite results are accepted.
func toNumber(v Value) (float64, bool) {
	var n float64
	switch v.Type() {
	case TypeNumber:
		n, _ = v.AsNumber()
	case TypeString:
		s, _ := v.AsString()
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func isInteger(n float64) bool {
	return n == math.Trunc(n)
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	time.DateTime,
	time.DateOnly,
}

func toDate(v Value) (time.Time, bool) {
	if t, ok := v.AsDate(); ok {
		return t, !t.IsZero()
	}
	s, ok := v.AsString()
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func hasDuplicates(items []string) bool {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if seen[it] {
			return true
		}
		seen[it] = true
	}
	return false
}
