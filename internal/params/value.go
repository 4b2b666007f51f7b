package params

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ValueType tags the variant held by a Value.
type ValueType int

const (
	TypeNull ValueType = iota
	TypeString
	TypeNumber
	TypeBool
	TypeDate
	TypeList
)

func (t ValueType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeNumber:
		return "number"
	case TypeBool:
		return "boolean"
	case TypeDate:
		return "date"
	case TypeList:
		return "list"
	}
	return "null"
}

// Value is a parameter value: null, string, number, boolean, date, or a list
// of strings. The zero Value is null.
type Value struct {
	typ  ValueType
	str  string
	num  float64
	b    bool
	date time.Time
	list []string
}

func String(s string) Value { return Value{typ: TypeString, str: s} }
func Number(n float64) Value { return Value{typ: TypeNumber, num: n} }
func Bool(b bool) Value { return Value{typ: TypeBool, b: b} }
func Date(t time.Time) Value { return Value{typ: TypeDate, date: t} }

// List builds a list value. List() is the empty list, not null.
func List(items ...string) Value {
	l := make([]string, len(items))
	copy(l, items)
	return Value{typ: TypeList, list: l}
}

func (v Value) Type() ValueType { return v.typ }
func (v Value) IsNull() bool { return v.typ == TypeNull }

func (v Value) AsString() (string, bool) { return v.str, v.typ == TypeString }
func (v Value) AsNumber() (float64, bool) { return v.num, v.typ == TypeNumber }
func (v Value) AsBool() (bool, bool) { return v.b, v.typ == TypeBool }
func (v Value) AsDate() (time.Time, bool) { return v.date, v.typ == TypeDate }

// AsList returns a copy of the list items.
func (v Value) AsList() ([]string, bool) {
	if v.typ != TypeList {
		return nil, false
	}
	l := make([]string, len(v.list))
	copy(l, v.list)
	return l, true
}

// Equal compares variant and content. Dates compare as instants.
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ {
		return false
	}
	switch v.typ {
	case TypeString:
		return v.str == o.str
	case TypeNumber:
		return v.num == o.num
	case TypeBool:
		return v.b == o.b
	case TypeDate:
		return v.date.Equal(o.date)
	case TypeList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != o.list[i] {
				return false
			}
		}
	}
	return true
}

// String renders the value the way it appears in a query string.
func (v Value) String() string {
	switch v.typ {
	case TypeString:
		return v.str
	case TypeNumber:
		return formatNumber(v.num)
	case TypeBool:
		return strconv.FormatBool(v.b)
	case TypeDate:
		return formatDate(v.date)
	case TypeList:
		return fmt.Sprint(v.list)
	}
	return ""
}

// Interface returns the value as a plain Go value (nil, string, float64,
// bool, time.Time or []string).
func (v Value) Interface() any {
	switch v.typ {
	case TypeString:
		return v.str
	case TypeNumber:
		return v.num
	case TypeBool:
		return v.b
	case TypeDate:
		return v.date
	case TypeList:
		l, _ := v.AsList()
		return l
	}
	return nil
}

func (v Value) clone() Value {
	if v.typ == TypeList {
		return List(v.list...)
	}
	return v
}

// FromInterface converts decoded JSON/YAML/SQL values into a Value.
func FromInterface(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return t.clone(), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case float64:
		return Number(t), nil
	case float32:
		return Number(float64(t)), nil
	case int:
		return Number(float64(t)), nil
	case int8:
		return Number(float64(t)), nil
	case int16:
		return Number(float64(t)), nil
	case int32:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case uint:
		return Number(float64(t)), nil
	case uint8:
		return Number(float64(t)), nil
	case uint16:
		return Number(float64(t)), nil
	case uint32:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("params: bad number %q: %w", t, err)
		}
		return Number(f), nil
	case time.Time:
		return Date(t), nil
	case []string:
		return List(t...), nil
	case []any:
		items := make([]string, 0, len(t))
		for _, e := range t {
			s, err := scalarString(e)
			if err != nil {
				return Value{}, err
			}
			items = append(items, s)
		}
		return List(items...), nil
	}
	return Value{}, fmt.Errorf("params: unsupported value type %T", x)
}

func scalarString(x any) (string, error) {
	switch t := x.(type) {
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case float64:
		return formatNumber(t), nil
	case int:
		return strconv.Itoa(t), nil
	case json.Number:
		return t.String(), nil
	}
	return "", fmt.Errorf("params: unsupported list element type %T", x)
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.typ {
	case TypeNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return []byte("null"), nil
		}
	case TypeDate:
		return json.Marshal(v.date.Format(time.RFC3339))
	}
	return json.Marshal(v.Interface())
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var x any
	if err := json.Unmarshal(data, &x); err != nil {
		return err
	}
	parsed, err := FromInterface(x)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var x any
	if err := node.Decode(&x); err != nil {
		return err
	}
	parsed, err := FromInterface(x)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatDate(t time.Time) string {
	u := t.UTC()
	if u.Hour() == 0 && u.Minute() == 0 && u.Second() == 0 && u.Nanosecond() == 0 {
		return u.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339)
}
