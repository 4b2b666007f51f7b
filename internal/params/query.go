package params

import "net/url"

// FromQuery builds a model from URL query parameters. Everything arrives as a
// string except multi parameters, which collect every repeated value.
func FromQuery(values url.Values, schema Schema) Model {
	m := make(Model, len(values))
	for key, vals := range values {
		if d, ok := schema.Lookup(key); ok && d.Kind == KindMulti {
			m[key] = List(vals...)
			continue
		}
		if len(vals) > 0 {
			m[key] = String(vals[0])
		}
	}
	return m
}

// ToQuery renders a model back into query parameters, lists as repeated keys.
func ToQuery(model Model) url.Values {
	q := make(url.Values, len(model))
	for key, v := range model {
		switch v.Type() {
		case TypeNull:
			continue
		case TypeList:
			items, _ := v.AsList()
			q[key] = items
		default:
			q.Set(key, v.String())
		}
	}
	return q
}
