package params

import "fmt"

// AddValues appends values to the multi parameter name, creating the list if
// the key is absent. With noDuplicates, values already in the list are
// skipped.
func AddValues(model Model, name string, values []string, noDuplicates bool) (Value, error) {
	items, err := listFor(model, name)
	if err != nil {
		return Value{}, err
	}
	for _, v := range values {
		if noDuplicates && contains(items, v) {
			continue
		}
		items = append(items, v)
	}
	model[name] = List(items...)
	return model[name], nil
}

// RemoveValue drops the element at index from the multi parameter name.
// An out-of-range index leaves the list as it is.
func RemoveValue(model Model, name string, index int) (Value, error) {
	items, err := listFor(model, name)
	if err != nil {
		return Value{}, err
	}
	if index >= 0 && index < len(items) {
		items = append(items[:index], items[index+1:]...)
	}
	model[name] = List(items...)
	return model[name], nil
}

func listFor(model Model, name string) ([]string, error) {
	v, ok := model[name]
	if !ok || v.IsNull() {
		return nil, nil
	}
	items, ok := v.AsList()
	if !ok {
		return nil, fmt.Errorf("%w: %q holds a %s", ErrNotMulti, name, v.Type())
	}
	return items, nil
}

func contains(items []string, s string) bool {
	for _, it := range items {
		if it == s {
			return true
		}
	}
	return false
}
