// Package params describes user-configurable parameters and repairs loosely
// typed parameter models (URL query strings, form input) against them.
package params

// Description is the static schema of one configurable parameter.
type Description struct {
	Name     string `json:"name" yaml:"name"`
	Kind     Kind   `json:"type" yaml:"type"`
	Optional bool   `json:"optional" yaml:"optional"`

	// Min and Max bound the ranged kinds, inclusive.
	Min *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max *float64 `json:"max,omitempty" yaml:"max,omitempty"`

	// Options is the closed value set of query and choice parameters.
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`

	// Default replaces an invalid or absent value. Nil means no recovery value.
	Default *Value `json:"default,omitempty" yaml:"default,omitempty"`

	NoDuplicates bool     `json:"no_duplicates,omitempty" yaml:"no_duplicates,omitempty"`
	Doc          string   `json:"doc,omitempty" yaml:"doc,omitempty"`
	Depends      []string `json:"depends,omitempty" yaml:"depends,omitempty"`
}

// Schema is an ordered list of parameter descriptions.
type Schema []Description

// Validate checks the schema itself: unique non-empty names, known kinds,
// bounds on ranged kinds and options on enumerated kinds.
func (s Schema) Validate() error {
	seen := make(map[string]bool, len(s))
	for _, d := range s {
		if d.Name == "" {
			return &SchemaError{Err: ErrEmptyName}
		}
		if seen[d.Name] {
			return &SchemaError{Param: d.Name, Err: ErrDuplicateName}
		}
		seen[d.Name] = true

		if !d.Kind.Valid() {
			return &SchemaError{Param: d.Name, Err: ErrUnknownKind}
		}
		if d.Kind.Ranged() {
			if d.Min == nil || d.Max == nil {
				return &SchemaError{Param: d.Name, Err: ErrMissingBounds}
			}
			if *d.Min > *d.Max {
				return &SchemaError{Param: d.Name, Err: ErrInvalidBounds}
			}
		}
		if d.Kind.Enumerated() && len(d.Options) == 0 {
			return &SchemaError{Param: d.Name, Err: ErrMissingOptions}
		}
	}
	return nil
}

// Lookup returns the description named name.
func (s Schema) Lookup(name string) (Description, bool) {
	for _, d := range s {
		if d.Name == name {
			return d, true
		}
	}
	return Description{}, false
}

// Names lists parameter names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, d := range s {
		names[i] = d.Name
	}
	return names
}

// Model maps parameter names to their current values.
type Model map[string]Value

// Clone returns a deep copy of m.
func (m Model) Clone() Model {
	out := make(Model, len(m))
	for k, v := range m {
		out[k] = v.clone()
	}
	return out
}
