package params

import "fmt"

// Kind is the declared type of a parameter.
type Kind string

const (
	KindQuery        Kind = "query"
	KindNatural      Kind = "natural"
	KindInteger      Kind = "integer"
	KindIntegerRange Kind = "integer_range"
	KindReal         Kind = "real"
	KindRealRange    Kind = "real_range"
	KindText         Kind = "text"
	KindString       Kind = "string"
	KindBoolean      Kind = "boolean"
	KindDate         Kind = "date"
	KindMulti        Kind = "multi"
	KindChoice       Kind = "choice"
)

// legacyKinds maps spellings still served by older backends.
var legacyKinds = map[string]Kind{
	"nat":  KindNatural,
	"some": KindMulti,
}

// ParseKind resolves a kind name, accepting the legacy spellings.
func ParseKind(s string) (Kind, error) {
	if k, ok := legacyKinds[s]; ok {
		return k, nil
	}
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindQuery, KindNatural, KindInteger, KindIntegerRange, KindReal, KindRealRange,
		KindText, KindString, KindBoolean, KindDate, KindMulti, KindChoice:
		return true
	}
	return false
}

// Ranged reports whether k needs min and max bounds.
func (k Kind) Ranged() bool {
	return k == KindIntegerRange || k == KindRealRange
}

// Numeric reports whether values of k are parsed as numbers.
func (k Kind) Numeric() bool {
	switch k {
	case KindNatural, KindInteger, KindIntegerRange, KindReal, KindRealRange:
		return true
	}
	return false
}

// Enumerated reports whether k draws its values from Options.
func (k Kind) Enumerated() bool {
	return k == KindQuery || k == KindChoice
}

// UnmarshalText lets JSON and YAML schema documents use either spelling.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
