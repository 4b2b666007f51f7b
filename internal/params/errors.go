package params

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyName       = errors.New("params: parameter name is empty")
	ErrDuplicateName   = errors.New("params: duplicate parameter name")
	ErrUnknownKind     = errors.New("params: unknown parameter type")
	ErrMissingBounds   = errors.New("params: ranged parameter needs min and max")
	ErrInvalidBounds   = errors.New("params: min is greater than max")
	ErrMissingOptions  = errors.New("params: enumerated parameter needs options")
	ErrUnknownRenderer = errors.New("params: unknown renderer")
	ErrNotMulti        = errors.New("params: value is not a list")
)

// SchemaError reports a problem with one entry of a schema list.
type SchemaError struct {
	Param string
	Err   error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("parameter %q: %v", e.Param, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}
