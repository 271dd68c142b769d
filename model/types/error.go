package types

import (
	"errors"
	"fmt"
)

// ErrMethodNotFound is wrapped by NewMethodNotFoundError
var ErrMethodNotFound = errors.New("method not found")

func NewMethodNotFoundError(name string) error {
	return fmt.Errorf("%w: %v", ErrMethodNotFound, name)
}

func NewInvalidInputError(in interface{}) error {
	return fmt.Errorf("invalid input %T", in)
}

func NewInvalidOutputError(in interface{}) error {
	return fmt.Errorf("invalid output %T", in)
}

// NewNoProcessError reports an executable invoked outside a process
func NewNoProcessError(method string) error {
	return fmt.Errorf("%v: no process in context", method)
}
