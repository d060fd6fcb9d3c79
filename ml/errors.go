package ml

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidNumber  = errors.New("invalid number")
	ErrModelNotFitted = errors.New("model not fitted")
)

// InvalidNumberError reports a form value that is neither blank nor a float.
type InvalidNumberError struct {
	Field  string
	Value  string
	reason string
}

func (e *InvalidNumberError) Error() string {
	if e.reason != "" {
		return "Error converting input to float: " + e.reason
	}
	return fmt.Sprintf("Error converting input to float: could not convert string to float: '%s'", e.Value)
}

func (e *InvalidNumberError) Is(target error) bool { return target == ErrInvalidNumber }

// ModelNotFittedError reports a registry entry without an inference capability.
type ModelNotFittedError struct {
	Model string
}

func (e *ModelNotFittedError) Error() string {
	return fmt.Sprintf("Model not fitted error: This %s instance is not fitted yet.", e.Model)
}

func (e *ModelNotFittedError) Is(target error) bool { return target == ErrModelNotFitted }
