package physics

import (
	"errors"
	"fmt"
)

// Domain errors for construction and startup.
var (
	// ErrInvalidArgument indicates a shape or configuration parameter out of range.
	ErrInvalidArgument = errors.New("physics: invalid argument")

	// ErrSystem indicates a failure in a host collaborator (window, renderer, terminal).
	ErrSystem = errors.New("physics: system failure")
)

// ArgumentError reports an invalid construction parameter.
type ArgumentError struct {
	Param  string
	Value  float64
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid %s (%g): %s", e.Param, e.Value, e.Reason)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// SystemError wraps a failure raised by a collaborator outside the core.
type SystemError struct {
	Op  string
	Err error
}

func (e *SystemError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *SystemError) Unwrap() error {
	return e.Err
}

func (e *SystemError) Is(target error) bool {
	return target == ErrSystem
}
