package solver

import (
	"errors"
	"fmt"
)

// Domain errors for solve operations.
var (
	// ErrInvalidParameter indicates a SimParams precondition violation.
	// It is always detected before any stepping begins.
	ErrInvalidParameter = errors.New("solver: invalid parameter")

	// ErrUnstable indicates a non-finite height was produced during
	// stepping. The solve stops at the offending step rather than
	// returning garbage.
	ErrUnstable = errors.New("solver: numerical instability (non-finite height)")
)

// ParamError reports which parameter failed validation and why.
type ParamError struct {
	Field  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("solver: invalid parameter %s: %s", e.Field, e.Reason)
}

func (e *ParamError) Unwrap() error { return ErrInvalidParameter }

// StepError wraps an error with the step and simulated time at which
// it occurred.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error { return e.Wrapped }
