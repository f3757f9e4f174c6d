package domain

import (
	"errors"
	"fmt"
)

// ErrDimensionMismatch is reported when two mixes of different widths are combined.
var ErrDimensionMismatch = errors.New("mix dimension mismatch")

// ErrMalformedTankGroup is returned when tank indices are negative, duplicated or out of order.
var ErrMalformedTankGroup = errors.New("malformed tank group")

// ErrInvalidTransfer is returned when a transfer cannot be applied to a state.
var ErrInvalidTransfer = errors.New("invalid transfer")

// ErrInvariantViolation is returned when a state breaks the conservation rules
// of its configuration.
var ErrInvariantViolation = errors.New("invariant violation")

// ErrInvalidConfiguration is returned when a Configuration cannot describe a tank bank.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ErrStateNotFound is returned when a state ID cannot be found in an arena.
var ErrStateNotFound = errors.New("state not found")

// DimensionError describes an arithmetic operation on mixes of different widths.
// Mix arithmetic panics with a *DimensionError.
type DimensionError struct {
	Op          string
	Left, Right int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: %v (%d != %d)", e.Op, ErrDimensionMismatch, e.Left, e.Right)
}

func (e *DimensionError) Unwrap() error { return ErrDimensionMismatch }

// InvariantError reports which conservation check failed and by how much.
type InvariantError struct {
	// Tank is the offending tank index, or -1 for whole-state checks.
	Tank     int
	Expected float64
	Actual   float64
}

func (e *InvariantError) Error() string {
	if e.Tank < 0 {
		return fmt.Sprintf("%v: total wine %g does not match configured %g", ErrInvariantViolation, e.Actual, e.Expected)
	}
	return fmt.Sprintf("%v: tank %d holds %g, configured size is %g", ErrInvariantViolation, e.Tank, e.Actual, e.Expected)
}

func (e *InvariantError) Unwrap() error { return ErrInvariantViolation }
