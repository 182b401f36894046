package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks a malformed or missing argument, rejected before any store access
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownStrategy is returned for a strategy name that does not parse
	ErrUnknownStrategy = fmt.Errorf("%w: unknown strategy", ErrInvalidInput)

	// ErrAlreadyAssigned is returned when a manual assignment finds the employee already on the workday
	ErrAlreadyAssigned = errors.New("employee is already scheduled for this day")

	// ErrWorkdayFull is returned when a manual assignment would exceed the strategy's per-day capacity
	ErrWorkdayFull = errors.New("workday is at capacity for this strategy")
)

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
