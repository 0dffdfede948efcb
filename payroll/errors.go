/*
errors.go - Centralized error types for the payroll engine

PURPOSE:
  All engine error types in one place. Two families with opposite policies:

  1. Calculation input problems (ValidationError, ErrMissingDates) -
     returned to the caller so a UI can render the refusal.
  2. Marker/storage problems (NotFoundError, StorageError) - ALWAYS
     surfaced; a failed marker write controls money and is never absorbed.

  Parse noise (malformed clock times, unreadable dates) is deliberately
  NOT an error family: it degrades to a zero contribution and is logged
  inside the calculators.

USAGE:
  if payroll.IsValidation(err) { ... render refusal ... }
  if payroll.IsNotFound(err)   { ... 404 ... }
  if payroll.IsStorage(err)    { ... 500, alert ... }
*/
package payroll

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrEmployeeNotFound is returned when a lookup or mark-paid targets
	// an unknown employee.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrMissingDates is returned when an employee has neither a payment
	// marker nor a hire date and fallback periods are disabled.
	ErrMissingDates = errors.New("employee has no payment marker and no hire date")

	// ErrStorage marks persistence failures. Marker writes wrap their
	// cause with StorageError, which unwraps to this.
	ErrStorage = errors.New("storage failure")

	// ErrMarkInProgress is returned when a second mark-paid for the same
	// employee and kind overlaps an in-flight one.
	ErrMarkInProgress = errors.New("payment marking already in progress")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError refuses a calculation over unusable employee data,
// carrying enough identity for the caller to render the refusal.
type ValidationError struct {
	EmployeeID   EmployeeID
	EmployeeName string
	Reason       string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("cannot calculate for employee %s (%s): %s",
		e.EmployeeID, e.EmployeeName, e.Reason)
}

// NotFoundError identifies which employee was missing.
type NotFoundError struct {
	EmployeeID EmployeeID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("employee %s not found", e.EmployeeID)
}

func (e *NotFoundError) Unwrap() error { return ErrEmployeeNotFound }

// StorageError wraps a persistence failure with the operation that hit it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: storage failure: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// =============================================================================
// ERROR HELPERS
// =============================================================================

func IsNotFound(err error) bool { return errors.Is(err, ErrEmployeeNotFound) }

func IsStorage(err error) bool { return errors.Is(err, ErrStorage) }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
