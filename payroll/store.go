/*
store.go - Persistence interfaces consumed by the engine

PURPOSE:
  The engine reads employee and attendance snapshots and writes exactly one
  thing back: the payment marker. These interfaces are the whole contract;
  the stores own everything else (creation, mutation, schema).

IMPLEMENTATIONS:
  - store/sqlite: production SQLite store
  - payroll/store: in-memory store for tests and dev
*/
package payroll

import "context"

// =============================================================================
// EMPLOYEE STORE
// =============================================================================

// EmployeeStore owns employee records. GetEmployee returns (nil, nil) when
// the id is unknown; the engine maps that to NotFoundError.
type EmployeeStore interface {
	GetEmployee(ctx context.Context, id EmployeeID) (*Employee, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
	SaveEmployee(ctx context.Context, emp Employee) error

	// SetMarker writes last_paid or last_bonus_paid (as an ISO date) and
	// returns how many records were updated; zero means the employee does
	// not exist. This is the engine's ONLY write.
	SetMarker(ctx context.Context, id EmployeeID, kind PayKind, paidOn Date) (int64, error)
}

// =============================================================================
// ATTENDANCE STORE
// =============================================================================

// AttendanceStore owns attendance records; the engine only queries ranges.
type AttendanceStore interface {
	// RecordsInRange returns the employee's records with dates in
	// [from, to], ordered by date.
	RecordsInRange(ctx context.Context, id EmployeeID, from, to Date) ([]AttendanceRecord, error)

	SaveRecord(ctx context.Context, rec AttendanceRecord) error
}
