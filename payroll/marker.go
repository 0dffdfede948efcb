/*
marker.go - Advancing the payment markers

PURPOSE:
  Marking a payment is the engine's only mutation: it sets last_paid or
  last_bonus_paid to the payment date, closing the current period and
  opening the next one the day after.

INVARIANT:
  After marking on day D, the next resolved period for that kind starts at
  D + 1. Together with period.go this partitions calendar time across any
  number of cycles: no day is paid twice, no day is skipped.

SAFETY:
  Marker state controls money, so unlike parse noise nothing here is
  absorbed:
  - the employee is re-fetched at mark time rather than trusting a record
    captured earlier in a review flow,
  - at most one mark-paid per (employee, kind) is in flight at a time,
  - an unknown employee fails with NotFoundError, a write failure with
    StorageError, both surfaced to the caller.
*/
package payroll

import (
	"context"
	"sync"
)

// =============================================================================
// MARK PAID
// =============================================================================

// MarkWagePaid records a wage payment dated today and advances last_paid.
func (e *Engine) MarkWagePaid(ctx context.Context, id EmployeeID) error {
	return e.MarkPaidOn(ctx, id, KindWage, e.Clock.Today())
}

// MarkBonusPaid records a bonus payment dated today and advances
// last_bonus_paid.
func (e *Engine) MarkBonusPaid(ctx context.Context, id EmployeeID) error {
	return e.MarkPaidOn(ctx, id, KindBonus, e.Clock.Today())
}

// MarkPaidOn advances the marker for the given kind to paidOn.
func (e *Engine) MarkPaidOn(ctx context.Context, id EmployeeID, kind PayKind, paidOn Date) error {
	if !e.marks.acquire(id, kind) {
		return ErrMarkInProgress
	}
	defer e.marks.release(id, kind)

	// Re-fetch at mark time; the snapshot the caller reviewed may be stale.
	if _, err := e.fetchEmployee(ctx, id); err != nil {
		return err
	}

	updated, err := e.Employees.SetMarker(ctx, id, kind, paidOn)
	if err != nil {
		return &StorageError{Op: "set " + string(kind) + " marker", Err: err}
	}
	if updated == 0 {
		return &NotFoundError{EmployeeID: id}
	}

	e.Log.Info().Str("employee_id", string(id)).Str("kind", string(kind)).
		Stringer("paid_on", paidOn).
		Msg("payment marker advanced")
	return nil
}

// =============================================================================
// IN-FLIGHT GUARD - At most one mark-paid per (employee, kind)
// =============================================================================

type markKey struct {
	ID   EmployeeID
	Kind PayKind
}

type markGuard struct {
	mu       sync.Mutex
	inFlight map[markKey]struct{}
}

func (g *markGuard) init() {
	g.inFlight = make(map[markKey]struct{})
}

func (g *markGuard) acquire(id EmployeeID, kind PayKind) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	k := markKey{ID: id, Kind: kind}
	if _, busy := g.inFlight[k]; busy {
		return false
	}
	g.inFlight[k] = struct{}{}
	return true
}

func (g *markGuard) release(id EmployeeID, kind PayKind) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inFlight, markKey{ID: id, Kind: kind})
}
