/*
period.go - Resolving the open pay period from a payment marker

PURPOSE:
  Derives the unpaid date range [start, today] for an employee and a pay
  kind. The resolution rule, together with marker.go advancing the marker
  on payment, partitions calendar time: every day belongs to exactly one
  period, with no gap and no overlap across successive cycles.

RULE:
  - Marker set and different from the hire date: start = marker + 1 day.
  - Otherwise (first run):                       start = hire date.
  - Neither marker nor hire date: a configurable defensive lookback
    (30 days for wage, 365 for bonus). This masks broken data, so the
    resolution is flagged and the engine attaches a warning; with
    Config.AllowFallbackPeriod=false it fails with ErrMissingDates.

DEGENERATE CASE:
  A marker advanced today resolves to start = today + 1 > today: a valid
  zero-length period that accumulates nothing. Callers must not treat it
  as an error.
*/
package payroll

import "fmt"

// =============================================================================
// PAY PERIOD RESOLVER
// =============================================================================

// Resolution is a resolved period plus how it was derived.
type Resolution struct {
	Period PayPeriod

	// Fallback is true when the period is a guessed lookback window taken
	// because both the marker and the hire date were missing.
	Fallback bool
}

// ResolvePeriod derives the open period for the given kind ending today.
func ResolvePeriod(emp *Employee, kind PayKind, today Date, cfg Config) (Resolution, error) {
	marker := emp.Marker(kind)

	if marker != nil && !marker.Equal(emp.HireDate) {
		return Resolution{Period: PayPeriod{Start: marker.AddDays(1), End: today}}, nil
	}

	if !emp.HireDate.IsZero() {
		return Resolution{Period: PayPeriod{Start: emp.HireDate, End: today}}, nil
	}

	if !cfg.AllowFallbackPeriod {
		return Resolution{}, fmt.Errorf("resolve %s period for employee %s: %w",
			kind, emp.ID, ErrMissingDates)
	}

	lookback := cfg.WageFallbackDays
	if kind == KindBonus {
		lookback = cfg.BonusFallbackDays
	}
	return Resolution{
		Period:   PayPeriod{Start: today.AddDays(-lookback), End: today},
		Fallback: true,
	}, nil
}
