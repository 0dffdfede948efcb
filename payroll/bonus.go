/*
bonus.go - Bonus accumulation and the next-bonus-due estimate

PURPOSE:
  The bonus cycle is the wage calculation anchored to the annual
  last_bonus_paid marker instead of last_paid:

    bonus = period earnings * (rate / 100)       (default rate 8.33)

  plus an estimate of when the next bonus falls due: one calendar year
  after the reference date (last bonus payment, or hire date on the first
  cycle). "One calendar year" is genuine calendar addition - leap years
  and short months are handled by Date.AddYears, and the remaining time
  is broken into months+days with CalendarDiff, never day-count division.
*/
package payroll

import "github.com/shopspring/decimal"

// =============================================================================
// BONUS ACCUMULATOR
// =============================================================================

// AccumulateBonus aggregates the period like AccumulateWage and applies the
// bonus rate (a percentage) to the earned total.
func AccumulateBonus(emp *Employee, period PayPeriod, records []AttendanceRecord,
	calc IntervalCalculator, cfg Config, rate decimal.Decimal, today Date) BonusReport {

	base := AccumulateWage(emp, period, records, calc, cfg)
	due := EstimateNextBonus(emp, today)

	return BonusReport{
		WageReport:      base,
		BonusRate:       rate,
		BonusAmount:     base.TotalWage.Mul(rate).Div(decimal.NewFromInt(100)),
		NextBonusDate:   due.NextDate,
		IsBonusDue:      due.IsDue,
		MonthsRemaining: due.MonthsRemaining,
		DaysRemaining:   due.DaysRemaining,
	}
}

// =============================================================================
// NEXT-BONUS-DUE ESTIMATOR
// =============================================================================

// BonusDue describes when the next bonus payment falls due.
type BonusDue struct {
	NextDate        Date
	IsDue           bool
	MonthsRemaining int
	DaysRemaining   int
}

// EstimateNextBonus computes the next due date: one calendar year after the
// last bonus payment, or after the hire date when no bonus was ever paid.
// A due date on or before today reports due with zero time remaining.
func EstimateNextBonus(emp *Employee, today Date) BonusDue {
	reference := emp.HireDate
	if emp.LastBonusPaid != nil && !emp.LastBonusPaid.Equal(emp.HireDate) {
		reference = *emp.LastBonusPaid
	}
	if reference.IsZero() {
		// No usable anchor at all; the best estimate is a year out.
		reference = today
	}

	next := reference.AddYears(1)
	if next.BeforeOrEqual(today) {
		return BonusDue{NextDate: next, IsDue: true}
	}

	months, days := CalendarDiff(today, next)
	return BonusDue{
		NextDate:        next,
		MonthsRemaining: months,
		DaysRemaining:   days,
	}
}
