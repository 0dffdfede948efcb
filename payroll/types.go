/*
Package payroll implements the wage and bonus calculation engine.

PURPOSE:
  Resolves open pay periods from persisted "last paid" markers, aggregates
  attendance into worked/exception/overtime hours, applies the employee's
  rate to produce payable amounts, and advances the markers exactly once
  per confirmed payment.

KEY CONCEPTS IN THIS FILE (types.go):
  - Employee: rate, hire date, and the two payment markers
  - AttendanceRecord: one day of clock-in/clock-out data
  - PayPeriod: the open range [start, today] still awaiting payment
  - WageReport / BonusReport: pure calculation outputs, never persisted

DESIGN PRINCIPLES:
  1. Determinism: "today" is injected (Clock), never read inline
  2. Precision: decimal.Decimal for money, float64 for hour totals
  3. Degradation: dirty time strings reduce to zero hours, they never
     block a report; marker writes are the opposite - always surfaced
  4. One coercion path: every stored date goes through ParseDate

SEE ALSO:
  - engine.go: The operations callers actually invoke
  - wage.go / bonus.go: The accumulators
  - marker.go: Advancing last_paid / last_bonus_paid
*/
package payroll

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS & KINDS
// =============================================================================

type EmployeeID string

// PayKind selects which marker a period or payment is anchored to.
type PayKind string

const (
	KindWage  PayKind = "wage"  // anchored to last_paid
	KindBonus PayKind = "bonus" // anchored to last_bonus_paid
)

// =============================================================================
// EMPLOYEE - Read by the engine; only the markers are ever written back
// =============================================================================

type Employee struct {
	ID        EmployeeID
	Name      string
	DailyWage decimal.Decimal
	HireDate  Date

	// LastPaid anchors the wage period; nil means never paid.
	LastPaid *Date

	// LastBonusPaid anchors the annual bonus period; nil means never paid.
	LastBonusPaid *Date
}

// Marker returns the payment marker for the given kind, or nil if unset.
func (e *Employee) Marker(kind PayKind) *Date {
	if kind == KindBonus {
		return e.LastBonusPaid
	}
	return e.LastPaid
}

// =============================================================================
// ATTENDANCE - Owned by the attendance workflow, read-only here
// =============================================================================

type AttendanceStatus string

const (
	StatusPresent  AttendanceStatus = "Present"
	StatusAbsent   AttendanceStatus = "Absent"
	StatusLeave    AttendanceStatus = "Leave"
	StatusOvertime AttendanceStatus = "Overtime"
)

// CountsTowardPay reports whether a day with this status accrues wage.
// Absent and Leave days contribute nothing.
func (s AttendanceStatus) CountsTowardPay() bool {
	return s == StatusPresent || s == StatusOvertime
}

// NoTime is the sentinel the attendance forms write when no clock time
// was entered.
const NoTime = "--:--"

type AttendanceRecord struct {
	ID         string
	EmployeeID EmployeeID
	Date       Date
	Status     AttendanceStatus

	// TimeIn/TimeOut are time-of-day strings ("09:00", "05:30 PM") or the
	// NoTime sentinel / empty.
	TimeIn  string
	TimeOut string

	// ExceptionHours overrides the configured per-day exception allowance
	// when set.
	ExceptionHours *float64
}

// =============================================================================
// PAY PERIOD - Ephemeral, derived, never persisted
// =============================================================================

// PayPeriod is the open range [Start, End] still awaiting payment, where End
// is "today" at resolution time. A period with Start after End has zero
// length (marker advanced today) and accumulates nothing.
type PayPeriod struct {
	Start Date
	End   Date
}

// Contains reports whether the day falls inside the period.
func (p PayPeriod) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

// IsEmpty reports the degenerate zero-length case.
func (p PayPeriod) IsEmpty() bool { return p.Start.After(p.End) }

func (p PayPeriod) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// =============================================================================
// REPORTS - Pure function outputs
// =============================================================================

// WageReport is the result of accumulating one employee's attendance over a
// resolved pay period. Identical inputs always produce an identical report.
type WageReport struct {
	EmployeeID   EmployeeID      `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	DailyWage    decimal.Decimal `json:"daily_wage"`
	HourlyRate   decimal.Decimal `json:"hourly_rate"`
	Period       PayPeriod       `json:"period"`

	WorkDays            int     `json:"work_days"`
	TotalHoursWorked    float64 `json:"total_hours_worked"`
	TotalExceptionHours float64 `json:"total_exception_hours"`

	// TotalOvertimeHours is display-only: hours beyond the standard day.
	// It is never deducted anywhere.
	TotalOvertimeHours float64 `json:"total_overtime_hours"`

	// EffectiveHours = TotalHoursWorked - TotalExceptionHours.
	EffectiveHours float64 `json:"effective_hours"`

	TotalWage decimal.Decimal `json:"total_wage"`

	// Warnings carries data-integrity notes (e.g. a fallback lookback
	// period was used). Informational only.
	Warnings []string `json:"warnings,omitempty"`
}

// BonusReport is a WageReport plus the bonus payout and the next-due
// estimate. TotalWage holds the period's total earned amount, of which
// BonusAmount is the BonusRate percentage.
type BonusReport struct {
	WageReport

	BonusRate       decimal.Decimal `json:"bonus_rate"`
	BonusAmount     decimal.Decimal `json:"bonus_amount"`
	NextBonusDate   Date            `json:"next_bonus_date"`
	IsBonusDue      bool            `json:"is_bonus_due"`
	MonthsRemaining int             `json:"months_remaining"`
	DaysRemaining   int             `json:"days_remaining"`
}

// PayrollSummary aggregates wage reports across every employee. A failure
// for one employee never aborts the run; it lands in Failures instead.
type PayrollSummary struct {
	AsOf           Date             `json:"as_of"`
	TotalEmployees int              `json:"total_employees"`
	TotalWage      decimal.Decimal  `json:"total_wage"`
	Reports        []WageReport     `json:"reports"`
	Failures       []SummaryFailure `json:"failures,omitempty"`
}

type SummaryFailure struct {
	EmployeeID   EmployeeID `json:"employee_id"`
	EmployeeName string     `json:"employee_name"`
	Reason       string     `json:"reason"`
}
