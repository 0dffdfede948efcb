/*
engine.go - The payroll engine facade

PURPOSE:
  Wires the resolver, accumulators and marker together behind the four
  operations callers use:

    CalculateWage(id)        -> WageReport
    CalculateBonus(id, rate) -> BonusReport
    MarkWagePaid(id)         -> advances last_paid
    MarkBonusPaid(id)        -> advances last_bonus_paid

  plus PayrollSummary, the all-employee aggregation.

DETERMINISM:
  Every calculation takes "today" from the injected Clock; the *At variants
  accept it explicitly. Identical stores + identical as-of date = identical
  reports.

ERROR POLICY:
  - Unknown employee:         NotFoundError
  - daily_wage missing/<= 0:  ValidationError (calculation refused)
  - store read/write failure: StorageError, always surfaced
  - dirty time/date strings:  absorbed as zero contributions, logged
*/
package payroll

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// =============================================================================
// ENGINE
// =============================================================================

// Engine computes wage and bonus reports over one employee's snapshot and
// advances payment markers on explicit confirmation.
type Engine struct {
	Employees  EmployeeStore
	Attendance AttendanceStore
	Clock      Clock
	Config     Config
	Log        zerolog.Logger

	calc  IntervalCalculator
	marks markGuard
}

// New creates an engine with the system clock and default configuration.
// Override the exported fields before first use if needed.
func New(employees EmployeeStore, attendance AttendanceStore, log zerolog.Logger) *Engine {
	e := &Engine{
		Employees:  employees,
		Attendance: attendance,
		Clock:      SystemClock{},
		Config:     DefaultConfig(),
		Log:        log,
	}
	e.calc = IntervalCalculator{Log: log}
	e.marks.init()
	return e
}

// =============================================================================
// WAGE CALCULATION
// =============================================================================

// CalculateWage computes the open wage period report as of today.
func (e *Engine) CalculateWage(ctx context.Context, id EmployeeID) (*WageReport, error) {
	return e.CalculateWageAt(ctx, id, e.Clock.Today())
}

// CalculateWageAt computes the wage report as of an explicit date.
func (e *Engine) CalculateWageAt(ctx context.Context, id EmployeeID, today Date) (*WageReport, error) {
	emp, res, records, err := e.snapshot(ctx, id, KindWage, today)
	if err != nil {
		return nil, err
	}

	report := AccumulateWage(emp, res.Period, records, e.calc, e.Config)
	e.annotateFallback(&report, res, emp.ID, KindWage)
	return &report, nil
}

// =============================================================================
// BONUS CALCULATION
// =============================================================================

// CalculateBonus computes the open bonus period report as of today. A zero
// rate selects Config.DefaultBonusRate.
func (e *Engine) CalculateBonus(ctx context.Context, id EmployeeID, rate decimal.Decimal) (*BonusReport, error) {
	return e.CalculateBonusAt(ctx, id, rate, e.Clock.Today())
}

// CalculateBonusAt computes the bonus report as of an explicit date.
func (e *Engine) CalculateBonusAt(ctx context.Context, id EmployeeID, rate decimal.Decimal, today Date) (*BonusReport, error) {
	if rate.IsZero() {
		rate = e.Config.DefaultBonusRate
	}

	emp, res, records, err := e.snapshot(ctx, id, KindBonus, today)
	if err != nil {
		return nil, err
	}

	report := AccumulateBonus(emp, res.Period, records, e.calc, e.Config, rate, today)
	e.annotateFallback(&report.WageReport, res, emp.ID, KindBonus)
	return &report, nil
}

// =============================================================================
// ALL-EMPLOYEE SUMMARY
// =============================================================================

// PayrollSummary computes every employee's wage report as of today. One
// employee's failure never aborts the run; it is recorded in Failures.
func (e *Engine) PayrollSummary(ctx context.Context) (*PayrollSummary, error) {
	return e.PayrollSummaryAt(ctx, e.Clock.Today())
}

func (e *Engine) PayrollSummaryAt(ctx context.Context, today Date) (*PayrollSummary, error) {
	employees, err := e.Employees.ListEmployees(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list employees", Err: err}
	}

	summary := &PayrollSummary{
		AsOf:           today,
		TotalEmployees: len(employees),
		TotalWage:      decimal.Zero,
	}

	for _, emp := range employees {
		report, err := e.CalculateWageAt(ctx, emp.ID, today)
		if err != nil {
			summary.Failures = append(summary.Failures, SummaryFailure{
				EmployeeID:   emp.ID,
				EmployeeName: emp.Name,
				Reason:       err.Error(),
			})
			continue
		}
		summary.Reports = append(summary.Reports, *report)
		summary.TotalWage = summary.TotalWage.Add(report.TotalWage)
	}
	return summary, nil
}

// =============================================================================
// SNAPSHOT - Shared fetch + validate + resolve sequence
// =============================================================================

func (e *Engine) snapshot(ctx context.Context, id EmployeeID, kind PayKind, today Date) (*Employee, Resolution, []AttendanceRecord, error) {
	emp, err := e.fetchEmployee(ctx, id)
	if err != nil {
		return nil, Resolution{}, nil, err
	}

	if !emp.DailyWage.IsPositive() {
		return nil, Resolution{}, nil, &ValidationError{
			EmployeeID:   emp.ID,
			EmployeeName: emp.Name,
			Reason:       "daily wage not set or invalid",
		}
	}

	res, err := ResolvePeriod(emp, kind, today, e.Config)
	if err != nil {
		return nil, Resolution{}, nil, err
	}

	if res.Period.IsEmpty() {
		// Marker advanced today: a valid zero-length period.
		return emp, res, nil, nil
	}

	records, err := e.Attendance.RecordsInRange(ctx, emp.ID, res.Period.Start, res.Period.End)
	if err != nil {
		return nil, Resolution{}, nil, &StorageError{Op: "query attendance", Err: err}
	}
	return emp, res, records, nil
}

func (e *Engine) fetchEmployee(ctx context.Context, id EmployeeID) (*Employee, error) {
	emp, err := e.Employees.GetEmployee(ctx, id)
	if err != nil {
		return nil, &StorageError{Op: "get employee", Err: err}
	}
	if emp == nil {
		return nil, &NotFoundError{EmployeeID: id}
	}
	return emp, nil
}

func (e *Engine) annotateFallback(report *WageReport, res Resolution, id EmployeeID, kind PayKind) {
	if !res.Fallback {
		return
	}
	warning := fmt.Sprintf("no %s marker or hire date on record; period guessed as %s", kind, res.Period)
	report.Warnings = append(report.Warnings, warning)
	e.Log.Warn().Str("employee_id", string(id)).Str("kind", string(kind)).
		Stringer("period", res.Period).
		Msg("fallback pay period used, employee dates are missing")
}
