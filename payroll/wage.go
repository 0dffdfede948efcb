/*
wage.go - Wage accumulation over a resolved pay period

PURPOSE:
  Folds an employee's attendance records for a period into a WageReport.

  Per counted day (status Present or Overtime; Absent/Leave add nothing):
    worked    = interval(time_in, time_out)
    exception = record override, else Config.ExceptionHoursPerDay
    effective = max(0, worked - exception)
    overtime  = max(0, worked - StandardDayHours)   (display only)
    earned   += effective * hourly rate             (daily wage / day hours)

GUARANTEES:
  Pure function of its inputs: identical inputs yield an identical report,
  and adding a qualifying record never decreases TotalWage.
*/
package payroll

import "github.com/shopspring/decimal"

// =============================================================================
// WAGE ACCUMULATOR
// =============================================================================

// AccumulateWage aggregates the records that fall inside the period into a
// wage report. Records outside the period or with non-working statuses are
// ignored. A zero-length period yields a valid zero report.
func AccumulateWage(emp *Employee, period PayPeriod, records []AttendanceRecord,
	calc IntervalCalculator, cfg Config) WageReport {

	hourlyRate := emp.DailyWage.Div(decimal.NewFromFloat(cfg.StandardDayHours))

	report := WageReport{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		DailyWage:    emp.DailyWage,
		HourlyRate:   hourlyRate,
		Period:       period,
		TotalWage:    decimal.Zero,
	}

	earned := decimal.Zero
	for _, rec := range records {
		if !rec.Status.CountsTowardPay() || !period.Contains(rec.Date) {
			continue
		}

		worked := calc.Hours(rec.TimeIn, rec.TimeOut)

		exception := cfg.ExceptionHoursPerDay
		if rec.ExceptionHours != nil {
			exception = *rec.ExceptionHours
		}

		effective := worked - exception
		if effective < 0 {
			effective = 0
		}
		overtime := worked - cfg.StandardDayHours
		if overtime < 0 {
			overtime = 0
		}

		report.WorkDays++
		report.TotalHoursWorked += worked
		report.TotalExceptionHours += exception
		report.TotalOvertimeHours += overtime
		earned = earned.Add(decimal.NewFromFloat(effective).Mul(hourlyRate))
	}

	report.EffectiveHours = report.TotalHoursWorked - report.TotalExceptionHours
	report.TotalWage = earned
	return report
}
