package payroll_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/payroll"
)

func period(start, end string) payroll.PayPeriod {
	return payroll.PayPeriod{Start: payroll.MustDate(start), End: payroll.MustDate(end)}
}

func presentDay(date, in, out string) payroll.AttendanceRecord {
	return payroll.AttendanceRecord{
		EmployeeID: "emp-1",
		Date:       payroll.MustDate(date),
		Status:     payroll.StatusPresent,
		TimeIn:     in,
		TimeOut:    out,
	}
}

// =============================================================================
// WAGE ACCUMULATION
// =============================================================================

func TestAccumulateWage_EndToEnd(t *testing.T) {
	// GIVEN: daily wage 800 (hourly rate 100), one present day 09:00-18:00
	//        (9h) with the default 1h exception
	// THEN:  effective 8h -> 800.00 earned over 1 work day
	emp := testEmployee()
	records := []payroll.AttendanceRecord{presentDay("2024-01-02", "09:00", "18:00")}

	report := payroll.AccumulateWage(emp, period("2024-01-01", "2024-01-03"),
		records, newCalc(), payroll.DefaultConfig())

	assert.Equal(t, 1, report.WorkDays)
	assert.InDelta(t, 9, report.TotalHoursWorked, 1e-9)
	assert.InDelta(t, 1, report.TotalExceptionHours, 1e-9)
	assert.InDelta(t, 1, report.TotalOvertimeHours, 1e-9)
	assert.InDelta(t, 8, report.EffectiveHours, 1e-9)
	assert.True(t, report.HourlyRate.Equal(decimal.NewFromInt(100)),
		"hourly rate = daily wage / 8, got %s", report.HourlyRate)
	assert.True(t, report.TotalWage.Equal(decimal.NewFromInt(800)),
		"total wage, got %s", report.TotalWage)
}

func TestAccumulateWage_AbsentAndLeaveContributeNothing(t *testing.T) {
	emp := testEmployee()
	records := []payroll.AttendanceRecord{
		presentDay("2024-01-02", "09:00", "18:00"),
		{EmployeeID: "emp-1", Date: payroll.MustDate("2024-01-03"), Status: payroll.StatusAbsent},
		{EmployeeID: "emp-1", Date: payroll.MustDate("2024-01-04"), Status: payroll.StatusLeave,
			TimeIn: "09:00", TimeOut: "18:00"},
	}

	report := payroll.AccumulateWage(emp, period("2024-01-01", "2024-01-10"),
		records, newCalc(), payroll.DefaultConfig())

	assert.Equal(t, 1, report.WorkDays)
	assert.True(t, report.TotalWage.Equal(decimal.NewFromInt(800)))
}

func TestAccumulateWage_OvertimeStatusCounts(t *testing.T) {
	emp := testEmployee()
	records := []payroll.AttendanceRecord{
		{EmployeeID: "emp-1", Date: payroll.MustDate("2024-01-02"),
			Status: payroll.StatusOvertime, TimeIn: "08:00", TimeOut: "20:00"}, // 12h
	}

	report := payroll.AccumulateWage(emp, period("2024-01-01", "2024-01-10"),
		records, newCalc(), payroll.DefaultConfig())

	assert.Equal(t, 1, report.WorkDays)
	assert.InDelta(t, 4, report.TotalOvertimeHours, 1e-9) // beyond the 8h day
	// 11 effective hours * 100
	assert.True(t, report.TotalWage.Equal(decimal.NewFromInt(1100)))
}

func TestAccumulateWage_RecordExceptionOverride(t *testing.T) {
	emp := testEmployee()
	twoHours := 2.0
	rec := presentDay("2024-01-02", "09:00", "18:00")
	rec.ExceptionHours = &twoHours

	report := payroll.AccumulateWage(emp, period("2024-01-01", "2024-01-10"),
		[]payroll.AttendanceRecord{rec}, newCalc(), payroll.DefaultConfig())

	assert.InDelta(t, 2, report.TotalExceptionHours, 1e-9)
	assert.True(t, report.TotalWage.Equal(decimal.NewFromInt(700)))
}

func TestAccumulateWage_ExceptionExceedsWorked_ClampsToZero(t *testing.T) {
	// A short day never earns negative wage.
	emp := testEmployee()
	records := []payroll.AttendanceRecord{presentDay("2024-01-02", "09:00", "09:30")}

	report := payroll.AccumulateWage(emp, period("2024-01-01", "2024-01-10"),
		records, newCalc(), payroll.DefaultConfig())

	assert.Equal(t, 1, report.WorkDays)
	assert.True(t, report.TotalWage.IsZero(), "got %s", report.TotalWage)
}

func TestAccumulateWage_RecordsOutsidePeriodIgnored(t *testing.T) {
	emp := testEmployee()
	records := []payroll.AttendanceRecord{
		presentDay("2023-12-31", "09:00", "18:00"),
		presentDay("2024-01-02", "09:00", "18:00"),
		presentDay("2024-01-11", "09:00", "18:00"),
	}

	report := payroll.AccumulateWage(emp, period("2024-01-01", "2024-01-10"),
		records, newCalc(), payroll.DefaultConfig())

	assert.Equal(t, 1, report.WorkDays)
}

func TestAccumulateWage_EmptyPeriodYieldsZeroReport(t *testing.T) {
	emp := testEmployee()

	report := payroll.AccumulateWage(emp, period("2024-01-11", "2024-01-10"),
		nil, newCalc(), payroll.DefaultConfig())

	assert.Zero(t, report.WorkDays)
	assert.True(t, report.TotalWage.IsZero())
}

// =============================================================================
// PURITY GUARANTEES
// =============================================================================

func TestAccumulateWage_Idempotent(t *testing.T) {
	emp := testEmployee()
	records := []payroll.AttendanceRecord{
		presentDay("2024-01-02", "09:00", "18:00"),
		presentDay("2024-01-03", "08:30 AM", "05:30 PM"),
	}
	p := period("2024-01-01", "2024-01-10")

	first := payroll.AccumulateWage(emp, p, records, newCalc(), payroll.DefaultConfig())
	second := payroll.AccumulateWage(emp, p, records, newCalc(), payroll.DefaultConfig())

	require.Equal(t, first, second, "identical inputs must yield identical reports")
}

func TestAccumulateWage_MonotonicInQualifyingRecords(t *testing.T) {
	emp := testEmployee()
	p := period("2024-01-01", "2024-01-31")
	cfg := payroll.DefaultConfig()

	var records []payroll.AttendanceRecord
	prev := decimal.Zero
	for day := 2; day <= 10; day++ {
		records = append(records,
			presentDay(payroll.NewDate(2024, time.January, day).String(), "09:00", "18:00"))
		report := payroll.AccumulateWage(emp, p, records, newCalc(), cfg)
		assert.True(t, report.TotalWage.GreaterThan(prev),
			"adding a qualifying day must strictly increase total wage")
		prev = report.TotalWage
	}
}
