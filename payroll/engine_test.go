package payroll_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/payroll/store"
)

// =============================================================================
// FIXTURES
// =============================================================================

func newTestEngine(t *testing.T, today string) (*payroll.Engine, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	eng := payroll.New(mem, mem, zerolog.Nop())
	eng.Clock = payroll.FixedClock{Day: payroll.MustDate(today)}
	return eng, mem
}

func seedEmployee(t *testing.T, mem *store.Memory, emp *payroll.Employee) {
	t.Helper()
	require.NoError(t, mem.SaveEmployee(context.Background(), *emp))
}

func seedDay(t *testing.T, mem *store.Memory, id payroll.EmployeeID, day string) {
	t.Helper()
	rec := presentDay(day, "09:00", "18:00")
	rec.EmployeeID = id
	require.NoError(t, mem.SaveRecord(context.Background(), rec))
}

// =============================================================================
// WAGE FLOW
// =============================================================================

func TestEngine_CalculateWage_EndToEnd(t *testing.T) {
	eng, mem := newTestEngine(t, "2024-01-03")
	seedEmployee(t, mem, testEmployee())
	seedDay(t, mem, "emp-1", "2024-01-02")

	report, err := eng.CalculateWage(context.Background(), "emp-1")
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01", report.Period.Start.String())
	assert.Equal(t, "2024-01-03", report.Period.End.String())
	assert.Equal(t, 1, report.WorkDays)
	assert.True(t, report.TotalWage.Equal(decimal.NewFromInt(800)),
		"total wage, got %s", report.TotalWage)
	assert.Empty(t, report.Warnings)
}

func TestEngine_MarkWagePaid_ClosesPeriod(t *testing.T) {
	eng, mem := newTestEngine(t, "2024-01-03")
	seedEmployee(t, mem, testEmployee())
	seedDay(t, mem, "emp-1", "2024-01-02")

	// WHEN: the wage is paid out today
	require.NoError(t, eng.MarkWagePaid(context.Background(), "emp-1"))

	// THEN: the marker advanced and the reopened period holds nothing yet
	emp, err := mem.GetEmployee(context.Background(), "emp-1")
	require.NoError(t, err)
	require.NotNil(t, emp.LastPaid)
	assert.Equal(t, "2024-01-03", emp.LastPaid.String())

	report, err := eng.CalculateWage(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Zero(t, report.WorkDays)
	assert.True(t, report.TotalWage.IsZero(), "already-paid days must not pay again")
}

func TestEngine_CalculateWageAt_IsDeterministic(t *testing.T) {
	eng, mem := newTestEngine(t, "2024-06-01")
	seedEmployee(t, mem, testEmployee())
	seedDay(t, mem, "emp-1", "2024-01-02")

	a, err := eng.CalculateWageAt(context.Background(), "emp-1", payroll.MustDate("2024-01-03"))
	require.NoError(t, err)
	b, err := eng.CalculateWageAt(context.Background(), "emp-1", payroll.MustDate("2024-01-03"))
	require.NoError(t, err)
	require.Equal(t, a, b)
}

// =============================================================================
// BONUS FLOW
// =============================================================================

func TestEngine_CalculateBonus_ZeroRateSelectsDefault(t *testing.T) {
	eng, mem := newTestEngine(t, "2024-01-03")
	seedEmployee(t, mem, testEmployee())
	seedDay(t, mem, "emp-1", "2024-01-02")

	report, err := eng.CalculateBonus(context.Background(), "emp-1", decimal.Zero)
	require.NoError(t, err)

	assert.True(t, report.BonusRate.Equal(decimal.NewFromFloat(8.33)))
	assert.True(t, report.BonusAmount.Equal(decimal.NewFromFloat(66.64)),
		"bonus amount, got %s", report.BonusAmount)
	assert.Equal(t, "2025-01-01", report.NextBonusDate.String())
	assert.False(t, report.IsBonusDue)
}

func TestEngine_MarkBonusPaid_AdvancesBonusMarkerOnly(t *testing.T) {
	eng, mem := newTestEngine(t, "2024-01-03")
	seedEmployee(t, mem, testEmployee())

	require.NoError(t, eng.MarkBonusPaid(context.Background(), "emp-1"))

	emp, err := mem.GetEmployee(context.Background(), "emp-1")
	require.NoError(t, err)
	require.NotNil(t, emp.LastBonusPaid)
	assert.Equal(t, "2024-01-03", emp.LastBonusPaid.String())
	assert.Nil(t, emp.LastPaid, "wage marker must stay untouched")
}

// =============================================================================
// ERROR POLICY
// =============================================================================

func TestEngine_CalculateWage_UnknownEmployee(t *testing.T) {
	eng, _ := newTestEngine(t, "2024-01-03")

	_, err := eng.CalculateWage(context.Background(), "nobody")
	require.Error(t, err)
	assert.True(t, payroll.IsNotFound(err))
	assert.ErrorIs(t, err, payroll.ErrEmployeeNotFound)
}

func TestEngine_CalculateWage_InvalidDailyWage(t *testing.T) {
	eng, mem := newTestEngine(t, "2024-01-03")
	emp := testEmployee()
	emp.DailyWage = decimal.Zero
	seedEmployee(t, mem, emp)

	_, err := eng.CalculateWage(context.Background(), "emp-1")
	require.Error(t, err)

	var verr *payroll.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, payroll.EmployeeID("emp-1"), verr.EmployeeID)
	assert.Equal(t, "Test Employee", verr.EmployeeName)
}

func TestEngine_MarkPaid_UnknownEmployee(t *testing.T) {
	eng, _ := newTestEngine(t, "2024-01-03")

	err := eng.MarkWagePaid(context.Background(), "nobody")
	assert.True(t, payroll.IsNotFound(err))
}

// brokenAttendance fails every range query; employee reads still work.
type brokenAttendance struct {
	payroll.AttendanceStore
}

func (brokenAttendance) RecordsInRange(context.Context, payroll.EmployeeID, payroll.Date, payroll.Date) ([]payroll.AttendanceRecord, error) {
	return nil, errors.New("disk on fire")
}

func TestEngine_CalculateWage_StorageFailureSurfaced(t *testing.T) {
	mem := store.NewMemory()
	eng := payroll.New(mem, brokenAttendance{mem}, zerolog.Nop())
	eng.Clock = payroll.FixedClock{Day: payroll.MustDate("2024-01-03")}
	seedEmployee(t, mem, testEmployee())

	_, err := eng.CalculateWage(context.Background(), "emp-1")
	require.Error(t, err)
	assert.True(t, payroll.IsStorage(err))
	assert.ErrorContains(t, err, "disk on fire")
}

// =============================================================================
// ALL-EMPLOYEE SUMMARY
// =============================================================================

func TestEngine_PayrollSummary_CollectsFailures(t *testing.T) {
	eng, mem := newTestEngine(t, "2024-01-03")

	good := testEmployee()
	seedEmployee(t, mem, good)
	seedDay(t, mem, good.ID, "2024-01-02")

	bad := testEmployee()
	bad.ID = "emp-2"
	bad.Name = "No Wage Set"
	bad.DailyWage = decimal.Zero
	seedEmployee(t, mem, bad)

	summary, err := eng.PayrollSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalEmployees)
	require.Len(t, summary.Reports, 1)
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, payroll.EmployeeID("emp-2"), summary.Failures[0].EmployeeID)
	assert.True(t, summary.TotalWage.Equal(decimal.NewFromInt(800)),
		"summary total, got %s", summary.TotalWage)
}

// =============================================================================
// FALLBACK PERIOD
// =============================================================================

func TestEngine_CalculateWage_FallbackWarnsInReport(t *testing.T) {
	eng, mem := newTestEngine(t, "2024-06-01")
	emp := testEmployee()
	emp.HireDate = payroll.Date{}
	seedEmployee(t, mem, emp)

	report, err := eng.CalculateWage(context.Background(), "emp-1")
	require.NoError(t, err)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "period guessed")
}

func TestEngine_CalculateWage_FallbackDisabled(t *testing.T) {
	eng, mem := newTestEngine(t, "2024-06-01")
	eng.Config.AllowFallbackPeriod = false
	emp := testEmployee()
	emp.HireDate = payroll.Date{}
	seedEmployee(t, mem, emp)

	_, err := eng.CalculateWage(context.Background(), "emp-1")
	assert.ErrorIs(t, err, payroll.ErrMissingDates)
}
