package payroll_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/payroll"
)

func datePtr(s string) *payroll.Date {
	d := payroll.MustDate(s)
	return &d
}

func testEmployee() *payroll.Employee {
	return &payroll.Employee{
		ID:        "emp-1",
		Name:      "Test Employee",
		DailyWage: decimal.NewFromInt(800),
		HireDate:  payroll.NewDate(2024, time.January, 1),
	}
}

// =============================================================================
// PAY PERIOD RESOLUTION
// =============================================================================

func TestResolvePeriod_MarkerSet_StartsDayAfter(t *testing.T) {
	emp := testEmployee()
	emp.LastPaid = datePtr("2024-03-10")
	today := payroll.MustDate("2024-03-20")

	res, err := payroll.ResolvePeriod(emp, payroll.KindWage, today, payroll.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "2024-03-11", res.Period.Start.String())
	assert.Equal(t, "2024-03-20", res.Period.End.String())
	assert.False(t, res.Fallback)
}

func TestResolvePeriod_NoMarker_StartsAtHireDate(t *testing.T) {
	emp := testEmployee()
	today := payroll.MustDate("2024-01-03")

	res, err := payroll.ResolvePeriod(emp, payroll.KindWage, today, payroll.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", res.Period.Start.String())
}

func TestResolvePeriod_MarkerEqualsHireDate_TreatedAsFirstRun(t *testing.T) {
	// A marker initialized to the hire date means no payment has happened
	// yet; the hire day itself must be covered.
	emp := testEmployee()
	emp.LastPaid = datePtr("2024-01-01")
	today := payroll.MustDate("2024-01-10")

	res, err := payroll.ResolvePeriod(emp, payroll.KindWage, today, payroll.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", res.Period.Start.String())
}

func TestResolvePeriod_BonusKind_UsesBonusMarker(t *testing.T) {
	emp := testEmployee()
	emp.LastPaid = datePtr("2024-06-01")
	emp.LastBonusPaid = datePtr("2024-02-15")
	today := payroll.MustDate("2024-06-10")

	res, err := payroll.ResolvePeriod(emp, payroll.KindBonus, today, payroll.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "2024-02-16", res.Period.Start.String())
}

func TestResolvePeriod_MarkerToday_ZeroLengthPeriod(t *testing.T) {
	emp := testEmployee()
	emp.LastPaid = datePtr("2024-03-20")
	today := payroll.MustDate("2024-03-20")

	res, err := payroll.ResolvePeriod(emp, payroll.KindWage, today, payroll.DefaultConfig())
	require.NoError(t, err)
	assert.True(t, res.Period.IsEmpty(), "marker advanced today must yield a valid empty period")
}

func TestResolvePeriod_MissingDates_Fallback(t *testing.T) {
	emp := &payroll.Employee{ID: "emp-x", DailyWage: decimal.NewFromInt(100)}
	today := payroll.MustDate("2024-07-01")
	cfg := payroll.DefaultConfig()

	res, err := payroll.ResolvePeriod(emp, payroll.KindWage, today, cfg)
	require.NoError(t, err)
	assert.True(t, res.Fallback)
	assert.Equal(t, today.AddDays(-30).String(), res.Period.Start.String())

	res, err = payroll.ResolvePeriod(emp, payroll.KindBonus, today, cfg)
	require.NoError(t, err)
	assert.True(t, res.Fallback)
	assert.Equal(t, today.AddDays(-365).String(), res.Period.Start.String())
}

func TestResolvePeriod_MissingDates_FallbackDisabled(t *testing.T) {
	emp := &payroll.Employee{ID: "emp-x", DailyWage: decimal.NewFromInt(100)}
	cfg := payroll.DefaultConfig()
	cfg.AllowFallbackPeriod = false

	_, err := payroll.ResolvePeriod(emp, payroll.KindWage, payroll.MustDate("2024-07-01"), cfg)
	assert.ErrorIs(t, err, payroll.ErrMissingDates)
}

func TestResolvePeriod_CyclesPartitionTime(t *testing.T) {
	// Resolving then marking on day D makes the next period start at D+1:
	// successive cycles never overlap and never skip a day.
	emp := testEmployee()
	cfg := payroll.DefaultConfig()

	markDays := []string{"2024-01-15", "2024-02-29", "2024-03-01"}
	prevEnd := payroll.Date{}

	for i, mark := range markDays {
		today := payroll.MustDate(mark)
		res, err := payroll.ResolvePeriod(emp, payroll.KindWage, today, cfg)
		require.NoError(t, err)

		if i > 0 {
			assert.Equal(t, prevEnd.AddDays(1).String(), res.Period.Start.String(),
				"cycle %d must start the day after the previous payment", i)
		}

		// Simulate the marker advancing on payment day.
		d := today
		emp.LastPaid = &d
		prevEnd = today
	}
}
