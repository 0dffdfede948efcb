package payroll_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/warp/payroll-engine/payroll"
)

func newCalc() payroll.IntervalCalculator {
	return payroll.IntervalCalculator{Log: zerolog.Nop()}
}

// =============================================================================
// WORKED-DURATION CALCULATION
// =============================================================================

func TestIntervalHours(t *testing.T) {
	calc := newCalc()

	tests := []struct {
		name    string
		in, out string
		want    float64
	}{
		{"plain 24h day", "08:00", "17:00", 9},
		{"half hours", "08:30", "17:15", 8.75},
		{"overnight wrap", "22:00", "06:00", 8},
		{"twelve hour clock", "08:00 AM", "05:00 PM", 9},
		{"noon is 12 PM", "12:00 PM", "01:00 PM", 1},
		{"midnight is 12 AM", "12:00 AM", "01:00 AM", 1},
		{"no space before marker", "08:30AM", "05:30PM", 9},
		{"zero length shift", "09:00", "09:00", 0},
		{"full day wrap", "00:00", "00:00", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, calc.Hours(tc.in, tc.out), 1e-9)
		})
	}
}

func TestIntervalHours_ExactMinuteArithmetic(t *testing.T) {
	// For any 24h pair with out > in, the duration is exactly the minute
	// difference over 60.
	calc := newCalc()

	pairs := []struct{ in, out string }{
		{"00:15", "23:45"},
		{"07:05", "07:06"},
		{"09:00", "18:00"},
	}
	wants := []float64{23.5, 1.0 / 60.0, 9}
	for i, p := range pairs {
		assert.InDelta(t, wants[i], calc.Hours(p.in, p.out), 1e-9)
	}
}

func TestIntervalHours_SentinelsAndGarbage(t *testing.T) {
	// Dirty input degrades to zero hours; it must never block a report.
	calc := newCalc()

	tests := []struct {
		name    string
		in, out string
	}{
		{"empty in", "", "17:00"},
		{"empty out", "08:00", ""},
		{"sentinel in", payroll.NoTime, "17:00"},
		{"sentinel out", "08:00", payroll.NoTime},
		{"no colon", "8am", "5pm"},
		{"words", "morning", "evening"},
		{"hour out of range", "25:00", "26:00"},
		{"minute out of range", "08:61", "17:00"},
		{"twelve hour out of range", "13:00 PM", "14:00 PM"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Zero(t, calc.Hours(tc.in, tc.out))
		})
	}
}
