package payroll

import "github.com/shopspring/decimal"

// =============================================================================
// ENGINE CONFIGURATION
// =============================================================================

// Config carries the business constants the calculators apply. The zero
// value is not usable; start from DefaultConfig.
type Config struct {
	// StandardDayHours divides the daily wage into an hourly rate and is
	// the threshold beyond which hours count as overtime.
	StandardDayHours float64

	// ExceptionHoursPerDay is deducted from every counted day that does
	// not carry its own exception-hours value: time on site not spent
	// working (breaks, meetings).
	ExceptionHoursPerDay float64

	// DefaultBonusRate is the percentage of period earnings paid out as
	// bonus when the caller does not supply a rate. 8.33 approximates one
	// month's wage per year.
	DefaultBonusRate decimal.Decimal

	// AllowFallbackPeriod controls the defensive lookback taken when an
	// employee has neither a marker nor a hire date. When true the
	// resolver guesses a window and the report carries a data-integrity
	// warning; when false resolution fails with ErrMissingDates.
	AllowFallbackPeriod bool

	// Lookback window lengths for the fallback, per kind.
	WageFallbackDays  int
	BonusFallbackDays int
}

func DefaultConfig() Config {
	return Config{
		StandardDayHours:     8,
		ExceptionHoursPerDay: 1.0,
		DefaultBonusRate:     decimal.NewFromFloat(8.33),
		AllowFallbackPeriod:  true,
		WageFallbackDays:     30,
		BonusFallbackDays:    365,
	}
}
