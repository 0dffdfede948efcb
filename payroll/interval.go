/*
interval.go - Worked-duration from a pair of clock-time strings

PURPOSE:
  Attendance rows carry time_in/time_out as loosely formatted time-of-day
  strings: 24-hour "17:30", 12-hour "05:30 PM", the "--:--" sentinel, or
  garbage. This file turns such a pair into worked hours.

ALGORITHM:
  1. Either side empty or sentinel -> 0 hours.
  2. Parse each side to (hour, minute); 12-hour markers are normalized
     (PM adds 12 unless the hour is 12; 12 AM is hour 0).
  3. Convert to minutes since midnight.
  4. An out-time earlier than the in-time wraps past midnight (night
     shift): add 24h to the out side.
  5. Hours = minute difference / 60, clamped non-negative.

ERROR POLICY:
  Malformed strings NEVER fail the calculation. They degrade to 0 hours
  and are logged at warn so a report can always render over dirty data.
*/
package payroll

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

const minutesPerDay = 24 * 60

// =============================================================================
// INTERVAL CALCULATOR
// =============================================================================

// IntervalCalculator computes worked hours from clock-time string pairs,
// logging (not raising) parse failures.
type IntervalCalculator struct {
	Log zerolog.Logger
}

// Hours returns the non-negative worked duration between timeIn and timeOut.
func (c IntervalCalculator) Hours(timeIn, timeOut string) float64 {
	if isNoTime(timeIn) || isNoTime(timeOut) {
		return 0
	}

	in, err := parseClockTime(timeIn)
	if err != nil {
		c.Log.Warn().Str("time_in", timeIn).Err(err).
			Msg("unparsable clock-in time, counting zero hours")
		return 0
	}
	out, err := parseClockTime(timeOut)
	if err != nil {
		c.Log.Warn().Str("time_out", timeOut).Err(err).
			Msg("unparsable clock-out time, counting zero hours")
		return 0
	}

	// Night shift: clock-out before clock-in means the shift crossed
	// midnight.
	if out < in {
		out += minutesPerDay
	}

	hours := float64(out-in) / 60.0
	if hours < 0 {
		return 0
	}
	return hours
}

func isNoTime(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == NoTime
}

// parseClockTime converts "HH:MM" or "HH:MM AM/PM" into minutes since
// midnight.
func parseClockTime(s string) (int, error) {
	s = strings.TrimSpace(s)
	upper := strings.ToUpper(s)

	isPM := strings.Contains(upper, "PM")
	isAM := strings.Contains(upper, "AM")

	if isPM || isAM {
		upper = strings.ReplaceAll(upper, "AM", "")
		upper = strings.ReplaceAll(upper, "PM", "")
		s = strings.TrimSpace(upper)
	}

	hourStr, minStr, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("missing ':' in %q", s)
	}

	hour, err := strconv.Atoi(strings.TrimSpace(hourStr))
	if err != nil {
		return 0, fmt.Errorf("bad hour in %q", s)
	}
	minute, err := strconv.Atoi(strings.TrimSpace(minStr))
	if err != nil {
		return 0, fmt.Errorf("bad minute in %q", s)
	}
	if hour < 0 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock time %q out of range", s)
	}

	// 12-hour normalization: 12 PM is noon, 12 AM is midnight.
	if isPM && hour != 12 {
		hour += 12
	} else if isAM && hour == 12 {
		hour = 0
	}
	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("clock time %q out of range", s)
	}

	return hour*60 + minute, nil
}
