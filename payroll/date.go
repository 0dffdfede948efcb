/*
date.go - Calendar date type and the single date-coercion path

PURPOSE:
  Payroll periods are anchored on calendar days, not instants. Date wraps
  time.Time at day granularity (UTC midnight) so period math can never be
  thrown off by timezones or time-of-day noise.

COERCION:
  Persisted markers arrive in several shapes: plain ISO "2006-01-02",
  ISO with a trailing "Z", full RFC3339 datetimes, or a native time.Time.
  ParseDate / CoerceDate is the ONE place all of them are normalized.
  Nothing else in the engine parses date strings.

CALENDAR ARITHMETIC:
  AddYears / AddMonths clamp the day-of-month (Feb 29 + 1 year = Feb 28),
  which is what "one calendar year later" means for payment due dates.
  CalendarDiff returns a months+days breakdown the way a human would count
  it, never a division of a raw day count.

SEE ALSO:
  - period.go: Period resolution built on Date
  - bonus.go: Due-date estimation using AddYears and CalendarDiff
*/
package payroll

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Day-granularity calendar date (UTC)
// =============================================================================

// Date is a calendar day. The zero value is "no date".
type Date struct {
	t time.Time
}

const dateLayout = "2006-01-02"

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate normalizes a marker string into a Date. Accepted forms:
//   - "2006-01-02"
//   - "2006-01-02Z" (ISO date with a stray zone suffix)
//   - RFC3339 datetimes ("2006-01-02T15:04:05Z07:00")
//   - "2006-01-02 15:04:05" (driver-flattened datetime)
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, fmt.Errorf("empty date string")
	}
	for _, layout := range []string{
		dateLayout,
		dateLayout + "Z",
		time.RFC3339,
		"2006-01-02 15:04:05",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("unrecognized date %q", s)
}

// CoerceDate accepts the representations a document store hands back for a
// date field and funnels them through ParseDate.
func CoerceDate(v any) (Date, error) {
	switch d := v.(type) {
	case Date:
		return d, nil
	case time.Time:
		return DateOf(d), nil
	case *time.Time:
		if d == nil {
			return Date{}, fmt.Errorf("nil date")
		}
		return DateOf(*d), nil
	case string:
		return ParseDate(d)
	default:
		return Date{}, fmt.Errorf("unsupported date representation %T", v)
	}
}

// MustDate is a test/fixture helper; it panics on malformed input.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Comparison
func (d Date) Before(o Date) bool        { return d.t.Before(o.t) }
func (d Date) After(o Date) bool         { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool         { return d.t.Equal(o.t) }
func (d Date) BeforeOrEqual(o Date) bool { return !d.t.After(o.t) }
func (d Date) AfterOrEqual(o Date) bool  { return !d.t.Before(o.t) }
func (d Date) IsZero() bool              { return d.t.IsZero() }

// Properties
func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }
func (d Date) Time() time.Time   { return d.t }

// AddDays shifts the date by whole days.
func (d Date) AddDays(n int) Date { return DateOf(d.t.AddDate(0, 0, n)) }

// AddMonths shifts by calendar months, clamping the day to the target
// month's length (Jan 31 + 1 month = Feb 28/29).
func (d Date) AddMonths(n int) Date {
	total := int(d.Month()) - 1 + n
	year := d.Year() + total/12
	month := time.Month(total%12 + 1)
	if total < 0 {
		// Go integer division truncates toward zero; renormalize.
		year = d.Year() + (total-11)/12
		month = time.Month((total%12+12)%12 + 1)
	}
	day := d.Day()
	if last := daysIn(year, month); day > last {
		day = last
	}
	return NewDate(year, month, day)
}

// AddYears shifts by calendar years with the same day clamping
// (Feb 29 + 1 year = Feb 28).
func (d Date) AddYears(n int) Date { return d.AddMonths(12 * n) }

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysBetween returns the whole-day distance from a to b (negative if b
// precedes a).
func DaysBetween(a, b Date) int {
	return int(b.t.Sub(a.t).Hours() / 24)
}

// CalendarDiff breaks the distance from 'from' to 'to' into whole calendar
// months plus leftover days. from must not be after to.
func CalendarDiff(from, to Date) (months, days int) {
	if from.After(to) {
		return 0, 0
	}
	months = (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if from.AddMonths(months).After(to) {
		months--
	}
	days = DaysBetween(from.AddMonths(months), to)
	return months, days
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

// MarshalJSON encodes as "YYYY-MM-DD"; the zero date encodes as null.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || s == `""` {
		*d = Date{}
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// =============================================================================
// CLOCK - Injected "today" so calculations are deterministic
// =============================================================================

// Clock supplies the current calendar day. Production code uses SystemClock;
// tests pin a FixedClock so reports are reproducible.
type Clock interface {
	Today() Date
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Today() Date { return DateOf(time.Now()) }

// FixedClock always reports the same day.
type FixedClock struct {
	Day Date
}

func (c FixedClock) Today() Date { return c.Day }
