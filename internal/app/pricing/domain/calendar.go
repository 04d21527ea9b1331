package domain

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day with no time-of-day or timezone component.
// It is stored as midnight UTC so that arithmetic never depends on the local zone.
type Date struct {
	t time.Time
}

// NewDate builds a Date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t as observed in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return Date{t: t}, nil
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time { return d.t }

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }

// Month returns the month of the year.
func (d Date) Month() time.Month { return d.t.Month() }

// Day returns the day of the month.
func (d Date) Day() int { return d.t.Day() }

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool { return d.t.After(other.t) }

// Equal reports whether both dates are the same day.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

func (d Date) String() string { return d.t.Format(dateLayout) }

// MarshalJSON encodes the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	parsed, err := ParseDate(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DaysBetween returns the number of whole days from a to b (negative when b is before a).
func DaysBetween(a, b Date) int {
	return int(b.t.Sub(a.t).Hours() / 24)
}

// DayOfWeek is the canonical lower-case weekday name used in rate masks.
type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

var weekdayNames = map[time.Weekday]DayOfWeek{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

// DefaultWeekendDays are used when a pricing config does not name its own.
var DefaultWeekendDays = []DayOfWeek{Saturday, Sunday}

// ParseDayOfWeek validates a weekday name.
func ParseDayOfWeek(value string) (DayOfWeek, error) {
	day := DayOfWeek(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range weekdayNames {
		if known == day {
			return day, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDayOfWeek, value)
}

// DayOfWeekOf returns the canonical name of the date's weekday.
func DayOfWeekOf(d Date) DayOfWeek {
	return weekdayNames[d.Weekday()]
}

// MatchesDayOfWeek reports whether d falls on one of the days in mask. An empty mask matches every day.
func MatchesDayOfWeek(d Date, mask []DayOfWeek) bool {
	if len(mask) == 0 {
		return true
	}
	day := DayOfWeekOf(d)
	for _, m := range mask {
		if m == day {
			return true
		}
	}
	return false
}

// IsWeekend reports whether d falls on one of the weekend days (Saturday/Sunday when none are given).
func IsWeekend(d Date, weekendDays []DayOfWeek) bool {
	if len(weekendDays) == 0 {
		weekendDays = DefaultWeekendDays
	}
	return MatchesDayOfWeek(d, weekendDays)
}

// MonthDay is a recurring calendar position such as 12-24.
type MonthDay struct {
	Month time.Month
	Day   int
}

// ParseMonthDay parses an MM-DD string.
func ParseMonthDay(value string) (MonthDay, error) {
	// 2000 is a leap year, so 02-29 is accepted.
	t, err := time.Parse("2006-01-02", "2000-"+strings.TrimSpace(value))
	if err != nil {
		return MonthDay{}, fmt.Errorf("%w: month-day %q", ErrInvalidDate, value)
	}
	return MonthDay{Month: t.Month(), Day: t.Day()}, nil
}

func (md MonthDay) String() string {
	return fmt.Sprintf("%02d-%02d", int(md.Month), md.Day)
}

func (md MonthDay) ordinal() int {
	return int(md.Month)*100 + md.Day
}

// MonthDayWindowContains reports whether d lies in the inclusive window [start, end].
// Windows whose end precedes their start wrap over the new year (e.g. 12-20..01-05).
func MonthDayWindowContains(start, end MonthDay, d Date) bool {
	pos := MonthDay{Month: d.Month(), Day: d.Day()}.ordinal()
	s, e := start.ordinal(), end.ordinal()
	if s <= e {
		return pos >= s && pos <= e
	}
	return pos >= s || pos <= e
}
