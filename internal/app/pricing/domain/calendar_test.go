package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-02-28")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-28", d.String())
	assert.Equal(t, "2026-03-01", d.AddDays(1).String())

	_, err = ParseDate("2026-02-29")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDaysBetween(t *testing.T) {
	a := NewDate(2026, 3, 28)
	b := NewDate(2026, 4, 2)
	assert.Equal(t, 5, DaysBetween(a, b))
	assert.Equal(t, -5, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}

func TestDateOf_UsesOwnLocation(t *testing.T) {
	beirut := time.FixedZone("EET", 2*60*60)
	// 23:30 UTC on the 1st is already the 2nd in Beirut
	ts := time.Date(2026, 6, 1, 23, 30, 0, 0, time.UTC).In(beirut)
	assert.Equal(t, "2026-06-02", DateOf(ts).String())
}

func TestMatchesDayOfWeek(t *testing.T) {
	saturday := NewDate(2026, 10, 17)
	assert.Equal(t, Saturday, DayOfWeekOf(saturday))
	assert.True(t, MatchesDayOfWeek(saturday, nil))
	assert.True(t, MatchesDayOfWeek(saturday, []DayOfWeek{Friday, Saturday}))
	assert.False(t, MatchesDayOfWeek(saturday, []DayOfWeek{Monday}))
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, IsWeekend(NewDate(2026, 10, 18), nil))
	assert.False(t, IsWeekend(NewDate(2026, 10, 16), nil))
	assert.True(t, IsWeekend(NewDate(2026, 10, 16), []DayOfWeek{Friday, Saturday}))
}

func TestParseDayOfWeek(t *testing.T) {
	d, err := ParseDayOfWeek(" Sunday ")
	require.NoError(t, err)
	assert.Equal(t, Sunday, d)

	_, err = ParseDayOfWeek("sun")
	assert.ErrorIs(t, err, ErrInvalidDayOfWeek)
}

func TestMonthDayWindowContains(t *testing.T) {
	start, _ := ParseMonthDay("06-01")
	end, _ := ParseMonthDay("08-31")
	assert.True(t, MonthDayWindowContains(start, end, NewDate(2026, 6, 1)))
	assert.True(t, MonthDayWindowContains(start, end, NewDate(2026, 8, 31)))
	assert.False(t, MonthDayWindowContains(start, end, NewDate(2026, 9, 1)))

	leap, err := ParseMonthDay("02-29")
	require.NoError(t, err)
	assert.Equal(t, "02-29", leap.String())
}
