package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealClockIn_UsesLocation(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	assert.Equal(t, loc, NewRealClockIn(loc).Now().Location())
	assert.Equal(t, time.UTC, NewRealClockIn(nil).Now().Location())
	assert.Equal(t, time.UTC, NewRealClock().Now().Location())
}

func TestMockClock(t *testing.T) {
	start := time.Date(2026, 7, 1, 23, 30, 0, 0, time.UTC)
	clk := NewMockClock(start)
	assert.Equal(t, start, clk.Now())

	clk.Advance(time.Hour)
	assert.Equal(t, 2, clk.Now().Day())

	clk.Set(start)
	assert.Equal(t, start, clk.Now())
}
