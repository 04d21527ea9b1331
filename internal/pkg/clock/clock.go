// Package clock abstracts the wall clock so pricing decisions that depend on "today" can be tested.
package clock

import (
	"sync"
	"time"
)

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system time in a fixed location.
type RealClock struct {
	loc *time.Location
}

// NewRealClock returns a UTC system clock.
func NewRealClock() Clock {
	return NewRealClockIn(time.UTC)
}

// NewRealClockIn returns a system clock whose Now is expressed in loc, so
// calendar dates derived from it are the resort's local dates.
func NewRealClockIn(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &RealClock{loc: loc}
}

// Now returns the current system time in the clock's location.
func (c *RealClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// MockClock is a settable clock, safe for use from concurrent discount steps.
type MockClock struct {
	mu      sync.RWMutex
	current time.Time
}

// NewMockClock creates a MockClock starting at startTime.
func NewMockClock(startTime time.Time) *MockClock {
	return &MockClock{current: startTime}
}

func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Set moves the clock to t.
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	m.current = t
	m.mu.Unlock()
}

// Advance moves the clock forward by d.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	m.current = m.current.Add(d)
	m.mu.Unlock()
}
