package testutil

import (
	"strconv"
	"time"
)

// StubClock is a manually driven clock for timing assertions on operations.
type StubClock struct {
	now time.Time
}

// NewStubClock creates a StubClock set to the given time.
func NewStubClock(t time.Time) *StubClock {
	return &StubClock{now: t}
}

// FixedClock returns a StubClock set to 2024-01-15 10:30:00 UTC.
func FixedClock() *StubClock {
	return NewStubClock(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))
}

func (c *StubClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *StubClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// SequentialIDs hands out operation IDs "op-1", "op-2", ...
type SequentialIDs struct {
	next int
}

func (g *SequentialIDs) New() string {
	g.next++
	return "op-" + strconv.Itoa(g.next)
}
