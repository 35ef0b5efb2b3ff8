package testutil

import (
	"time"
)

// FixedClock is a wall clock for tests that never moves.
//
// It satisfies request.Clock, so partition freshness checks can be tested
// against a known "now".
//
// Thread-safety: FixedClock is immutable and safe for concurrent use.
type FixedClock struct {
	now time.Time
}

// NewFixedClock creates a clock that reports now (converted to UTC).
func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now.UTC()}
}

// Now returns the fixed time.
func (c *FixedClock) Now() time.Time {
	return c.now
}
