package core

import (
	"time"
)

// Duration is a domain-specific wrapper around time.Duration
type Duration time.Duration

// Std converts domain Duration to time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// TimeProvider is the ledger clock. Calendar arithmetic (due dates, month
// boundaries, the near-due window) happens in Location.
type TimeProvider interface {
	Now() time.Time
	Since(t time.Time) Duration
	Location() *time.Location
}
