// Package clock supplies the timestamps stamped on responses, orders and
// ledger rows.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// Func adapts a plain function to Clock.
type Func func() time.Time

func (f Func) Now() time.Time { return f() }

// NewSystem returns the wall clock in UTC, truncated to microseconds so a
// timestamp written to Postgres reads back equal.
func NewSystem() Clock {
	return Func(func() time.Time {
		return time.Now().UTC().Truncate(time.Microsecond)
	})
}

// NewFixed always reports t.
func NewFixed(t time.Time) Clock {
	t = t.UTC()
	return Func(func() time.Time { return t })
}
