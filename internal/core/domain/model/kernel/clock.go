package kernel

import "time"

// Clock supplies the current instant to expiration checks and lifecycle timestamps.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock returns the wall clock in UTC.
func SystemClock() Clock {
	return ClockFunc(func() time.Time { return time.Now().UTC() })
}

// FixedClock always returns t. Intended for tests and one-shot sweeps.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}
