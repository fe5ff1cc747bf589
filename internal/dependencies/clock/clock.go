package clock

import "time"

// Clock supplies timestamps for tables and events
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC
type SystemClock struct{}

// New creates a new SystemClock
func New() *SystemClock {
	return &SystemClock{}
}

func (c *SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Since returns how long ago t was according to clk
func Since(clk Clock, t time.Time) time.Duration {
	return clk.Now().Sub(t)
}
