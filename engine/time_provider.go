package engine

import "time"

// Clock stamps each tick, the loop derives simulation seconds and smoothed fps from consecutive readings
type Clock interface {
	Now() time.Time
}

// TimeProvider is the Clock of an interactive run
// Readings keep the monotonic component, so frame deltas survive wall clock jumps
type TimeProvider struct{}

func NewTimeProvider() *TimeProvider {
	return &TimeProvider{}
}

// Now stamps a frame
func (p *TimeProvider) Now() time.Time {
	return time.Now()
}
