package engine

import "time"

// TimeProvider is the scheduler's only source of wall time
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the system clock including its monotonic component
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider returns the production clock
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}
