package engine

import (
	"sync/atomic"
	"time"
)

// MockTimeProvider is a manually driven clock for tests and headless replays
// It keeps a fixed origin and an atomic offset, so Now never blocks a frame
type MockTimeProvider struct {
	origin time.Time
	offset atomic.Int64 // nanoseconds past origin
}

// NewMockTimeProvider starts the clock at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{origin: start}
}

func (m *MockTimeProvider) Now() time.Time {
	return m.origin.Add(time.Duration(m.offset.Load()))
}

// SetTime jumps to t, which may be earlier than the current reading
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.offset.Store(int64(t.Sub(m.origin)))
}

// Advance moves the clock forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.offset.Add(int64(d))
}

// Step advances by one frame of dt seconds and returns dt, the unit Scheduler.Frame takes
func (m *MockTimeProvider) Step(dt float64) float64 {
	m.Advance(time.Duration(dt * float64(time.Second)))
	return dt
}
