package engine

import (
	"time"

	"github.com/lixenwraith/danmaku/constants"
)

// FrameClock turns successive frame timestamps into clamped deltas in seconds
type FrameClock struct {
	clock   TimeProvider
	last    time.Time
	started bool
}

// NewFrameClock reads time from clock; the first Tick is nominal
func NewFrameClock(clock TimeProvider) *FrameClock {
	return &FrameClock{clock: clock}
}

// Tick returns seconds since the previous tick
// The first tick after construction or Reset yields the nominal 60 fps delta
// Later deltas are clamped to [0, MaxFrameDelta] so a stall never produces a jump
func (c *FrameClock) Tick() float64 {
	now := c.clock.Now()
	if !c.started {
		c.started = true
		c.last = now
		return constants.NominalFrameDelta
	}

	dt := now.Sub(c.last).Seconds()
	c.last = now

	if dt < 0 {
		return 0
	}
	if dt > constants.MaxFrameDelta {
		return constants.MaxFrameDelta
	}
	return dt
}

// Reset forgets the previous timestamp, used after pausing the loop
func (c *FrameClock) Reset() {
	c.started = false
}
