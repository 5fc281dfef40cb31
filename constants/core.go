package constants

import "time"

// Frame Loop Timing
const (
	// FrameUpdateInterval is the render tick interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// NominalFrameDelta is the delta assumed for the first tick, when no prior frame exists
	NominalFrameDelta = 1.0 / 60.0

	// MaxFrameDelta caps a single tick so a stall does not teleport items across the screen
	MaxFrameDelta = 0.1
)

// Lane Scheduling
const (
	// MinSpacing is the pixel gap kept between two items sharing a lane
	MinSpacing = 5.0

	// NoLane marks an item that has not been assigned a lane
	NoLane = -1
)
