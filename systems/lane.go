package systems

import (
	"github.com/lixenwraith/danmaku/components"
	"github.com/lixenwraith/danmaku/constants"
)

// SelectLane picks the topmost lane a new item can enter without colliding
// Lanes are scanned in ascending index and the first one passing both checks wins
// Returns constants.NoLane, false when every lane is busy
func SelectLane(screenWidth, itemWidth, itemVelocity float64, lanes *components.LaneTable) (int, bool) {
	for i := 0; i < lanes.Len(); i++ {
		lane := lanes.At(i)

		prev := lane.Occupant()
		if prev == nil {
			return lane.Index, true
		}

		if !entryClear(screenWidth, prev) {
			continue
		}

		if overtakes(screenWidth, itemVelocity, prev) {
			continue
		}

		return lane.Index, true
	}

	return constants.NoLane, false
}

// entryClear reports whether prev has fully entered from the right edge plus spacing
func entryClear(screenWidth float64, prev *components.Item) bool {
	return prev.RightEdge()+constants.MinSpacing <= screenWidth
}

// overtakes reports whether a candidate spawned at the right edge with velocity v
// would close the gap to prev before prev leaves the screen
func overtakes(screenWidth, v float64, prev *components.Item) bool {
	relativeSpeed := v - prev.Velocity()
	if relativeSpeed <= 0 {
		// Slower or equal candidate never catches up
		return false
	}

	prevRight := prev.RightEdge()
	closingDistance := screenWidth - prevRight + constants.MinSpacing
	if closingDistance <= 0 {
		return false
	}

	if prev.Velocity() <= 0 {
		// A stalled occupant never exits, any faster candidate reaches it
		return true
	}

	timeToCollision := closingDistance / relativeSpeed
	prevExitTime := prevRight / prev.Velocity()
	return timeToCollision < prevExitTime
}
