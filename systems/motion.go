package systems

import (
	"github.com/lixenwraith/danmaku/components"
)

// Velocity derives the constant scroll speed in px/s for an item about to be placed
// Distance covered is screen plus item width so the item fully crosses in targetDuration
// Non-positive duration or multiplier yields 0, which callers treat as "cannot place yet"
func Velocity(screenWidth, itemWidth, targetDuration, speedMultiplier float64) float64 {
	if targetDuration <= 0 || speedMultiplier <= 0 {
		return 0
	}
	if itemWidth < 0 {
		itemWidth = 0
	}
	return ((screenWidth + itemWidth) / targetDuration) * speedMultiplier
}

// Advance moves a placed item left by velocity * dt
func Advance(item *components.Item, dt float64) {
	if !item.Placed() || dt <= 0 {
		return
	}
	item.MoveBy(-item.Velocity() * dt)
}

// OffScreen reports whether the item's right edge has passed the left boundary
func OffScreen(item *components.Item) bool {
	return item.RightEdge() < 0
}
