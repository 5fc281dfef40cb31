package components

import (
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/danmaku/constants"
)

// ItemState is the lifecycle stage of a scrolling item
type ItemState uint8

const (
	ItemUnplaced ItemState = iota // Waiting for a lane, retried every frame
	ItemPlaced                    // Moving across its lane
	ItemRetired                   // Left the screen, terminal
)

// String returns a short label for logs
func (s ItemState) String() string {
	switch s {
	case ItemUnplaced:
		return "unplaced"
	case ItemPlaced:
		return "placed"
	case ItemRetired:
		return "retired"
	default:
		return "unknown"
	}
}

// Item is one arrival scrolling across the overlay
// Placement fields (lane, width, velocity, position) are written together by Place and never partially
type Item struct {
	ID             uuid.UUID
	Payload        string
	CreatedAt      time.Time
	TargetDuration float64 // Seconds to cross the screen, fixed at arrival

	state    ItemState
	lane     int
	width    float64
	velocity float64 // px/s, constant once placed
	posX     float64
	posY     float64
}

// NewItem creates an unplaced item
func NewItem(payload string, createdAt time.Time, targetDuration float64) *Item {
	return &Item{
		ID:             uuid.New(),
		Payload:        payload,
		CreatedAt:      createdAt,
		TargetDuration: targetDuration,
		lane:           constants.NoLane,
	}
}

// Place assigns lane, geometry and velocity in one step
// Returns false if the item was already placed or retired
func (it *Item) Place(lane int, width, velocity, posX, posY float64) bool {
	if it.state != ItemUnplaced {
		return false
	}
	if width < 0 {
		width = 0
	}
	it.lane = lane
	it.width = width
	it.velocity = velocity
	it.posX = posX
	it.posY = posY
	it.state = ItemPlaced
	return true
}

// MoveBy shifts a placed item horizontally; ignored in any other state
func (it *Item) MoveBy(dx float64) {
	if it.state == ItemPlaced {
		it.posX += dx
	}
}

// Retire marks a placed item as gone. Unplaced items cannot retire
func (it *Item) Retire() bool {
	if it.state != ItemPlaced {
		return false
	}
	it.state = ItemRetired
	return true
}

// State returns the lifecycle stage
func (it *Item) State() ItemState { return it.state }

// Placed reports whether the item is currently moving on a lane
func (it *Item) Placed() bool { return it.state == ItemPlaced }

// Lane returns the assigned lane, or constants.NoLane before placement
func (it *Item) Lane() int { return it.lane }

// Width is the measured payload width fixed at placement
func (it *Item) Width() float64 { return it.width }

// Velocity is the leftward speed in units per second, fixed at placement
func (it *Item) Velocity() float64 { return it.velocity }

// PosX is the left edge of the payload
func (it *Item) PosX() float64 { return it.posX }

// PosY is the top of the lane slot
func (it *Item) PosY() float64 { return it.posY }

// RightEdge is the x coordinate just past the last glyph
func (it *Item) RightEdge() float64 { return it.posX + it.width }
