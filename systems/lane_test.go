package systems

import (
	"testing"
	"time"

	"github.com/lixenwraith/danmaku/components"
	"github.com/lixenwraith/danmaku/constants"
)

// placedItem builds an item already moving on lane at posX
func placedItem(lane int, posX, width, velocity float64) *components.Item {
	it := components.NewItem("prev", time.Unix(0, 0), 5)
	it.Place(lane, width, velocity, posX, 0)
	return it
}

func TestSelectLaneEmptyTable(t *testing.T) {
	lanes := components.NewLaneTable(1)

	lane, ok := SelectLane(800, 100, 180, lanes)
	if !ok {
		t.Fatal("Expected a lane on an empty table")
	}
	if lane != 0 {
		t.Errorf("Expected lane 0, got %d", lane)
	}
}

func TestSelectLaneZeroLanes(t *testing.T) {
	lanes := components.NewLaneTable(0)

	lane, ok := SelectLane(800, 100, 180, lanes)
	if ok {
		t.Errorf("Expected no lane from an empty table, got %d", lane)
	}
	if lane != constants.NoLane {
		t.Errorf("Expected NoLane sentinel, got %d", lane)
	}
}

func TestSelectLaneSlowerCandidateShares(t *testing.T) {
	lanes := components.NewLaneTable(2)
	lanes.Assign(0, placedItem(0, 500, 50, 100))

	lane, ok := SelectLane(800, 60, 50, lanes)
	if !ok {
		t.Fatal("Expected a lane")
	}
	if lane != 0 {
		t.Errorf("Expected slower candidate to reuse lane 0, got %d", lane)
	}
}

func TestSelectLaneFasterCandidateSkipsOvertake(t *testing.T) {
	lanes := components.NewLaneTable(2)
	lanes.Assign(0, placedItem(0, 500, 50, 100))

	// closing = 800 - 550 + 5 = 255, ttc = 255/400 = 0.6375, exit = 550/100 = 5.5
	lane, ok := SelectLane(800, 60, 500, lanes)
	if !ok {
		t.Fatal("Expected a lane")
	}
	if lane != 1 {
		t.Errorf("Expected lane 1 after overtake rejection, got %d", lane)
	}
}

func TestSelectLaneFasterCandidateClearsWhenPrevNearlyGone(t *testing.T) {
	lanes := components.NewLaneTable(2)
	// prev right edge at 10: exits in 0.1s, candidate needs 795/100 s to close the gap
	lanes.Assign(0, placedItem(0, -40, 50, 100))

	lane, ok := SelectLane(800, 60, 200, lanes)
	if !ok || lane != 0 {
		t.Errorf("Expected lane 0, got %d (ok=%v)", lane, ok)
	}
}

func TestSelectLaneEntryZone(t *testing.T) {
	tests := []struct {
		name     string
		posX     float64
		width    float64
		wantLane int
	}{
		{"Just spawned", 800, 50, 1},
		{"Partially entered", 760, 50, 1},
		{"Touching spacing boundary", 745, 50, 0},
		{"Inside spacing", 746, 50, 1},
		{"Well clear", 300, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lanes := components.NewLaneTable(2)
			lanes.Assign(0, placedItem(0, tt.posX, tt.width, 100))

			// Equal velocity isolates the entry-zone check
			lane, ok := SelectLane(800, 50, 100, lanes)
			if !ok {
				t.Fatal("Expected a lane")
			}
			if lane != tt.wantLane {
				t.Errorf("Expected lane %d, got %d", tt.wantLane, lane)
			}
		})
	}
}

func TestSelectLaneAllBusy(t *testing.T) {
	lanes := components.NewLaneTable(3)
	for i := 0; i < lanes.Len(); i++ {
		lanes.Assign(i, placedItem(i, 790, 50, 100))
	}

	lane, ok := SelectLane(800, 50, 100, lanes)
	if ok {
		t.Errorf("Expected no lane when all lanes are in the entry zone, got %d", lane)
	}
}

func TestSelectLaneVerticalPriority(t *testing.T) {
	lanes := components.NewLaneTable(4)
	lanes.Assign(0, placedItem(0, 790, 50, 100)) // busy
	// lanes 1..3 empty, all eligible

	lane, ok := SelectLane(800, 50, 100, lanes)
	if !ok || lane != 1 {
		t.Errorf("Expected smallest eligible lane 1, got %d (ok=%v)", lane, ok)
	}
}

func TestSelectLaneIgnoresRetiredOccupant(t *testing.T) {
	lanes := components.NewLaneTable(2)
	prev := placedItem(0, 790, 50, 100)
	lanes.Assign(0, prev)
	prev.Retire()

	lane, ok := SelectLane(800, 50, 100, lanes)
	if !ok || lane != 0 {
		t.Errorf("Expected retired occupant to free lane 0, got %d (ok=%v)", lane, ok)
	}
	if lanes.At(0).LastOccupant() != prev {
		t.Error("Expected raw back-reference to survive retirement")
	}
}

func TestSelectLaneUnplacedOccupantTreatedAsFree(t *testing.T) {
	lanes := components.NewLaneTable(1)
	lanes.Assign(0, components.NewItem("pending", time.Unix(0, 0), 5))

	lane, ok := SelectLane(800, 50, 100, lanes)
	if !ok || lane != 0 {
		t.Errorf("Expected lane 0, got %d (ok=%v)", lane, ok)
	}
}
