package components

import (
	"testing"
	"time"

	"github.com/lixenwraith/danmaku/constants"
)

func TestNewItemUnplaced(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	it := NewItem("hello", created, 5)

	if it.State() != ItemUnplaced {
		t.Errorf("Expected state unplaced, got %v", it.State())
	}
	if it.Lane() != constants.NoLane {
		t.Errorf("Expected lane %d, got %d", constants.NoLane, it.Lane())
	}
	if it.Width() != 0 || it.Velocity() != 0 || it.PosX() != 0 {
		t.Error("Expected placement fields to be zero before placement")
	}
	if !it.CreatedAt.Equal(created) {
		t.Errorf("Expected CreatedAt %v, got %v", created, it.CreatedAt)
	}
	if it.ID.String() == "" {
		t.Error("Expected a generated ID")
	}
}

func TestItemPlaceOnce(t *testing.T) {
	it := NewItem("hello", time.Now(), 5)

	if !it.Place(2, 120, 184, 800, 50) {
		t.Fatal("Expected first placement to succeed")
	}
	if it.Lane() != 2 || it.Width() != 120 || it.Velocity() != 184 || it.PosX() != 800 || it.PosY() != 50 {
		t.Errorf("Expected all placement fields set, got lane=%d width=%v velocity=%v pos=(%v,%v)",
			it.Lane(), it.Width(), it.Velocity(), it.PosX(), it.PosY())
	}

	if it.Place(0, 1, 1, 1, 1) {
		t.Error("Expected second placement to be rejected")
	}
	if it.Lane() != 2 {
		t.Errorf("Expected lane to remain 2, got %d", it.Lane())
	}
}

func TestItemPlaceClampsWidth(t *testing.T) {
	it := NewItem("", time.Now(), 5)
	it.Place(0, -10, 100, 800, 0)
	if it.Width() != 0 {
		t.Errorf("Expected negative width clamped to 0, got %v", it.Width())
	}
}

func TestItemLifecycle(t *testing.T) {
	tests := []struct {
		name       string
		place      bool
		wantRetire bool
		wantState  ItemState
	}{
		{"Unplaced cannot retire", false, false, ItemUnplaced},
		{"Placed retires", true, true, ItemRetired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := NewItem("x", time.Now(), 5)
			if tt.place {
				it.Place(0, 10, 10, 100, 0)
			}
			if got := it.Retire(); got != tt.wantRetire {
				t.Errorf("Expected Retire()=%v, got %v", tt.wantRetire, got)
			}
			if it.State() != tt.wantState {
				t.Errorf("Expected state %v, got %v", tt.wantState, it.State())
			}
		})
	}
}

func TestRetiredItemIsFrozen(t *testing.T) {
	it := NewItem("x", time.Now(), 5)
	it.Place(0, 10, 10, 100, 0)
	it.Retire()

	it.MoveBy(-50)
	if it.PosX() != 100 {
		t.Errorf("Expected retired item to stay at 100, got %v", it.PosX())
	}
	if it.Place(1, 10, 10, 100, 0) {
		t.Error("Expected retired item to never be placed again")
	}
	if it.Retire() {
		t.Error("Expected second retire to be a no-op")
	}
}

func TestLaneTableResize(t *testing.T) {
	table := NewLaneTable(3)
	if table.Len() != 3 {
		t.Fatalf("Expected 3 lanes, got %d", table.Len())
	}

	it := NewItem("x", time.Now(), 5)
	it.Place(1, 10, 10, 100, 0)
	table.Assign(1, it)

	if table.Resize(3) {
		t.Error("Expected same-size resize to be a no-op")
	}
	if table.At(1).LastOccupant() != it {
		t.Error("Expected occupant to survive a no-op resize")
	}

	if !table.Resize(5) {
		t.Error("Expected resize to rebuild")
	}
	if table.Len() != 5 {
		t.Errorf("Expected 5 lanes, got %d", table.Len())
	}
	for i := 0; i < table.Len(); i++ {
		lane := table.At(i)
		if lane.Index != i {
			t.Errorf("Expected lane index %d, got %d", i, lane.Index)
		}
		if lane.LastOccupant() != nil {
			t.Errorf("Expected lane %d to be empty after rebuild", i)
		}
	}
}

func TestLaneTableBounds(t *testing.T) {
	table := NewLaneTable(2)
	if table.At(-1) != nil || table.At(2) != nil {
		t.Error("Expected nil for out-of-range lanes")
	}
	if table.Assign(5, NewItem("x", time.Now(), 5)) {
		t.Error("Expected out-of-range assign to fail")
	}
	if NewLaneTable(-4).Len() != 0 {
		t.Error("Expected negative count to produce an empty table")
	}
}

func TestLaneOccupantLiveness(t *testing.T) {
	table := NewLaneTable(1)
	it := NewItem("x", time.Now(), 5)

	table.Assign(0, it)
	if table.At(0).Occupant() != nil {
		t.Error("Expected unplaced occupant to read as nil")
	}

	it.Place(0, 10, 10, 100, 0)
	if table.At(0).Occupant() != it {
		t.Error("Expected placed occupant to be visible")
	}

	it.Retire()
	if table.At(0).Occupant() != nil {
		t.Error("Expected retired occupant to read as nil")
	}
	if table.At(0).LastOccupant() != it {
		t.Error("Expected raw back-reference to be kept")
	}
}
