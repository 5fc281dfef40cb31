package components

// Lane is one horizontal track
// lastOccupant is a non-owning back-reference used only for collision lookahead
type Lane struct {
	Index        int
	lastOccupant *Item
}

// LastOccupant returns the most recently placed item, even if it has since retired
func (l *Lane) LastOccupant() *Item {
	return l.lastOccupant
}

// Occupant returns the most recently placed item while it is still on screen
// A retired or never-placed occupant reads as nil so its frozen position is never consulted
func (l *Lane) Occupant() *Item {
	if l.lastOccupant == nil || !l.lastOccupant.Placed() {
		return nil
	}
	return l.lastOccupant
}

// LaneTable is the fixed-size, top-to-bottom ordered set of lanes
type LaneTable struct {
	lanes []Lane
}

// NewLaneTable creates a table with count empty lanes
func NewLaneTable(count int) *LaneTable {
	t := &LaneTable{}
	t.rebuild(count)
	return t
}

func (t *LaneTable) rebuild(count int) {
	if count < 0 {
		count = 0
	}
	t.lanes = make([]Lane, count)
	for i := range t.lanes {
		t.lanes[i].Index = i
	}
}

// Resize rebuilds the table with fresh lanes when count differs
// Existing occupant references are dropped, not migrated. Returns true if rebuilt
func (t *LaneTable) Resize(count int) bool {
	if count == len(t.lanes) {
		return false
	}
	t.rebuild(count)
	return true
}

// Len returns the lane count
func (t *LaneTable) Len() int {
	return len(t.lanes)
}

// At returns the lane at index, nil when out of range
func (t *LaneTable) At(index int) *Lane {
	if index < 0 || index >= len(t.lanes) {
		return nil
	}
	return &t.lanes[index]
}

// Assign records item as the newest occupant of lane index
func (t *LaneTable) Assign(index int, item *Item) bool {
	lane := t.At(index)
	if lane == nil {
		return false
	}
	lane.lastOccupant = item
	return true
}
