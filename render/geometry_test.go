package render

import "testing"

func TestLaneY(t *testing.T) {
	g := Geometry{Width: 800, Height: 600, TopMargin: 10, LaneHeight: 20}
	tests := []struct {
		lane int
		want float64
	}{
		{0, 10},
		{1, 30},
		{9, 190},
	}
	for _, tt := range tests {
		if got := g.LaneY(tt.lane); got != tt.want {
			t.Errorf("Expected lane %d at %v, got %v", tt.lane, tt.want, got)
		}
	}
}

func TestLaneCapacity(t *testing.T) {
	tests := []struct {
		name string
		g    Geometry
		want int
	}{
		{"Raster", Geometry{Height: 600, TopMargin: 10, LaneHeight: 20}, 29},
		{"Terminal", Geometry{Height: 24, LaneHeight: 1}, 24},
		{"Margin exceeds height", Geometry{Height: 5, TopMargin: 10, LaneHeight: 1}, 0},
		{"Zero lane height", Geometry{Height: 100}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.g.LaneCapacity(); got != tt.want {
				t.Errorf("Expected capacity %d, got %d", tt.want, got)
			}
		})
	}
}

func TestValid(t *testing.T) {
	if (Geometry{}).Valid() {
		t.Error("Expected zero geometry to be invalid")
	}
	if !(Geometry{Width: 1}).Valid() {
		t.Error("Expected positive width to be valid")
	}
}
