package render

// Geometry is the live drawable area reported by a renderer each frame
// Units are pixels for raster output and cells for the terminal
type Geometry struct {
	Width      int
	Height     int
	TopMargin  float64
	LaneHeight float64
}

// LaneY returns the top coordinate of a lane slot
func (g Geometry) LaneY(lane int) float64 {
	return g.TopMargin + float64(lane)*g.LaneHeight
}

// LaneCapacity returns how many lanes fit below the top margin, never negative
func (g Geometry) LaneCapacity() int {
	if g.LaneHeight <= 0 {
		return 0
	}
	n := int((float64(g.Height) - g.TopMargin) / g.LaneHeight)
	if n < 0 {
		return 0
	}
	return n
}

// Valid reports whether placement can happen on this surface
func (g Geometry) Valid() bool {
	return g.Width > 0
}
