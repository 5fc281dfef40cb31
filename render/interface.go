// Package render defines the contracts between the scheduler and its output surfaces.
package render

import "github.com/google/uuid"

// Measurer reports the rendered width of text at the given font scale
// Implementations may only be consulted while their surface is live
type Measurer interface {
	Measure(text string, scale float64) float64
}

// Surface is a live output target: its geometry plus the ability to measure on it
type Surface interface {
	Measurer
	Geometry() Geometry
}

// Renderer is a Surface that also consumes a frame's draw commands
type Renderer interface {
	Surface
	Draw(cmds []DrawCommand)
}

// DrawCommand places one item's text for the current frame
type DrawCommand struct {
	ID    uuid.UUID
	Text  string
	X     float64
	Y     float64
	Alpha uint8
	Scale float64
	Lane  int
}
