// Package screen draws scheduler output onto a tcell terminal.
// Geometry is measured in cells: one lane per row, widths from rune display width.
package screen

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/danmaku/constants"
	"github.com/lixenwraith/danmaku/render"
)

// Renderer adapts a tcell.Screen to render.Renderer
// Rows reserved at the bottom are left to the caller for chrome
type Renderer struct {
	screen   tcell.Screen
	reserved int
}

// New wraps an initialized screen with no rows reserved
func New(s tcell.Screen) *Renderer {
	return &Renderer{screen: s}
}

// Screen returns the underlying terminal
func (r *Renderer) Screen() tcell.Screen {
	return r.screen
}

// Reserve keeps rows bottom rows out of the lane area
func (r *Renderer) Reserve(rows int) {
	if rows < 0 {
		rows = 0
	}
	r.reserved = rows
}

// Geometry returns the lane area in cells
func (r *Renderer) Geometry() render.Geometry {
	w, h := r.screen.Size()
	h -= r.reserved
	if h < 0 {
		h = 0
	}
	return render.Geometry{
		Width:      w,
		Height:     h,
		TopMargin:  constants.TerminalTopMargin,
		LaneHeight: constants.TerminalLaneHeight,
	}
}

// Measure returns display width in cells; a terminal cannot scale glyphs so scale is ignored
func (r *Renderer) Measure(text string, _ float64) float64 {
	return float64(runewidth.StringWidth(text))
}

// Draw writes every command into the lane area without clearing or showing the screen
func (r *Renderer) Draw(cmds []render.DrawCommand) {
	geom := r.Geometry()
	for _, cmd := range cmds {
		y := int(math.Floor(cmd.Y))
		if y < 0 || y >= geom.Height {
			continue
		}
		a := int32(cmd.Alpha)
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(a, a, a))
		r.put(int(math.Floor(cmd.X)), y, geom.Width, cmd.Text, style)
	}
}

// Text writes a line of chrome at (x, y) clipped to the screen width and returns the cells used
func (r *Renderer) Text(x, y int, text string, style tcell.Style) int {
	w, _ := r.screen.Size()
	return r.put(x, y, w, text, style)
}

// put writes text starting at column x, skipping cells left of 0 and stopping at width
// A wide rune that would straddle either edge is not drawn
func (r *Renderer) put(x, y, width int, text string, style tcell.Style) int {
	used := 0
	for _, ch := range text {
		cw := runewidth.RuneWidth(ch)
		if cw == 0 {
			continue
		}
		if x >= width {
			break
		}
		if x >= 0 && x+cw <= width {
			r.screen.SetContent(x, y, ch, nil, style)
			used += cw
		}
		x += cw
	}
	return used
}
