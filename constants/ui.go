package constants

import "time"

// Raster Layout (pixels)
const (
	// RasterTopMargin is the distance from the top edge to lane 0
	RasterTopMargin = 10

	// RasterLaneHeight is the vertical pitch between lanes
	RasterLaneHeight = 20

	// RasterFontSize is the base face size in points at 72 DPI
	RasterFontSize = 14

	// ShadowOffset is the drop shadow displacement for raster text
	ShadowOffset = 1
)

// Terminal Layout (cells)
const (
	// TerminalTopMargin is the first overlay row
	TerminalTopMargin = 0

	// TerminalLaneHeight is one row per lane
	TerminalLaneHeight = 1

	// StatusRows is the status bar plus input line at the bottom of the screen
	StatusRows = 2

	// ChatLogRows is the height of the chat log panel when enabled
	ChatLogRows = 6

	// InputPrompt is shown at the start of the input line
	InputPrompt = "> "
)

// UI Timing
const (
	// FeedbackTimeout is how long command feedback stays in the status bar
	FeedbackTimeout = 4 * time.Second
)
