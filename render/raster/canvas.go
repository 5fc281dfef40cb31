// Package raster renders scheduler output to an RGBA image with the Go Regular face.
// It backs the headless snapshot tool and gives pixel-accurate widths to the scheduler.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/lixenwraith/danmaku/constants"
	"github.com/lixenwraith/danmaku/logging"
	"github.com/lixenwraith/danmaku/render"
)

// Canvas is a transparent RGBA surface implementing render.Renderer
// Faces are created lazily per font scale and cached
type Canvas struct {
	mu    sync.Mutex
	img   *image.RGBA
	font  *opentype.Font
	faces map[float64]font.Face
}

// New creates a width x height canvas
func New(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("raster: invalid canvas size %dx%d", width, height)
	}
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("raster: parse font: %w", err)
	}
	return &Canvas{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		font:  f,
		faces: make(map[float64]font.Face),
	}, nil
}

// Geometry reports the canvas size in pixels with the raster lane layout
func (c *Canvas) Geometry() render.Geometry {
	b := c.img.Bounds()
	return render.Geometry{
		Width:      b.Dx(),
		Height:     b.Dy(),
		TopMargin:  constants.RasterTopMargin,
		LaneHeight: constants.RasterLaneHeight,
	}
}

// face returns the cached face for scale, creating it on first use
// Caller holds c.mu
func (c *Canvas) face(scale float64) (font.Face, error) {
	if scale <= 0 || math.IsNaN(scale) {
		scale = 1
	}
	if f, ok := c.faces[scale]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size:    constants.RasterFontSize * scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	c.faces[scale] = f
	return f, nil
}

// Measure returns the advance width of text in whole pixels
func (c *Canvas) Measure(text string, scale float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	face, err := c.face(scale)
	if err != nil {
		logging.Logger().Warn("raster face unavailable", "scale", scale, "err", err)
		return 0
	}
	return float64(font.MeasureString(face, text).Ceil())
}

// Draw clears the canvas and paints every command as shadowed white text
// Y is the top of the lane slot; the baseline sits one ascent below it
func (c *Canvas) Draw(cmds []render.DrawCommand) {
	c.mu.Lock()
	defer c.mu.Unlock()

	draw.Draw(c.img, c.img.Bounds(), image.Transparent, image.Point{}, draw.Src)

	for _, cmd := range cmds {
		face, err := c.face(cmd.Scale)
		if err != nil {
			continue
		}
		ascent := face.Metrics().Ascent
		x := fixed.Int26_6(math.Round(cmd.X * 64))
		y := fixed.Int26_6(math.Round(cmd.Y*64)) + ascent

		shadow := fixed.I(constants.ShadowOffset)
		d := font.Drawer{
			Dst:  c.img,
			Src:  image.NewUniform(color.NRGBA{A: cmd.Alpha}),
			Face: face,
			Dot:  fixed.Point26_6{X: x + shadow, Y: y + shadow},
		}
		d.DrawString(cmd.Text)

		d.Src = image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: cmd.Alpha})
		d.Dot = fixed.Point26_6{X: x, Y: y}
		d.DrawString(cmd.Text)
	}
}

// Image returns a copy of the current frame
func (c *Canvas) Image() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := image.NewRGBA(c.img.Bounds())
	copy(out.Pix, c.img.Pix)
	return out
}

// WritePNG encodes the current frame to w
func (c *Canvas) WritePNG(w io.Writer) error {
	if err := png.Encode(w, c.Image()); err != nil {
		return fmt.Errorf("raster: encode png: %w", err)
	}
	return nil
}

// Close releases cached faces
func (c *Canvas) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var firstErr error
	for scale, f := range c.faces {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(c.faces, scale)
	}
	return firstErr
}
