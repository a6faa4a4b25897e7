// Package raster renders onto an in-memory gg context, for headless
// snapshots and tests.
package raster

import (
	"errors"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/gogpu/gg"

	"github.com/iburimskiy/wave-background/internal/canvas"
)

// Canvas is a canvas.Canvas backed by a software gg.Context. Points are
// mapped to device space before they reach gg, so gg always draws with the
// identity transform.
type Canvas struct {
	canvas.TransformStack
	dc *gg.Context
}

var _ canvas.Canvas = (*Canvas)(nil)

func New() *Canvas {
	return &Canvas{TransformStack: canvas.NewTransformStack()}
}

// SetBufferSize reallocates the pixmap. Non-positive sizes leave the old
// buffer in place.
func (c *Canvas) SetBufferSize(width, height int) {
	c.TransformStack = canvas.NewTransformStack()
	if width <= 0 || height <= 0 {
		return
	}
	if c.dc == nil {
		c.dc = gg.NewContext(width, height)
		return
	}
	_ = c.dc.Resize(width, height)
}

func (c *Canvas) BufferSize() (int, int) {
	if c.dc == nil {
		return 0, 0
	}
	return c.dc.Width(), c.dc.Height()
}

func (c *Canvas) ClearRect(x, y, w, h float64) {
	if c.dc == nil {
		return
	}
	x0, y0 := c.Apply(x, y)
	x1, y1 := c.Apply(x+w, y+h)
	bw, bh := c.BufferSize()

	ix0, iy0 := clampInt(math.Floor(math.Min(x0, x1)), bw), clampInt(math.Floor(math.Min(y0, y1)), bh)
	ix1, iy1 := clampInt(math.Ceil(math.Max(x0, x1)), bw), clampInt(math.Ceil(math.Max(y0, y1)), bh)
	if ix0 == 0 && iy0 == 0 && ix1 == bw && iy1 == bh {
		c.dc.Clear()
		return
	}
	for py := iy0; py < iy1; py++ {
		for px := ix0; px < ix1; px++ {
			c.dc.SetPixel(px, py, gg.Transparent)
		}
	}
}

func (c *Canvas) FillCircle(x, y, r float64, col color.Color) {
	if c.dc == nil {
		return
	}
	px, py := c.Apply(x, y)
	c.dc.Identity()
	c.dc.SetColor(col)
	c.dc.DrawCircle(px, py, r*c.ScaleFactor())
	_ = c.dc.Fill()
}

func (c *Canvas) StrokeLine(x1, y1, x2, y2, width float64, col color.Color) {
	if c.dc == nil {
		return
	}
	ax, ay := c.Apply(x1, y1)
	bx, by := c.Apply(x2, y2)
	c.dc.Identity()
	c.dc.SetColor(col)
	c.dc.SetLineWidth(width * c.ScaleFactor())
	c.dc.MoveTo(ax, ay)
	c.dc.LineTo(bx, by)
	_ = c.dc.Stroke()
}

func (c *Canvas) StrokePolygon(pts []gg.Point, width float64, col color.Color) {
	if c.dc == nil || len(pts) < 2 {
		return
	}
	c.dc.Identity()
	c.dc.SetColor(col)
	c.dc.SetLineWidth(width * c.ScaleFactor())
	for i, p := range pts {
		x, y := c.Apply(p.X, p.Y)
		if i == 0 {
			c.dc.MoveTo(x, y)
		} else {
			c.dc.LineTo(x, y)
		}
	}
	c.dc.ClosePath()
	_ = c.dc.Stroke()
}

// Image returns the rendered pixels, or nil before the first SetBufferSize.
func (c *Canvas) Image() image.Image {
	if c.dc == nil {
		return nil
	}
	return c.dc.Image()
}

// ErrNoBuffer is returned when encoding before the first SetBufferSize.
var ErrNoBuffer = errors.New("raster: no buffer allocated")

func (c *Canvas) SavePNG(path string) error {
	if c.dc == nil {
		return ErrNoBuffer
	}
	return c.dc.SavePNG(path)
}

func (c *Canvas) EncodePNG(w io.Writer) error {
	if c.dc == nil {
		return ErrNoBuffer
	}
	return c.dc.EncodePNG(w)
}

func clampInt(v float64, hi int) int {
	switch {
	case v < 0:
		return 0
	case v > float64(hi):
		return hi
	}
	return int(v)
}
