// Package canvas defines the immediate-mode drawing handle the animator
// renders through, plus helpers shared by the concrete backends.
//
// Coordinates passed to drawing calls are mapped through the current
// transform before they reach the physical buffer, the same way a browser
// 2D context behaves:
//
//	c.SetTransform(gg.Scale(2, 2)) // logical -> physical
//	c.Save()
//	c.Translate(x, y)
//	c.Rotate(angle)
//	c.StrokePolygon(points, 1, col)
//	c.Restore()
package canvas

import (
	"image/color"
	"math"

	"github.com/gogpu/gg"
)

// Canvas is a 2D drawing surface with a resizable physical buffer.
type Canvas interface {
	// SetBufferSize reallocates the physical pixel buffer.
	SetBufferSize(width, height int)
	// BufferSize reports the physical pixel buffer dimensions.
	BufferSize() (width, height int)

	SetTransform(m gg.Matrix)
	Transform() gg.Matrix
	Save()
	Restore()
	Translate(x, y float64)
	Rotate(angle float64)
	Scale(x, y float64)

	// ClearRect resets the rectangle to fully transparent pixels.
	ClearRect(x, y, w, h float64)
	FillCircle(x, y, r float64, col color.Color)
	StrokeLine(x1, y1, x2, y2, width float64, col color.Color)
	// StrokePolygon strokes the closed outline through pts.
	StrokePolygon(pts []gg.Point, width float64, col color.Color)
}

// ParseColor converts "#rrggbb" or "#rrggbbaa" (and the short forms) into a
// straight-alpha colour.
func ParseColor(hex string) color.NRGBA {
	c := gg.Hex(hex)
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

func to8(v float64) uint8 { return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255)) }
