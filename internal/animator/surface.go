package animator

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/iburimskiy/wave-background/internal/canvas"
)

// Surface keeps a canvas sized to the viewport. Drawing happens in logical
// pixels; the canvas transform maps them onto the physical buffer.
type Surface struct {
	canvas   canvas.Canvas
	width    float64
	height   float64
	scale    float64
	maxScale float64
}

// NewSurface wraps c. maxScale caps the device pixel ratio.
func NewSurface(c canvas.Canvas, maxScale float64) *Surface {
	if maxScale < 1 {
		maxScale = 1
	}
	return &Surface{canvas: c, scale: 1, maxScale: maxScale}
}

// Resize sets the physical buffer to the logical size times the capped
// pixel ratio and installs the matching scale transform.
func (s *Surface) Resize(width, height, pixelRatio float64) {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	s.width, s.height = width, height
	s.scale = math.Min(pixelRatio, s.maxScale)
	s.canvas.SetBufferSize(int(width*s.scale), int(height*s.scale))
	s.canvas.SetTransform(gg.Scale(s.scale, s.scale))
}

// Clear wipes the whole physical buffer regardless of the current transform.
func (s *Surface) Clear() {
	w, h := s.canvas.BufferSize()
	s.canvas.Save()
	s.canvas.SetTransform(gg.Identity())
	s.canvas.ClearRect(0, 0, float64(w), float64(h))
	s.canvas.Restore()
}

func (s *Surface) Canvas() canvas.Canvas { return s.canvas }
func (s *Surface) Width() float64        { return s.width }
func (s *Surface) Height() float64       { return s.height }
func (s *Surface) Scale() float64        { return s.scale }
