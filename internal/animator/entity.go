package animator

import (
	"math"

	"github.com/gogpu/gg"
)

const hexagonSides = 6

// Particle drifts right at Speed and bobs around BaseY on a sine of its x.
type Particle struct {
	X, Y      float64
	BaseY     float64
	Speed     float64
	Amplitude float64
	Frequency float64
	Radius    float64
}

// Update advances one frame. x wraps to 0 past width, and y is always
// recomputed from the wrapped x so it stays on the oscillation curve.
func (p *Particle) Update(width float64) {
	p.X += p.Speed
	if p.X > width {
		p.X = 0
	}
	p.Y = p.oscillate()
}

func (p *Particle) oscillate() float64 {
	return p.BaseY + p.Amplitude*math.Sin(p.X*p.Frequency)
}

// Shape is a rotating hexagon outline bouncing inside the viewport.
type Shape struct {
	X, Y   float64
	Size   float64
	VX, VY float64
	Angle  float64
	Spin   float64
}

// Update moves the shape, reflects the velocity on each axis whose bound
// was crossed, and advances the rotation angle within [0, 2π).
//
// A component only flips while it still points out of the viewport, so a
// shape that needs several frames to come back inside flips once per
// crossing rather than every frame.
func (s *Shape) Update(width, height float64) {
	s.X += s.VX
	s.Y += s.VY

	if (s.X < 0 && s.VX < 0) || (s.X > width && s.VX > 0) {
		s.VX = -s.VX
	}
	if (s.Y < 0 && s.VY < 0) || (s.Y > height && s.VY > 0) {
		s.VY = -s.VY
	}

	s.Angle = math.Mod(s.Angle+s.Spin, 2*math.Pi)
	if s.Angle < 0 {
		s.Angle += 2 * math.Pi
	}
}

// Outline returns the hexagon vertices in shape-local coordinates, before
// rotation and translation.
func (s *Shape) Outline() []gg.Point {
	pts := make([]gg.Point, hexagonSides)
	for i := range pts {
		theta := float64(i) / hexagonSides * 2 * math.Pi
		pts[i] = gg.Pt(math.Cos(theta)*s.Size, math.Sin(theta)*s.Size)
	}
	return pts
}
