package animator

import (
	"math"
	"math/rand/v2"

	"github.com/iburimskiy/wave-background/internal/config"
)

// Population is one complete generation of entities. The animator replaces
// it wholesale; a Population is never shared between generations.
type Population struct {
	Particles []Particle
	Shapes    []Shape
}

// NewRand returns a PCG source seeded with seed, or with fresh entropy when
// seed is zero.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func uniform(r *rand.Rand, rg config.Range) float64 {
	return rg.Min + r.Float64()*(rg.Max-rg.Min)
}

// Populate builds a fresh generation sized for the profile and viewport.
func Populate(r *rand.Rand, p CapabilityProfile, width, height float64, cfg config.Population) *Population {
	particles, shapes := cfg.Particles, cfg.Shapes
	if p.Compact {
		particles, shapes = cfg.CompactParticles, cfg.CompactShapes
	}

	speed, amp, radius := cfg.Speed, cfg.Amplitude, cfg.Radius
	if p.LowPower {
		speed, amp, radius = cfg.LowPowerSpeed, cfg.LowPowerAmp, cfg.LowPowerRadius
	}

	pop := &Population{
		Particles: make([]Particle, particles),
		Shapes:    make([]Shape, shapes),
	}

	for i := range pop.Particles {
		pt := Particle{
			X:         r.Float64() * width,
			BaseY:     r.Float64() * height,
			Speed:     uniform(r, speed),
			Amplitude: uniform(r, amp),
			Frequency: uniform(r, cfg.Frequency),
			Radius:    radius,
		}
		pt.Y = pt.oscillate()
		pop.Particles[i] = pt
	}

	for i := range pop.Shapes {
		pop.Shapes[i] = Shape{
			X:     r.Float64() * width,
			Y:     r.Float64() * height,
			Size:  uniform(r, cfg.ShapeSize),
			VX:    uniform(r, cfg.ShapeVelocity),
			VY:    uniform(r, cfg.ShapeVelocity),
			Angle: r.Float64() * 2 * math.Pi,
			Spin:  uniform(r, cfg.ShapeSpin),
		}
	}
	return pop
}
