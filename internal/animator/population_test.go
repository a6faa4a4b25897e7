package animator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/wave-background/internal/config"
)

func inRange(t *testing.T, name string, v float64, rg config.Range) {
	t.Helper()
	require.GreaterOrEqual(t, v, rg.Min, name)
	require.Less(t, v, rg.Max, name)
}

func TestPopulateCounts(t *testing.T) {
	cfg := config.Default().Population
	r := NewRand(1)

	pop := Populate(r, CapabilityProfile{Compact: true, LowPower: true}, 320, 480, cfg)
	assert.Len(t, pop.Particles, 20)
	assert.Len(t, pop.Shapes, 6)

	pop = Populate(r, CapabilityProfile{}, 1024, 768, cfg)
	assert.Len(t, pop.Particles, 60)
	assert.Len(t, pop.Shapes, 20)

	// Low power alone keeps the desktop counts.
	pop = Populate(r, CapabilityProfile{LowPower: true}, 1024, 768, cfg)
	assert.Len(t, pop.Particles, 60)
	assert.Len(t, pop.Shapes, 20)
}

func TestPopulateRanges(t *testing.T) {
	cfg := config.Default().Population
	const w, h = 1024.0, 768.0

	for _, prof := range []CapabilityProfile{{}, {LowPower: true}, {Compact: true, LowPower: true}} {
		t.Run(prof.String(), func(t *testing.T) {
			pop := Populate(NewRand(99), prof, w, h, cfg)

			speed, amp, radius := cfg.Speed, cfg.Amplitude, cfg.Radius
			if prof.LowPower {
				speed, amp, radius = cfg.LowPowerSpeed, cfg.LowPowerAmp, cfg.LowPowerRadius
			}

			for _, p := range pop.Particles {
				inRange(t, "x", p.X, config.Range{Min: 0, Max: w})
				inRange(t, "baseY", p.BaseY, config.Range{Min: 0, Max: h})
				inRange(t, "speed", p.Speed, speed)
				inRange(t, "amplitude", p.Amplitude, amp)
				inRange(t, "frequency", p.Frequency, cfg.Frequency)
				require.Equal(t, radius, p.Radius)
				require.Equal(t, p.BaseY+p.Amplitude*math.Sin(p.X*p.Frequency), p.Y)
			}
			for _, s := range pop.Shapes {
				inRange(t, "x", s.X, config.Range{Min: 0, Max: w})
				inRange(t, "y", s.Y, config.Range{Min: 0, Max: h})
				inRange(t, "size", s.Size, cfg.ShapeSize)
				inRange(t, "vx", s.VX, cfg.ShapeVelocity)
				inRange(t, "vy", s.VY, cfg.ShapeVelocity)
				inRange(t, "angle", s.Angle, config.Range{Min: 0, Max: 2 * math.Pi})
				inRange(t, "spin", s.Spin, cfg.ShapeSpin)
			}
		})
	}
}

func TestPopulateIdempotentCounts(t *testing.T) {
	cfg := config.Default().Population
	r := NewRand(0)
	prof := CapabilityProfile{}

	a := Populate(r, prof, 800, 600, cfg)
	b := Populate(r, prof, 800, 600, cfg)
	assert.Equal(t, len(a.Particles), len(b.Particles))
	assert.Equal(t, len(a.Shapes), len(b.Shapes))
	assert.NotEqual(t, a.Particles, b.Particles)
}

func TestPopulateSeeded(t *testing.T) {
	cfg := config.Default().Population
	a := Populate(NewRand(7), CapabilityProfile{}, 800, 600, cfg)
	b := Populate(NewRand(7), CapabilityProfile{}, 800, 600, cfg)
	assert.Equal(t, a, b)
}
