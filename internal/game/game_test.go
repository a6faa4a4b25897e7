package game

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iburimskiy/wave-background/internal/animator"
	"github.com/iburimskiy/wave-background/internal/canvas"
	"github.com/iburimskiy/wave-background/internal/config"
	"github.com/iburimskiy/wave-background/internal/stats"
)

func newTestGame(t *testing.T, c canvas.Canvas, dpr float64) (*Game, *stats.Recorder) {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 21
	rec := stats.NewRecorder(8)
	g := NewGame(context.Background(), cfg, animator.Hints{CPUs: 8, MemoryGB: 16}, zap.NewNop(), rec,
		WithCanvas(c),
		WithScaleFactor(func() float64 { return dpr }),
	)
	return g, rec
}

func TestLayoutMountsOnce(t *testing.T) {
	surface := canvas.NewRecorder()
	g, _ := newTestGame(t, surface, 1.5)

	w, h := g.Layout(1024, 768)
	assert.Equal(t, 1536, w)
	assert.Equal(t, 1152, h)
	require.NotNil(t, g.Animator())
	assert.True(t, g.Animator().Running())

	first := g.Animator().Population()
	w, h = g.Layout(1024, 768)
	assert.Equal(t, 1536, w)
	assert.Equal(t, 1152, h)
	assert.Same(t, first, g.Animator().Population(), "same size does not repopulate")
}

func TestLayoutResizesToCompact(t *testing.T) {
	surface := canvas.NewRecorder()
	g, rec := newTestGame(t, surface, 3)

	g.Layout(1024, 768)
	assert.False(t, g.Animator().Profile().LowPower)

	w, h := g.Layout(320, 480)
	assert.Equal(t, 640, w)
	assert.Equal(t, 960, h)
	assert.True(t, g.Animator().Profile().Compact)
	assert.Len(t, g.Animator().Population().Particles, 20)
	assert.Len(t, g.Animator().Population().Shapes, 6)

	// The frame scheduled at mount runs against the new population.
	require.True(t, g.sched.Step())
	assert.Equal(t, 20, rec.Last().Particles)
	assert.Equal(t, 6, rec.Last().Shapes)
}

func TestLayoutMinimised(t *testing.T) {
	g, _ := newTestGame(t, canvas.NewRecorder(), 1)
	g.Layout(800, 600)
	before := g.Animator().Population()

	w, h := g.Layout(0, 0)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
	assert.Same(t, before, g.Animator().Population())
}

func TestLayoutWithoutCanvasIsSilent(t *testing.T) {
	g, _ := newTestGame(t, nil, 1)

	w, h := g.Layout(800, 600)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
	assert.Nil(t, g.Animator())
	assert.False(t, g.sched.Pending())

	// Later layouts keep running without a background.
	w, _ = g.Layout(400, 300)
	assert.Equal(t, 400, w)
	assert.Nil(t, g.Animator())
}

func TestFramesStopOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	g := NewGame(ctx, config.Default(), animator.Hints{}, zap.NewNop(), nil,
		WithCanvas(canvas.NewRecorder()),
		WithScaleFactor(func() float64 { return 1 }),
	)
	g.Layout(800, 600)
	assert.Equal(t, 5, g.sched.Run(5))

	cancel()
	g.sched.Step()
	assert.False(t, g.sched.Pending())
	assert.False(t, g.Animator().Running())
}

func TestOverlayText(t *testing.T) {
	vp := animator.Viewport{Width: 1024, Height: 768, PixelRatio: 2}
	st := animator.FrameStats{Particles: 60, Shapes: 20, PairChecks: 1770, Connections: 31}

	text := overlayText(59.94, vp, animator.CapabilityProfile{}, st, 1250*time.Microsecond)
	assert.Contains(t, text, "FPS: 59.9")
	assert.Contains(t, text, "frame: 1.25ms")
	assert.Contains(t, text, "viewport: 1024x768 @2x")
	assert.Contains(t, text, "profile: full")
	assert.Contains(t, text, "connections: 31/1770")

	text = overlayText(30, vp, animator.CapabilityProfile{Compact: true, LowPower: true}, st, 0)
	assert.True(t, strings.HasSuffix(text, "connections: off"))
	assert.Contains(t, text, "profile: compact")
}
