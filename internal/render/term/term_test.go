package term

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/gg"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iburimskiy/wave-background/internal/animator"
	"github.com/iburimskiy/wave-background/internal/config"
	"github.com/iburimskiy/wave-background/internal/stats"
)

func newScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func TestCanvasGrid(t *testing.T) {
	c := NewCanvas(newScreen(t, 10, 5))
	c.SetBufferSize(80, 80)
	cols, rows := c.Grid()
	assert.Equal(t, 10, cols)
	assert.Equal(t, 5, rows)

	c.SetBufferSize(81, 81)
	cols, rows = c.Grid()
	assert.Equal(t, 11, cols)
	assert.Equal(t, 6, rows)
}

func TestCanvasPlotsAndClears(t *testing.T) {
	screen := newScreen(t, 10, 5)
	c := NewCanvas(screen)
	c.SetBufferSize(80, 80)

	c.FillCircle(20, 20, 2, color.White)
	assert.Equal(t, particleRune, c.Rune(2, 1))

	c.StrokeLine(0, 72, 79, 72, 0.5, color.White)
	for col := 0; col < 10; col++ {
		assert.Equal(t, connectionRune, c.Rune(col, 4), "col %d", col)
	}

	c.Save()
	c.Translate(40, 40)
	c.StrokePolygon([]gg.Point{gg.Pt(-8, -16), gg.Pt(8, -16), gg.Pt(8, 16), gg.Pt(-8, 16)}, 1, color.White)
	c.Restore()
	assert.Equal(t, shapeRune, c.Rune(4, 1))
	assert.Equal(t, shapeRune, c.Rune(6, 3))

	c.Present()
	mainc, _, _, _ := screen.GetContent(2, 1)
	assert.Equal(t, particleRune, mainc)

	c.ClearRect(0, 0, 80, 80)
	for col := 0; col < 10; col++ {
		for row := 0; row < 5; row++ {
			require.Zero(t, c.Rune(col, row))
		}
	}
	c.Present()
	mainc, _, _, _ = screen.GetContent(2, 1)
	assert.Equal(t, ' ', mainc)
}

func TestCanvasIgnoresOutOfBounds(t *testing.T) {
	c := NewCanvas(newScreen(t, 4, 4))
	c.SetBufferSize(32, 64)
	c.FillCircle(-5, -5, 1, color.White)
	c.FillCircle(500, 500, 1, color.White)
	assert.Zero(t, c.Rune(-1, 0))
	assert.Zero(t, c.Rune(4, 0))
}

func TestHostRunsUntilQuit(t *testing.T) {
	screen := newScreen(t, 40, 20)
	cfg := config.Default()
	cfg.Seed = 5
	cfg.Loop.FPS = 200

	rec := &countingObserver{}
	host, err := NewHost(screen, cfg, animator.Hints{}, zap.NewNop(), nil, animator.WithObserver(rec))
	require.NoError(t, err)

	vp := host.Animator().Viewport()
	assert.Equal(t, float64(40*CellWidth), vp.Width)
	assert.Equal(t, float64(20*CellHeight), vp.Height)
	assert.True(t, host.Animator().Profile().Compact, "320 logical pixels is compact")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- host.Run(ctx) }()

	require.Eventually(t, func() bool { return rec.count() >= 3 }, 3*time.Second, 5*time.Millisecond)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("host did not stop on q")
	}
}

type countingObserver struct {
	n atomic.Int64
}

func (c *countingObserver) ObserveFrame(animator.FrameStats, time.Duration) { c.n.Add(1) }

func (c *countingObserver) count() int { return int(c.n.Load()) }

func gaugesMatch(rec *stats.Recorder, lowPower, particles int) bool {
	expected := fmt.Sprintf(`
# HELP wavebg_low_power 1 when the capability profile is low power.
# TYPE wavebg_low_power gauge
wavebg_low_power %d
# HELP wavebg_particles Particles in the current population.
# TYPE wavebg_particles gauge
wavebg_particles %d
`, lowPower, particles)
	return testutil.GatherAndCompare(rec.Registry, strings.NewReader(expected), "wavebg_low_power", "wavebg_particles") == nil
}

func TestHostResizePublishesProfile(t *testing.T) {
	screen := newScreen(t, 200, 60)
	cfg := config.Default()
	cfg.Seed = 9
	cfg.Loop.FPS = 200

	rec := stats.NewRecorder(16)
	host, err := NewHost(screen, cfg, animator.Hints{}, zap.NewNop(), rec)
	require.NoError(t, err)
	require.Equal(t, "full", host.Animator().Profile().String())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- host.Run(ctx) }()

	require.Eventually(t, func() bool { return gaugesMatch(rec, 0, 60) }, 3*time.Second, 5*time.Millisecond)

	screen.SetSize(40, 20)
	require.NoError(t, screen.PostEvent(tcell.NewEventResize(40, 20)))
	require.Eventually(t, func() bool { return gaugesMatch(rec, 1, 20) }, 3*time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	a := host.Animator()
	assert.True(t, a.Profile().Compact)
	assert.Len(t, a.Population().Particles, 20)
	assert.Len(t, a.Population().Shapes, 6)
	assert.Equal(t, float64(40*CellWidth), a.Viewport().Width)
}
