// Package game hosts the background animator in an ebiten window. Ebiten
// calls Layout, Update and Draw from one goroutine, so resizes and frames
// never overlap.
package game

import (
	"context"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"

	"github.com/iburimskiy/wave-background/internal/animator"
	"github.com/iburimskiy/wave-background/internal/canvas"
	"github.com/iburimskiy/wave-background/internal/config"
	"github.com/iburimskiy/wave-background/internal/stats"
)

var backgroundColor = color.RGBA{R: 12, G: 10, B: 20, A: 255}

// Game implements ebiten.Game.
type Game struct {
	ctx   context.Context
	cfg   config.Config
	hints animator.Hints
	log   *zap.Logger
	stats *stats.Recorder

	surface canvas.Canvas
	sched   animator.ManualScheduler
	anim    *animator.Animator
	// mounted is set after the first Layout, whether or not the animator
	// could start.
	mounted bool

	scaleFactor func() float64
	lastW       int
	lastH       int

	// input edge detection
	prevKey   map[ebiten.Key]bool
	showStats bool
}

// Option customises a Game.
type Option func(*Game)

// WithCanvas replaces the offscreen ebiten canvas.
func WithCanvas(c canvas.Canvas) Option { return func(g *Game) { g.surface = c } }

// WithScaleFactor overrides the monitor's device scale factor.
func WithScaleFactor(f func() float64) Option { return func(g *Game) { g.scaleFactor = f } }

// NewGame builds the host. The animator is mounted on the first Layout call,
// once the window size is known. It stops when ctx is cancelled.
func NewGame(ctx context.Context, cfg config.Config, hints animator.Hints, log *zap.Logger, rec *stats.Recorder, opts ...Option) *Game {
	g := &Game{
		ctx:         ctx,
		cfg:         cfg,
		hints:       hints,
		log:         log,
		stats:       rec,
		surface:     NewCanvas(),
		scaleFactor: func() float64 { return ebiten.Monitor().DeviceScaleFactor() },
		prevKey:     map[ebiten.Key]bool{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Animator returns the mounted animator, or nil when none is running.
func (g *Game) Animator() *animator.Animator { return g.anim }

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		// Minimised: keep the last buffer.
		return max(g.lastW, 1), max(g.lastH, 1)
	}

	vp := animator.Viewport{
		Width:      float64(outsideWidth),
		Height:     float64(outsideHeight),
		PixelRatio: g.scaleFactor(),
		Hints:      g.hints,
	}

	switch {
	case !g.mounted:
		g.mount(vp)
	case g.anim != nil:
		if g.anim.Resize(vp) {
			g.log.Debug("window resized",
				zap.Int("width", outsideWidth),
				zap.Int("height", outsideHeight),
				zap.Stringer("profile", g.anim.Profile()),
			)
			g.publishProfile()
		}
	}

	if g.anim != nil {
		g.lastW, g.lastH = g.surface.BufferSize()
	} else {
		g.lastW, g.lastH = outsideWidth, outsideHeight
	}
	return max(g.lastW, 1), max(g.lastH, 1)
}

func (g *Game) mount(vp animator.Viewport) {
	g.mounted = true

	opts := []animator.Option{animator.WithLogger(g.log)}
	if g.stats != nil {
		opts = append(opts, animator.WithObserver(g.stats))
	}
	anim, ok := animator.Mount(g.surface, &g.sched, vp, g.cfg, opts...)
	if !ok {
		return
	}
	g.anim = anim
	g.anim.Start(g.ctx)
	g.publishProfile()
	g.log.Info("background started",
		zap.Float64("width", vp.Width),
		zap.Float64("height", vp.Height),
		zap.Float64("pixel_ratio", vp.PixelRatio),
		zap.Stringer("profile", anim.Profile()),
	)
}

func (g *Game) publishProfile() {
	if g.stats != nil && g.anim != nil {
		g.stats.SetProfile(g.anim.Profile())
	}
}

func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) || g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if justPressed(ebiten.KeyF3) {
		g.showStats = !g.showStats
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	// Runs the pending animator frame, if any, into the offscreen buffer.
	g.sched.Step()

	if off, ok := g.surface.(*Canvas); ok && off.Image() != nil {
		screen.DrawImage(off.Image(), nil)
	}

	if g.showStats && g.anim != nil && g.stats != nil {
		text := overlayText(ebiten.ActualFPS(), g.anim.Viewport(), g.anim.Profile(), g.stats.Last(), g.stats.Tap.Mean())
		ebitenutil.DebugPrintAt(screen, text, 12, 12)
	}
}
