// Package animator implements the particle and hexagon background: a
// capability-tuned population of drifting points and rotating outlines,
// redrawn once per display refresh.
package animator

import (
	"context"
	"errors"
	"image/color"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/iburimskiy/wave-background/internal/canvas"
	"github.com/iburimskiy/wave-background/internal/config"
)

const (
	shapeStroke      = 1
	connectionStroke = 0.5
)

var (
	// ErrNoCanvas means the host has no drawing context. Hosts treat it as
	// "run without a background" and report nothing.
	ErrNoCanvas    = errors.New("animator: no drawing context")
	// ErrNoScheduler means the host offered no way to request frames.
	ErrNoScheduler = errors.New("animator: no frame scheduler")
)

// Viewport is the host's view of the page at one moment.
type Viewport struct {
	Width, Height float64
	PixelRatio    float64
	Hints         Hints
}

// FrameStats describes one frame's work.
type FrameStats struct {
	Particles   int
	Shapes      int
	PairChecks  int
	Connections int
}

// Observer receives the stats and wall time of every frame.
type Observer interface {
	ObserveFrame(st FrameStats, took time.Duration)
}

type palette struct {
	particle   color.Color
	shape      color.Color
	connection color.Color
}

// Animator owns the surface, the capability profile and the current
// population. All methods must be called from the host's render goroutine.
type Animator struct {
	surface    *Surface
	sched      Scheduler
	cfg        config.Config
	thresholds Thresholds
	colors     palette

	rng      *rand.Rand
	log      *zap.Logger
	observer Observer
	now      func() time.Time

	viewport Viewport
	profile  CapabilityProfile
	pop      *Population

	ctx     context.Context
	running bool
	tickFn  func()
}

// Option customises an Animator.
type Option func(*Animator)

// WithRand replaces the random source used for population.
func WithRand(r *rand.Rand) Option { return func(a *Animator) { a.rng = r } }

// WithLogger sets the logger for lifecycle events; the frame loop never logs.
func WithLogger(l *zap.Logger) Option { return func(a *Animator) { a.log = l } }

// WithObserver registers o to receive the stats of every frame.
func WithObserver(o Observer) Option { return func(a *Animator) { a.observer = o } }

// WithClock overrides the wall clock used for frame timing.
func WithClock(now func() time.Time) Option { return func(a *Animator) { a.now = now } }

// New sizes the surface for vp and builds the first population.
func New(c canvas.Canvas, sched Scheduler, vp Viewport, cfg config.Config, opts ...Option) (*Animator, error) {
	if c == nil {
		return nil, ErrNoCanvas
	}
	if sched == nil {
		return nil, ErrNoScheduler
	}

	a := &Animator{
		surface:    NewSurface(c, cfg.Profile.MaxPixelRatio),
		sched:      sched,
		cfg:        cfg,
		thresholds: ThresholdsFromConfig(cfg.Profile),
		colors: palette{
			particle:   canvas.ParseColor(cfg.Palette.Particle),
			shape:      canvas.ParseColor(cfg.Palette.Shape),
			connection: canvas.ParseColor(cfg.Palette.Connection),
		},
		log: zap.NewNop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.rng == nil {
		a.rng = NewRand(cfg.Seed)
	}
	a.tickFn = a.tick

	a.apply(vp)
	return a, nil
}

// Mount is New for hosts that follow the silent policy: when the canvas or
// scheduler is missing it returns false and does nothing else.
func Mount(c canvas.Canvas, sched Scheduler, vp Viewport, cfg config.Config, opts ...Option) (*Animator, bool) {
	a, err := New(c, sched, vp, cfg, opts...)
	if err != nil {
		return nil, false
	}
	return a, true
}

// Resize re-derives the surface, profile and population for vp. It reports
// false and changes nothing when vp equals the current viewport.
func (a *Animator) Resize(vp Viewport) bool {
	if vp == a.viewport {
		return false
	}
	a.apply(vp)
	return true
}

func (a *Animator) apply(vp Viewport) {
	a.viewport = vp
	a.surface.Resize(vp.Width, vp.Height, vp.PixelRatio)
	a.profile = NewProfile(vp.Width, vp.Hints, a.thresholds)
	a.pop = Populate(a.rng, a.profile, vp.Width, vp.Height, a.cfg.Population)

	a.log.Debug("population replaced",
		zap.Float64("width", vp.Width),
		zap.Float64("height", vp.Height),
		zap.Float64("scale", a.surface.Scale()),
		zap.Stringer("profile", a.profile),
		zap.Int("particles", len(a.pop.Particles)),
		zap.Int("shapes", len(a.pop.Shapes)),
	)
}

// Start schedules the first frame. Each frame reschedules the next until
// ctx is cancelled; a second Start while running does nothing.
func (a *Animator) Start(ctx context.Context) {
	if a.running {
		return
	}
	a.running = true
	a.ctx = ctx
	a.sched.RequestFrame(a.tickFn)
}

// Running reports whether a frame is scheduled.
func (a *Animator) Running() bool { return a.running }

func (a *Animator) tick() {
	if a.ctx.Err() != nil {
		a.running = false
		return
	}
	a.Frame()
	a.sched.RequestFrame(a.tickFn)
}

// Frame runs one clear, update and draw pass.
func (a *Animator) Frame() FrameStats {
	start := a.now()
	c := a.surface.Canvas()
	w, h := a.surface.Width(), a.surface.Height()
	pop := a.pop

	a.surface.Clear()

	for i := range pop.Particles {
		p := &pop.Particles[i]
		p.Update(w)
		c.FillCircle(p.X, p.Y, p.Radius, a.colors.particle)
	}

	st := FrameStats{Particles: len(pop.Particles), Shapes: len(pop.Shapes)}
	if !a.profile.LowPower {
		d := a.cfg.Connections.FullDistance
		st.PairChecks, st.Connections = connect(c, pop.Particles, d*d, a.colors.connection)
	}

	for i := range pop.Shapes {
		s := &pop.Shapes[i]
		s.Update(w, h)
		c.Save()
		c.Translate(s.X, s.Y)
		c.Rotate(s.Angle)
		c.StrokePolygon(s.Outline(), shapeStroke, a.colors.shape)
		c.Restore()
	}

	if a.observer != nil {
		a.observer.ObserveFrame(st, a.now().Sub(start))
	}
	return st
}

// connect links every pair of particles closer than sqrt(maxDistSq).
func connect(c canvas.Canvas, ps []Particle, maxDistSq float64, col color.Color) (checks, lines int) {
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			dx := ps[i].X - ps[j].X
			dy := ps[i].Y - ps[j].Y
			checks++
			if dx*dx+dy*dy < maxDistSq {
				c.StrokeLine(ps[i].X, ps[i].Y, ps[j].X, ps[j].Y, connectionStroke, col)
				lines++
			}
		}
	}
	return checks, lines
}

func (a *Animator) Profile() CapabilityProfile { return a.profile }
func (a *Animator) Viewport() Viewport         { return a.viewport }
func (a *Animator) Surface() *Surface          { return a.surface }

// Population returns the live generation. Callers must not keep it across
// a Resize.
func (a *Animator) Population() *Population { return a.pop }
