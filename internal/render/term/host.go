package term

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/iburimskiy/wave-background/internal/animator"
	"github.com/iburimskiy/wave-background/internal/config"
	"github.com/iburimskiy/wave-background/internal/stats"
)

// presenter shows the cell buffer after every frame the inner scheduler runs.
type presenter struct {
	inner   animator.Scheduler
	present func()
}

func (p presenter) RequestFrame(fn func()) {
	p.inner.RequestFrame(func() {
		fn()
		p.present()
	})
}

// Host runs the animator inside an initialised tcell screen.
type Host struct {
	screen tcell.Screen
	canvas *Canvas
	sched  *animator.TickerScheduler
	anim   *animator.Animator
	hints  animator.Hints
	log    *zap.Logger
	stats  *stats.Recorder
}

// NewHost mounts the animator on screen. The screen must already be
// initialised; the caller owns Fini. rec may be nil; when set it observes
// every frame and tracks the capability profile across resizes.
func NewHost(screen tcell.Screen, cfg config.Config, hints animator.Hints, log *zap.Logger, rec *stats.Recorder, opts ...animator.Option) (*Host, error) {
	h := &Host{
		screen: screen,
		canvas: NewCanvas(screen),
		sched:  animator.NewTickerScheduler(cfg.Loop.FPS),
		hints:  hints,
		log:    log,
		stats:  rec,
	}

	sched := presenter{inner: h.sched, present: h.canvas.Present}
	base := []animator.Option{animator.WithLogger(log)}
	if rec != nil {
		base = append(base, animator.WithObserver(rec))
	}
	anim, err := animator.New(h.canvas, sched, h.viewport(), cfg, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	h.anim = anim
	h.publishProfile()
	return h, nil
}

func (h *Host) publishProfile() {
	if h.stats != nil {
		h.stats.SetProfile(h.anim.Profile())
	}
}

func (h *Host) viewport() animator.Viewport {
	cols, rows := h.screen.Size()
	return animator.Viewport{
		Width:      float64(cols * CellWidth),
		Height:     float64(rows * CellHeight),
		PixelRatio: 1,
		Hints:      h.hints,
	}
}

func (h *Host) Animator() *animator.Animator { return h.anim }

// Run animates until ctx is cancelled or the user presses Esc, q or Ctrl-C.
func (h *Host) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go h.pollEvents(ctx, cancel)

	h.anim.Start(ctx)
	h.log.Info("terminal animation started", zap.Stringer("profile", h.anim.Profile()))

	err := h.sched.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (h *Host) pollEvents(ctx context.Context, cancel context.CancelFunc) {
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			h.sched.Post(ctx, func() {
				h.screen.Sync()
				if h.anim.Resize(h.viewport()) {
					h.log.Debug("terminal resized", zap.Stringer("profile", h.anim.Profile()))
					h.publishProfile()
				}
			})
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				cancel()
				return
			}
		}
	}
}
