package animator

import (
	"context"
	"time"
)

// Scheduler runs a callback before the next repaint. Callers keep at most
// one request outstanding; a later request replaces an earlier one.
type Scheduler interface {
	RequestFrame(fn func())
}

// ManualScheduler fires pending callbacks only when told to. Hosts that own
// their own render loop (ebiten's Draw, a headless frame counter) step it
// once per repaint.
type ManualScheduler struct {
	pending func()
}

func (m *ManualScheduler) RequestFrame(fn func()) { m.pending = fn }

// Pending reports whether a callback is waiting.
func (m *ManualScheduler) Pending() bool { return m.pending != nil }

// Step runs the pending callback, if any, and reports whether one ran.
func (m *ManualScheduler) Step() bool {
	fn := m.pending
	if fn == nil {
		return false
	}
	m.pending = nil
	fn()
	return true
}

// Run steps up to n times and returns how many callbacks ran.
func (m *ManualScheduler) Run(n int) int {
	ran := 0
	for ran < n && m.Step() {
		ran++
	}
	return ran
}

// TickerScheduler fires the pending callback on a fixed interval. Events
// posted to it run on the same goroutine between frames, so a resize never
// interleaves with a frame.
type TickerScheduler struct {
	ManualScheduler
	interval time.Duration
	events   chan func()
}

// NewTickerScheduler ticks fps times per second.
func NewTickerScheduler(fps int) *TickerScheduler {
	if fps <= 0 {
		fps = 60
	}
	return &TickerScheduler{
		interval: time.Second / time.Duration(fps),
		events:   make(chan func(), 16),
	}
}

// Post queues fn to run on the scheduler goroutine. It blocks while the
// queue is full and reports false if ctx ends first.
func (t *TickerScheduler) Post(ctx context.Context, fn func()) bool {
	select {
	case t.events <- fn:
		return true
	case <-ctx.Done():
		return false
	}
}

// Run drives frames and posted events until ctx is cancelled.
func (t *TickerScheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-t.events:
			fn()
		case <-ticker.C:
			t.Step()
		}
	}
}
