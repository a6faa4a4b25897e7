package stats

import (
	"sync"
	"time"
)

// FrameTap records the last N frame durations into a ring buffer so an
// overlay can show a smoothed frame rate.
type FrameTap struct {
	buffer    []time.Duration
	nextIndex int
	filled    int
	mu        sync.RWMutex
}

func NewFrameTap(ringSize int) *FrameTap {
	if ringSize <= 0 {
		ringSize = 1
	}
	return &FrameTap{buffer: make([]time.Duration, ringSize)}
}

// Add records one frame duration.
func (t *FrameTap) Add(d time.Duration) {
	t.mu.Lock()
	t.buffer[t.nextIndex] = d
	t.nextIndex++
	if t.nextIndex >= len(t.buffer) {
		t.nextIndex = 0
	}
	if t.filled < len(t.buffer) {
		t.filled++
	}
	t.mu.Unlock()
}

// Snapshot returns up to the last n durations, oldest first.
func (t *FrameTap) Snapshot(n int) []time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n = min(max(n, 0), t.filled)
	out := make([]time.Duration, n)
	// Walk backwards from nextIndex - 1, filling from the end.
	idx := t.nextIndex - 1
	for i := n - 1; i >= 0; i-- {
		if idx < 0 {
			idx = len(t.buffer) - 1
		}
		out[i] = t.buffer[idx]
		idx--
	}
	return out
}

// Mean is the average duration over the recorded frames, or 0 when empty.
func (t *FrameTap) Mean() time.Duration {
	frames := t.Snapshot(len(t.buffer))
	if len(frames) == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range frames {
		sum += d
	}
	return sum / time.Duration(len(frames))
}
