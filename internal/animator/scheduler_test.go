package animator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualScheduler(t *testing.T) {
	var m ManualScheduler
	assert.False(t, m.Step())

	n := 0
	var fn func()
	fn = func() {
		n++
		if n < 3 {
			m.RequestFrame(fn)
		}
	}
	m.RequestFrame(fn)
	assert.Equal(t, 3, m.Run(10))
	assert.Equal(t, 3, n)
	assert.False(t, m.Pending())
}

func TestManualSchedulerReplacesPending(t *testing.T) {
	var m ManualScheduler
	first, second := 0, 0
	m.RequestFrame(func() { first++ })
	m.RequestFrame(func() { second++ })
	m.Run(5)
	assert.Zero(t, first)
	assert.Equal(t, 1, second)
}

func TestTickerSchedulerRunsFramesAndEvents(t *testing.T) {
	ts := NewTickerScheduler(200)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	frames := 0
	var tick func()
	tick = func() {
		frames++
		if frames == 5 {
			cancel()
			return
		}
		ts.RequestFrame(tick)
	}

	require.True(t, ts.Post(ctx, func() { ts.RequestFrame(tick) }))
	err := ts.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 5, frames)
}

func TestTickerSchedulerPostAfterCancel(t *testing.T) {
	ts := NewTickerScheduler(30)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < cap(ts.events); i++ {
		ts.events <- func() {}
	}
	assert.False(t, ts.Post(ctx, func() {}))
}

func TestTickerSchedulerDefaultRate(t *testing.T) {
	ts := NewTickerScheduler(0)
	assert.Equal(t, time.Second/60, ts.interval)
}
