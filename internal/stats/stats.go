// Package stats turns per-frame animator stats into prometheus metrics and a
// short in-memory history for on-screen overlays.
package stats

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/iburimskiy/wave-background/internal/animator"
)

const namespace = "wavebg"

// Recorder implements animator.Observer.
type Recorder struct {
	Registry *prometheus.Registry
	Tap      *FrameTap

	frames      prometheus.Counter
	pairChecks  prometheus.Counter
	connections prometheus.Counter
	frameTime   prometheus.Histogram
	particles   prometheus.Gauge
	shapes      prometheus.Gauge
	lowPower    prometheus.Gauge

	last animator.FrameStats
}

// NewRecorder registers the frame metrics on a fresh registry.
func NewRecorder(tapSize int) *Recorder {
	r := &Recorder{
		Registry: prometheus.NewRegistry(),
		Tap:      NewFrameTap(tapSize),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Frames rendered.",
		}),
		pairChecks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pair_checks_total",
			Help:      "Particle pair distance checks performed.",
		}),
		connections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_total",
			Help:      "Connection lines drawn.",
		}),
		frameTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_seconds",
			Help:      "Time spent updating and drawing one frame.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
		particles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "particles",
			Help:      "Particles in the current population.",
		}),
		shapes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "shapes",
			Help:      "Shapes in the current population.",
		}),
		lowPower: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "low_power",
			Help:      "1 when the capability profile is low power.",
		}),
	}
	r.Registry.MustRegister(r.frames, r.pairChecks, r.connections, r.frameTime, r.particles, r.shapes, r.lowPower)
	return r
}

func (r *Recorder) ObserveFrame(st animator.FrameStats, took time.Duration) {
	r.frames.Inc()
	r.pairChecks.Add(float64(st.PairChecks))
	r.connections.Add(float64(st.Connections))
	r.frameTime.Observe(took.Seconds())
	r.particles.Set(float64(st.Particles))
	r.shapes.Set(float64(st.Shapes))
	r.Tap.Add(took)
	r.last = st
}

// SetProfile publishes the current capability profile.
func (r *Recorder) SetProfile(p animator.CapabilityProfile) {
	if p.LowPower {
		r.lowPower.Set(1)
	} else {
		r.lowPower.Set(0)
	}
}

// Last returns the stats of the most recent frame.
func (r *Recorder) Last() animator.FrameStats { return r.last }

// Serve exposes /metrics on addr until ctx is cancelled. An empty addr
// returns immediately.
func (r *Recorder) Serve(ctx context.Context, addr string, log *zap.Logger) error {
	if addr == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(r.Registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("serving metrics", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
