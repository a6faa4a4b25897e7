// Command wavebg-snapshot renders the background headlessly and writes PNG
// frames, for previews and visual regression checks.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/iburimskiy/wave-background/internal/animator"
	"github.com/iburimskiy/wave-background/internal/config"
	"github.com/iburimskiy/wave-background/internal/logging"
	"github.com/iburimskiy/wave-background/internal/render/raster"
	"github.com/iburimskiy/wave-background/internal/stats"
)

type options struct {
	frames   int
	every    int
	out      string
	dpr      float64
	cpus     int
	memoryGB float64
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var opts options
	fs := flag.NewFlagSet("wavebg-snapshot", flag.ContinueOnError)
	fs.IntVar(&opts.frames, "frames", 120, "frames to simulate")
	fs.IntVar(&opts.every, "every", 0, "write a PNG every N frames (0 = only the last frame)")
	fs.StringVar(&opts.out, "out", "wavebg.png", "output file; with -every, a %d verb receives the frame number")
	fs.Float64Var(&opts.dpr, "dpr", 1, "device pixel ratio")
	fs.IntVar(&opts.cpus, "cpus", 0, "reported logical CPUs (0 = not reported)")
	fs.Float64Var(&opts.memoryGB, "memory-gb", 0, "reported memory in GB (0 = not reported)")

	cfg, err := config.Parse(fs, args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	log, err := logging.New(logging.Config{Environment: cfg.Log.Env, Level: cfg.Log.Level, Service: "wavebg-snapshot"})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	written, err := snapshot(context.Background(), cfg, opts, log)
	if err != nil {
		return err
	}
	log.Info("snapshot done", zap.Strings("files", written))
	return nil
}

// snapshot runs opts.frames frames on a raster canvas and returns the
// files it wrote.
func snapshot(ctx context.Context, cfg config.Config, opts options, log *zap.Logger) ([]string, error) {
	if opts.frames <= 0 {
		return nil, fmt.Errorf("%w: frames must be positive", config.ErrInvalid)
	}
	if opts.every > 0 && !strings.Contains(opts.out, "%") {
		return nil, fmt.Errorf("%w: -out needs a %%d verb when -every is set", config.ErrInvalid)
	}

	surface := raster.New()
	sched := &animator.ManualScheduler{}
	rec := stats.NewRecorder(opts.frames)
	vp := animator.Viewport{
		Width:      float64(cfg.Window.Width),
		Height:     float64(cfg.Window.Height),
		PixelRatio: opts.dpr,
		Hints:      animator.Hints{CPUs: opts.cpus, MemoryGB: opts.memoryGB},
	}

	anim, err := animator.New(surface, sched, vp, cfg, animator.WithLogger(log), animator.WithObserver(rec))
	if err != nil {
		return nil, err
	}
	anim.Start(ctx)

	var written []string
	for frame := 1; frame <= opts.frames; frame++ {
		if !sched.Step() {
			return written, ctx.Err()
		}
		last := frame == opts.frames
		if opts.every > 0 && (frame%opts.every == 0 || last) {
			path := fmt.Sprintf(opts.out, frame)
			if err := surface.SavePNG(path); err != nil {
				return written, fmt.Errorf("write %s: %w", path, err)
			}
			written = append(written, path)
		} else if opts.every == 0 && last {
			if err := surface.SavePNG(opts.out); err != nil {
				return written, fmt.Errorf("write %s: %w", opts.out, err)
			}
			written = append(written, opts.out)
		}
	}

	log.Debug("frame cost",
		zap.Stringer("profile", anim.Profile()),
		zap.Duration("mean", rec.Tap.Mean()),
		zap.Int("last_connections", rec.Last().Connections),
	)
	return written, nil
}
