package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"
	"go.uber.org/zap"

	"github.com/iburimskiy/wave-background/internal/config"
	"github.com/iburimskiy/wave-background/internal/game"
	"github.com/iburimskiy/wave-background/internal/hostinfo"
	"github.com/iburimskiy/wave-background/internal/logging"
	"github.com/iburimskiy/wave-background/internal/stats"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		_ = zenity.Error(err.Error(), zenity.Title("Wave Background"), zenity.ErrorIcon)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("wavebg", flag.ContinueOnError)
	cpus := fs.Int("cpus", 0, "override detected logical CPUs (-1 hides the hint)")
	memoryGB := fs.Float64("memory-gb", 0, "override detected memory in GB (-1 hides the hint)")
	fullscreen := fs.Bool("fullscreen", false, "start fullscreen")

	cfg, err := config.Parse(fs, args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	log, err := logging.New(logging.Config{Environment: cfg.Log.Env, Level: cfg.Log.Level, Service: "wavebg"})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hints := hostinfo.Override(hostinfo.Detect(ctx), *cpus, *memoryGB)
	log.Info("host detected", zap.Int("cpus", hints.CPUs), zap.Float64("memory_gb", hints.MemoryGB))

	rec := stats.NewRecorder(config.FrameTapSize)
	go func() {
		if err := rec.Serve(ctx, cfg.Metrics.Addr, log); err != nil {
			log.Warn("metrics server stopped", zap.Error(err))
		}
	}()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(*fullscreen)

	g := game.NewGame(ctx, cfg, hints, log, rec)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run window: %w", err)
	}
	log.Info("window closed")
	return nil
}
