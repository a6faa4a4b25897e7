// Command wavebg-term draws the background in a terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/iburimskiy/wave-background/internal/config"
	"github.com/iburimskiy/wave-background/internal/hostinfo"
	"github.com/iburimskiy/wave-background/internal/logging"
	"github.com/iburimskiy/wave-background/internal/render/term"
	"github.com/iburimskiy/wave-background/internal/stats"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("wavebg-term", flag.ContinueOnError)
	cpus := fs.Int("cpus", 0, "override detected logical CPUs (-1 hides the hint)")
	memoryGB := fs.Float64("memory-gb", 0, "override detected memory in GB (-1 hides the hint)")
	logFile := fs.String("log-file", "", "write logs here instead of discarding them while the screen is active")

	cfg, err := config.Parse(fs, args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	// stderr shares the terminal with the animation, so logs go to a file
	// or nowhere.
	log := logging.Nop()
	if *logFile != "" {
		log, err = logging.New(logging.Config{
			Environment: cfg.Log.Env,
			Level:       cfg.Log.Level,
			Service:     "wavebg-term",
			OutputPaths: []string{*logFile},
		})
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hints := hostinfo.Override(hostinfo.Detect(ctx), *cpus, *memoryGB)

	rec := stats.NewRecorder(config.FrameTapSize)
	go func() {
		if err := rec.Serve(ctx, cfg.Metrics.Addr, log); err != nil {
			log.Warn("metrics server stopped", zap.Error(err))
		}
	}()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	host, err := term.NewHost(screen, cfg, hints, log, rec)
	if err != nil {
		return err
	}
	return host.Run(ctx)
}
