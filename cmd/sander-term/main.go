package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"sander/internal/app"
	_ "sander/internal/sims/sand"
	"sander/internal/term"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	logPath := flag.String("log", "", "write logs to this file (the terminal is busy drawing)")
	flag.Parse()

	logger, closeLog, err := newLogger(*logPath)
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(cfg, logger); err != nil {
		slog.Error("sander-term failed", "error", err)
		closeLog()
		os.Exit(1)
	}
}

func run(cfg *app.Config, logger *slog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	cols, rows := screen.Size()
	fitToTerminal(cfg, cols, rows)
	sim, err := cfg.NewSim()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("starting", "sim", sim.Name(), "size", sim.Size(), "tps", cfg.TPS)
	term.New(screen, sim, cfg.TPS, cfg.Seed, logger).Run(ctx)
	return nil
}

// fitToTerminal defaults the grid to the terminal size, leaving a row for the
// status line. Explicit -set w=/h= values win.
func fitToTerminal(cfg *app.Config, cols, rows int) {
	opts := cfg.Options()
	if _, ok := opts["w"]; !ok && cols > 0 {
		cfg.Overrides = append(cfg.Overrides, fmt.Sprintf("w=%d", cols))
	}
	if _, ok := opts["h"]; !ok && rows > 1 {
		cfg.Overrides = append(cfg.Overrides, fmt.Sprintf("h=%d", rows-1))
	}
}

func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	return slog.New(slog.NewTextHandler(f, nil)), func() { f.Close() }, nil
}
