//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"sander/internal/app"
	_ "sander/internal/sims/sand"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	sim, err := cfg.NewSim()
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		os.Exit(1)
	}

	game := app.New(sim, cfg.Scale, cfg.Seed)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("sander: " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	slog.Info("starting", "sim", sim.Name(), "size", sim.Size(), "tps", cfg.TPS)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		slog.Error("game loop failed", "error", err)
		os.Exit(1)
	}
}
