package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"time"

	"sander/internal/app"
	"sander/internal/sims/sand"
	"sander/internal/telemetry"
)

func main() {
	cfg := app.NewConfig()
	fs := flag.CommandLine
	fs.StringVar(&cfg.ConfigPath, "config", "", "path to a YAML config file (empty = defaults)")
	fs.Var(&cfg.Overrides, "set", "parameter override in key=value form (repeatable)")
	runs := fs.Int("runs", 8, "number of seeds to simulate")
	firstSeed := fs.Int64("seed", 1, "first seed; run i uses seed+i")
	frames := fs.Int("frames", 2000, "maximum frames per run")
	fill := fs.Float64("fill", 0.4, "initial fill of the upper half (overrides the config file when given)")
	sampleEvery := fs.Int("sample-every", 10, "record frame stats every N frames (0 = final only)")
	workers := fs.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	outputDir := fs.String("output-dir", "", "directory for frames.csv, runs.csv and config.yaml")
	jsonLogs := fs.Bool("json", false, "log as JSON instead of text")
	flag.Parse()

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, nil)
	if *jsonLogs {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))

	var fillOverride *float64
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "fill" {
			fillOverride = fill
		}
	})
	worldCfg, err := loadConfig(cfg, *fill, fillOverride)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := bench(ctx, worldCfg, *firstSeed, *runs, *frames, *sampleEvery, *workers, *outputDir); err != nil {
		slog.Error("benchmark failed", "error", err)
		os.Exit(1)
	}
}

// loadConfig builds the world config. Without a config file the bench uses
// defaultFill, since the embedded defaults start empty; an explicit -fill
// wins over both. -set overrides apply last.
func loadConfig(cfg *app.Config, defaultFill float64, fillOverride *float64) (sand.Config, error) {
	base, err := sand.LoadConfig(cfg.ConfigPath)
	if err != nil {
		return sand.Config{}, err
	}
	switch {
	case fillOverride != nil:
		base.Params.InitialFill = *fillOverride
	case cfg.ConfigPath == "":
		base.Params.InitialFill = defaultFill
	}
	return base.WithOverrides(cfg.Options()), nil
}

func bench(ctx context.Context, cfg sand.Config, firstSeed int64, runs, frames, sampleEvery, workers int, dir string) error {
	out, err := telemetry.NewOutput(dir)
	if err != nil {
		return err
	}
	if err := record(ctx, out, cfg, firstSeed, runs, frames, sampleEvery, workers); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// record runs the seeds and writes their telemetry to out, which the caller
// closes.
func record(ctx context.Context, out *telemetry.Output, cfg sand.Config, firstSeed int64, runs, frames, sampleEvery, workers int) error {
	if err := out.WriteConfig(cfg); err != nil {
		return fmt.Errorf("writing config snapshot: %w", err)
	}

	seeds := make([]int64, runs)
	for i := range seeds {
		seeds[i] = firstSeed + int64(i)
	}

	slog.Info("starting benchmark",
		"runs", runs,
		"workers", workers,
		"max_frames", frames,
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"output_dir", out.Dir(),
	)

	start := time.Now()
	var finals []telemetry.FrameStats
	var moves []int
	err := runAll(ctx, cfg, seeds, workers, frames, sampleEvery, func(res runResult) error {
		for _, f := range res.frames {
			if err := out.WriteFrame(f); err != nil {
				return fmt.Errorf("writing frame stats: %w", err)
			}
		}
		if err := out.WriteRun(res.final); err != nil {
			return fmt.Errorf("writing run stats: %w", err)
		}
		finals = append(finals, res.final)
		moves = append(moves, res.moves)
		slog.Info("run finished", "stats", res.final, "total_moves", res.moves)
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("benchmark complete",
		"summary", telemetry.Summarize(finals, moves),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return nil
}
