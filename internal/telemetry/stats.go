// Package telemetry collects per-frame statistics from a sandbox and writes
// them as CSV.
package telemetry

import (
	"log/slog"
	"math"

	"sander/internal/sims/sand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FrameStats summarizes one frame of a sandbox run.
type FrameStats struct {
	Seed  int64 `csv:"seed"`
	Frame int   `csv:"frame"`

	Sand  int `csv:"sand"`
	Water int `csv:"water"`
	Wood  int `csv:"wood"`

	Moves  int `csv:"moves"`
	Active int `csv:"active_cells"`

	// Column heights count the occupied cells in each column.
	HeightMean float64 `csv:"height_mean"`
	HeightStd  float64 `csv:"height_std"`
	HeightMax  float64 `csv:"height_max"`
}

// Collect computes the statistics of the world's current frame.
func Collect(w *sand.World, seed int64) FrameStats {
	counts := w.Counts()
	s := FrameStats{
		Seed:  seed,
		Frame: w.Frame(),
		Sand:  counts[sand.KindSand],
		Water: counts[sand.KindWater],
		Wood:  counts[sand.KindWood],
		Moves: w.LastMoves(),
	}
	for _, v := range w.Activity() {
		if v != 0 {
			s.Active++
		}
	}

	heights := ColumnHeights(w.Grid())
	s.HeightMean = stat.Mean(heights, nil)
	if len(heights) > 1 {
		s.HeightStd = stat.StdDev(heights, nil)
	}
	s.HeightMax = floats.Max(heights)
	return s
}

// ColumnHeights returns the number of occupied cells in each column.
func ColumnHeights(g *sand.Grid) []float64 {
	heights := make([]float64, g.Size().W)
	for c := range g.Occupied() {
		heights[c.X]++
	}
	return heights
}

// Total returns the number of particles in the frame.
func (s FrameStats) Total() int { return s.Sand + s.Water + s.Wood }

// LogValue implements slog.LogValuer for structured logging.
func (s FrameStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("seed", s.Seed),
		slog.Int("frame", s.Frame),
		slog.Int("sand", s.Sand),
		slog.Int("water", s.Water),
		slog.Int("wood", s.Wood),
		slog.Int("moves", s.Moves),
		slog.Int("active", s.Active),
		slog.Float64("height_mean", s.HeightMean),
		slog.Float64("height_std", s.HeightStd),
		slog.Float64("height_max", s.HeightMax),
	)
}

// RunSummary describes how a set of runs settled.
type RunSummary struct {
	Runs        int
	Settled     int
	SettleMean  float64
	SettleStd   float64
	MovesPerRun float64
}

// Summarize aggregates run results. A run counts as settled when its final
// frame had no movement; the settle frame statistics cover settled runs only.
func Summarize(finals []FrameStats, totalMoves []int) RunSummary {
	sum := RunSummary{Runs: len(finals)}
	var settle []float64
	for _, f := range finals {
		if f.Moves == 0 {
			settle = append(settle, float64(f.Frame))
		}
	}
	sum.Settled = len(settle)
	switch len(settle) {
	case 0:
		sum.SettleMean = math.NaN()
	case 1:
		sum.SettleMean = settle[0]
	default:
		sum.SettleMean, sum.SettleStd = stat.MeanStdDev(settle, nil)
	}
	if len(totalMoves) > 0 {
		moves := make([]float64, len(totalMoves))
		for i, m := range totalMoves {
			moves[i] = float64(m)
		}
		sum.MovesPerRun = stat.Mean(moves, nil)
	}
	return sum
}

// LogValue implements slog.LogValuer for structured logging.
func (r RunSummary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("runs", r.Runs),
		slog.Int("settled", r.Settled),
		slog.Float64("settle_mean", r.SettleMean),
		slog.Float64("settle_std", r.SettleStd),
		slog.Float64("moves_per_run", r.MovesPerRun),
	)
}
