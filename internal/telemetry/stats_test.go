package telemetry

import (
	"math"
	"testing"

	"sander/internal/sims/sand"
)

func newWorld(w, h int) *sand.World {
	cfg := sand.DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Params.InitialFill = 0
	cfg.Params.Ledges = 0
	return sand.NewWithConfig(cfg)
}

func TestCollectCountsAndHeights(t *testing.T) {
	w := newWorld(4, 4)
	w.Fill(0, 3, sand.KindWood, 1)
	w.Fill(1, 3, sand.KindSand, 1)
	w.Fill(1, 2, sand.KindSand, 1)
	w.Fill(2, 0, sand.KindWater, 1)

	s := Collect(w, 5)
	if s.Seed != 5 || s.Frame != 0 {
		t.Fatalf("unexpected identity fields %+v", s)
	}
	if s.Sand != 2 || s.Water != 1 || s.Wood != 1 || s.Total() != 4 {
		t.Fatalf("unexpected counts %+v", s)
	}
	if s.HeightMax != 2 {
		t.Fatalf("expected tallest column 2, got %f", s.HeightMax)
	}
	if math.Abs(s.HeightMean-1) > 1e-9 {
		t.Fatalf("expected mean height 1, got %f", s.HeightMean)
	}
	if s.HeightStd <= 0 {
		t.Fatalf("expected positive spread, got %f", s.HeightStd)
	}
}

func TestCollectAfterStep(t *testing.T) {
	w := newWorld(3, 3)
	w.Fill(1, 0, sand.KindSand, 1)
	w.Step()
	s := Collect(w, 1)
	if s.Frame != 1 || s.Moves != 1 || s.Active != 2 {
		t.Fatalf("unexpected step stats %+v", s)
	}
}

func TestCollectSingleColumn(t *testing.T) {
	w := newWorld(1, 3)
	w.Fill(0, 2, sand.KindSand, 1)
	s := Collect(w, 0)
	if s.HeightStd != 0 || s.HeightMean != 1 {
		t.Fatalf("single column stats %+v", s)
	}
}

func TestSummarize(t *testing.T) {
	finals := []FrameStats{
		{Frame: 10, Moves: 0},
		{Frame: 20, Moves: 0},
		{Frame: 50, Moves: 3},
	}
	sum := Summarize(finals, []int{100, 200, 300})
	if sum.Runs != 3 || sum.Settled != 2 {
		t.Fatalf("unexpected counts %+v", sum)
	}
	if sum.SettleMean != 15 {
		t.Fatalf("expected settle mean 15, got %f", sum.SettleMean)
	}
	if math.Abs(sum.SettleStd-math.Sqrt(50)) > 1e-9 {
		t.Fatalf("unexpected settle std %f", sum.SettleStd)
	}
	if sum.MovesPerRun != 200 {
		t.Fatalf("expected 200 moves per run, got %f", sum.MovesPerRun)
	}

	if none := Summarize([]FrameStats{{Moves: 1}}, nil); !math.IsNaN(none.SettleMean) {
		t.Fatalf("expected NaN settle mean without settled runs, got %f", none.SettleMean)
	}
}
