package app

import (
	"flag"
	"io"
	"testing"

	_ "sander/internal/sims/sand"
)

func parse(t *testing.T, args ...string) *Config {
	t.Helper()
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return cfg
}

func TestBindDefaults(t *testing.T) {
	cfg := parse(t)
	if cfg.Sim != "sand" || cfg.Scale != 4 || cfg.TPS != 60 || cfg.Seed != 0 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if len(cfg.Options()) != 0 {
		t.Fatalf("expected no options, got %v", cfg.Options())
	}
}

func TestOptionsMergeOverrides(t *testing.T) {
	cfg := parse(t, "-config", "x.yaml", "-set", "w=10", "-set", " h = 7 ")
	opts := cfg.Options()
	if opts["config"] != "x.yaml" || opts["w"] != "10" || opts["h"] != "7" {
		t.Fatalf("unexpected options %v", opts)
	}
}

func TestSetRejectsMalformedOverride(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-set", "novalue"}); err == nil {
		t.Fatal("expected error for override without '='")
	}
}

func TestNewSim(t *testing.T) {
	cfg := parse(t, "-set", "w=16", "-set", "h=12", "-seed", "5")
	sim, err := cfg.NewSim()
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	if s := sim.Size(); s.W != 16 || s.H != 12 {
		t.Fatalf("expected 16x12, got %dx%d", s.W, s.H)
	}

	cfg.Sim = "nope"
	if _, err := cfg.NewSim(); err == nil {
		t.Fatal("expected error for unknown sim")
	}

	bad := parse(t, "-config", "/does/not/exist.yaml")
	if _, err := bad.NewSim(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
