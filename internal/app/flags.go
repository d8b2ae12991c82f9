package app

import (
	"flag"
	"fmt"
	"strings"

	"sander/internal/core"
)

// Config represents the command-line parameters shared by the front ends.
type Config struct {
	Sim        string
	Scale      int
	TPS        int
	Seed       int64
	ConfigPath string
	Overrides  KVList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "sand", Scale: 4, TPS: 60}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset (0 = config seed)")
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "path to a YAML config file (empty = defaults)")
	fs.Var(&c.Overrides, "set", "parameter override in key=value form (repeatable)")
}

// Options merges the config path and the -set overrides into the map handed
// to a simulation factory.
func (c *Config) Options() map[string]string {
	opts := make(map[string]string, len(c.Overrides)+1)
	if c.ConfigPath != "" {
		opts["config"] = c.ConfigPath
	}
	for _, kv := range c.Overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		opts[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return opts
}

// NewSim builds and resets the configured simulation.
func (c *Config) NewSim() (core.Sim, error) {
	factory, ok := core.Sims()[c.Sim]
	if !ok {
		return nil, fmt.Errorf("unknown sim %q (available: %s)", c.Sim, strings.Join(core.SimNames(), ", "))
	}
	sim, err := factory(c.Options())
	if err != nil {
		return nil, fmt.Errorf("creating sim %q: %w", c.Sim, err)
	}
	sim.Reset(c.Seed)
	return sim, nil
}

// KVList collects repeatable key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

// Set appends a value; it rejects entries without '='.
func (l *KVList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	*l = append(*l, value)
	return nil
}
