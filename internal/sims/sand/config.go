package sand

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Params holds the tunables of the sandbox.
type Params struct {
	BrushRadius int    `yaml:"brush_radius"`
	Material    string `yaml:"material"`
	// Overwrite lets the brush replace occupied cells instead of only filling
	// empty ones.
	Overwrite bool `yaml:"overwrite"`

	// InitialFill is the chance that a cell in the top half starts occupied
	// after Reset. WaterRatio is the share of those that are water.
	InitialFill float64 `yaml:"initial_fill"`
	WaterRatio  float64 `yaml:"water_ratio"`
	Ledges      int     `yaml:"ledges"`
	LedgeWidth  int     `yaml:"ledge_width"`
}

// Config controls the sandbox dimensions and starting scene.
type Config struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Seed   int64 `yaml:"seed"`

	Params Params `yaml:"params"`
}

// DefaultConfig returns the embedded default configuration.
func DefaultConfig() Config {
	var c Config
	if err := yaml.Unmarshal(defaultsYAML, &c); err != nil {
		panic(fmt.Sprintf("sand: parsing embedded defaults: %v", err))
	}
	c.normalize()
	return c
}

// LoadConfig merges the YAML file at path over the embedded defaults. An
// empty path yields the defaults.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	c.normalize()
	return c, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	return DefaultConfig().WithOverrides(cfg)
}

// WithOverrides returns a copy of c with the recognised keys of cfg applied.
// Unparseable or out-of-range values are ignored.
func (c Config) WithOverrides(cfg map[string]string) Config {
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["brush"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.BrushRadius = parsed
		}
	}
	if v, ok := cfg["material"]; ok {
		if _, err := ParseKind(v); err == nil {
			c.Params.Material = v
		}
	}
	if v, ok := cfg["overwrite"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Params.Overwrite = parsed
		}
	}
	if v, ok := cfg["fill"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.InitialFill = parsed
		}
	}
	if v, ok := cfg["water_ratio"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.WaterRatio = parsed
		}
	}
	if v, ok := cfg["ledges"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.Ledges = parsed
		}
	}
	if v, ok := cfg["ledge_width"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.LedgeWidth = parsed
		}
	}
	c.normalize()
	return c
}

func (c *Config) normalize() {
	if c.Width <= 0 {
		c.Width = 1
	}
	if c.Height <= 0 {
		c.Height = 1
	}
	if c.Params.BrushRadius < 1 {
		c.Params.BrushRadius = 1
	}
	if c.Params.BrushRadius > maxBrush {
		c.Params.BrushRadius = maxBrush
	}
	if _, err := ParseKind(c.Params.Material); err != nil {
		c.Params.Material = KindSand.String()
	}
	c.Params.InitialFill = clamp01(c.Params.InitialFill)
	c.Params.WaterRatio = clamp01(c.Params.WaterRatio)
	if c.Params.Ledges < 0 {
		c.Params.Ledges = 0
	}
	if c.Params.LedgeWidth < 1 {
		c.Params.LedgeWidth = 1
	}
}
