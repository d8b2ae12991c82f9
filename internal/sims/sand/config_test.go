package sand

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigFromEmbeddedYAML(t *testing.T) {
	c := DefaultConfig()
	if c.Width != 200 || c.Height != 160 || c.Seed != 1337 {
		t.Fatalf("unexpected world defaults %+v", c)
	}
	if c.Params.BrushRadius != 5 || c.Params.Material != "sand" {
		t.Fatalf("unexpected brush defaults %+v", c.Params)
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sand.yaml")
	data := []byte("width: 64\nparams:\n  material: water\n  initial_fill: 2\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.Width != 64 {
		t.Fatalf("width override ignored: %d", c.Width)
	}
	if c.Height != 160 {
		t.Fatalf("height should keep the default, got %d", c.Height)
	}
	if c.Params.Material != "water" {
		t.Fatalf("material override ignored: %q", c.Params.Material)
	}
	if c.Params.InitialFill != 1 {
		t.Fatalf("initial fill should clamp to 1, got %f", c.Params.InitialFill)
	}
	if c.Params.BrushRadius != 5 {
		t.Fatalf("brush radius should keep the default, got %d", c.Params.BrushRadius)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("width: [1, 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
	c, err := LoadConfig("")
	if err != nil || c.Width != DefaultConfig().Width {
		t.Fatalf("empty path should yield defaults, got %+v, %v", c, err)
	}
}

func TestWriteYAMLCanBeReloaded(t *testing.T) {
	c := DefaultConfig()
	c.Width = 33
	c.Params.Ledges = 4
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := c.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded != c {
		t.Fatalf("reloaded config %+v differs from %+v", loaded, c)
	}
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{
		"w":           "80",
		"h":           "-4",
		"seed":        "12",
		"brush":       "3",
		"material":    "wood",
		"overwrite":   "true",
		"fill":        "0.25",
		"water_ratio": "abc",
		"ledges":      "2",
	})
	def := DefaultConfig()
	if c.Width != 80 || c.Height != def.Height || c.Seed != 12 {
		t.Fatalf("unexpected dimensions %+v", c)
	}
	if c.Params.BrushRadius != 3 || c.Params.Material != "wood" || !c.Params.Overwrite {
		t.Fatalf("unexpected brush params %+v", c.Params)
	}
	if c.Params.InitialFill != 0.25 || c.Params.WaterRatio != def.Params.WaterRatio || c.Params.Ledges != 2 {
		t.Fatalf("unexpected scene params %+v", c.Params)
	}
	if FromMap(map[string]string{"material": "lava"}).Params.Material != "sand" {
		t.Fatal("unknown material should keep the default")
	}
}

func TestLoadConfigClampsBrushRadius(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sand.yaml")
	if err := os.WriteFile(path, []byte("params:\n  brush_radius: 900\n"), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.Params.BrushRadius != maxBrush {
		t.Fatalf("expected brush radius %d, got %d", maxBrush, c.Params.BrushRadius)
	}
}
