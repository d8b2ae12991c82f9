package sand

import (
	"image/color"

	"sander/internal/core"
)

const (
	displayEmpty uint8 = 0
	maxBrush           = 32
	// colorSeedSalt derives the cosmetic color stream from the seed. It is
	// independent of the movement stream.
	colorSeedSalt = 0x5eed
)

var background = color.RGBA{R: 12, G: 12, B: 16, A: 255}

// World is the falling-sand sandbox: a particle grid, the simulator that
// drives it and the brush state used by interactive front ends.
type World struct {
	cfg Config

	grid *Grid
	sim  *Simulator

	simRNG   *core.RNG
	colorRNG *core.RNG

	material Kind
	brush    int

	display  []uint8
	activity []uint8

	frame     int
	lastMoves int
}

// New returns a sandbox with the provided dimensions using defaults.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a sandbox configured from the provided options, reset
// with the configured seed.
func NewWithConfig(cfg Config) *World {
	cfg.normalize()
	material, _ := ParseKind(cfg.Params.Material)
	simRNG := core.NewRNG(cfg.Seed)
	w := &World{
		cfg:      cfg,
		grid:     core.NewGrid[Particle](cfg.Width, cfg.Height),
		sim:      NewSimulator(simRNG),
		simRNG:   simRNG,
		colorRNG: core.NewRNG(cfg.Seed ^ colorSeedSalt),
		material: material,
		brush:    cfg.Params.BrushRadius,
		display:  make([]uint8, cfg.Width*cfg.Height),
		activity: make([]uint8, cfg.Width*cfg.Height),
	}
	w.Reset(0)
	return w
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "sand" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return w.grid.Size() }

// Cells exposes the display buffer: 0 for empty, 1+Kind otherwise.
func (w *World) Cells() []uint8 { return w.display }

// Grid exposes the particle grid.
func (w *World) Grid() *Grid { return w.grid }

// Config returns the configuration the world was built with, including any
// parameter changes made since.
func (w *World) Config() Config { return w.cfg }

// Frame returns the number of steps since the last Reset.
func (w *World) Frame() int { return w.frame }

// LastMoves returns how many particles moved during the most recent Step.
func (w *World) LastMoves() int { return w.lastMoves }

// Activity marks with 1 every cell whose display value changed during the
// most recent Step.
func (w *World) Activity() []uint8 { return w.activity }

// Reset clears the grid and rebuilds the starting scene. A zero seed reuses
// the configured seed; any other seed becomes the configured seed.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.cfg.Seed = effective
	w.simRNG.Seed(effective)
	w.colorRNG.Seed(effective ^ colorSeedSalt)
	w.grid.Reset()
	w.frame = 0
	w.lastMoves = 0
	clear(w.activity)
	w.buildScene()
	w.rebuildDisplay()
}

// Step advances the sandbox by one frame.
func (w *World) Step() {
	w.lastMoves = w.sim.Step(w.grid)
	w.frame++
	// activity holds the previous display until the comparison below.
	copy(w.activity, w.display)
	w.rebuildDisplay()
	for i, v := range w.display {
		if w.activity[i] != v {
			w.activity[i] = 1
		} else {
			w.activity[i] = 0
		}
	}
}

// Counts returns the number of particles of each kind.
func (w *World) Counts() map[Kind]int {
	counts := make(map[Kind]int, kindCount)
	for _, k := range Kinds() {
		counts[k] = 0
	}
	for _, p := range w.grid.Occupied() {
		counts[p.Kind]++
	}
	return counts
}

// Materials lists the paintable materials in Kind order.
func (w *World) Materials() []string {
	kinds := Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return names
}

// Material returns the index of the selected brush material.
func (w *World) Material() int { return int(w.material) }

// SetMaterial selects the brush material by index.
func (w *World) SetMaterial(i int) bool {
	if i < 0 || i >= int(kindCount) {
		return false
	}
	w.material = Kind(i)
	w.cfg.Params.Material = w.material.String()
	return true
}

// BrushRadius returns the current brush radius.
func (w *World) BrushRadius() int { return w.brush }

// SetBrushRadius changes the brush radius, clamped to [1, 32].
func (w *World) SetBrushRadius(r int) {
	if r < 1 {
		r = 1
	}
	if r > maxBrush {
		r = maxBrush
	}
	w.brush = r
	w.cfg.Params.BrushRadius = r
}

// Paint fills the brush area around (x, y) with the selected material.
func (w *World) Paint(x, y int) { w.Fill(x, y, w.material, w.brush) }

// Erase empties the brush area around (x, y).
func (w *World) Erase(x, y int) {
	center, ok := w.grid.Coord(x, y)
	if !ok {
		return
	}
	for _, c := range center.Neighbors(w.brush) {
		w.grid.Clear(c)
		w.display[c.Y*w.cfg.Width+c.X] = displayEmpty
	}
}

// Fill places particles of kind in every cell within radius of (x, y).
// Occupied cells are kept unless the Overwrite parameter is set.
func (w *World) Fill(x, y int, kind Kind, radius int) {
	if kind >= kindCount {
		return
	}
	center, ok := w.grid.Coord(x, y)
	if !ok {
		return
	}
	for _, c := range center.Neighbors(radius) {
		if !w.cfg.Params.Overwrite && !w.grid.IsEmpty(c) {
			continue
		}
		w.grid.Set(c, NewParticle(kind, w.colorRNG))
		w.display[c.Y*w.cfg.Width+c.X] = displayValue(kind)
	}
}

// Palette maps display values to the base material colors.
func (w *World) Palette() []color.RGBA {
	palette := make([]color.RGBA, 1+int(kindCount))
	palette[displayEmpty] = background
	for _, k := range Kinds() {
		palette[displayValue(k)] = k.BaseColor()
	}
	return palette
}

// FillRGBA writes every cell's color, including per-particle variation, into
// buf as RGBA bytes. buf must hold 4*W*H bytes.
func (w *World) FillRGBA(buf []byte) {
	for c, cell := range w.grid.All() {
		base := 4 * (c.Y*w.cfg.Width + c.X)
		col := background
		if p, ok := cell.Value(); ok {
			col = p.Color
		}
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

func displayValue(k Kind) uint8 { return uint8(k) + 1 }

func (w *World) rebuildDisplay() {
	for c, cell := range w.grid.All() {
		v := displayEmpty
		if p, ok := cell.Value(); ok {
			v = displayValue(p.Kind)
		}
		w.display[c.Y*w.cfg.Width+c.X] = v
	}
}

func (w *World) buildScene() {
	p := w.cfg.Params
	width, height := w.cfg.Width, w.cfg.Height
	for i := 0; i < p.Ledges; i++ {
		y := height/3 + w.simRNG.IntN(height-height/3)
		x0 := w.simRNG.IntN(width)
		for x := x0; x < x0+p.LedgeWidth && x < width; x++ {
			if c, ok := w.grid.Coord(x, y); ok {
				w.grid.Set(c, NewParticle(KindWood, w.colorRNG))
			}
		}
	}
	if p.InitialFill <= 0 {
		return
	}
	for y := 0; y < height/2; y++ {
		for x := 0; x < width; x++ {
			c, _ := w.grid.Coord(x, y)
			if !w.grid.IsEmpty(c) || w.simRNG.Float64() >= p.InitialFill {
				continue
			}
			kind := KindSand
			if w.simRNG.Float64() < p.WaterRatio {
				kind = KindWater
			}
			w.grid.Set(c, NewParticle(kind, w.colorRNG))
		}
	}
}

func init() {
	core.Register("sand", func(opts map[string]string) (core.Sim, error) {
		cfg, err := LoadConfig(opts["config"])
		if err != nil {
			return nil, err
		}
		return NewWithConfig(cfg.WithOverrides(opts)), nil
	})
}
