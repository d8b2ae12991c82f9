//go:build ebiten

package app

import (
	"image/color"
	"time"

	"sander/internal/core"
	"sander/internal/render"
	"sander/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 220

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	brush   core.Brush
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	onColor  color.Color
	offColor color.Color

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, scale int, seed int64) *Game {
	if scale <= 0 {
		scale = 1
	}
	size := sim.Size()
	g := &Game{
		sim:      sim,
		painter:  render.NewGridPainter(size.W, size.H),
		overlay:  ui.NewOverlay(sim, scale),
		hud:      ui.NewHUD(sim, hudWidth),
		onColor:  color.White,
		offColor: color.Black,
		scale:    scale,
		seed:     seed,
	}
	g.brush, _ = sim.(core.Brush)
	return g
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	consumed := g.hud.Update(g.gridWidth())
	g.overlay.Update()
	if !consumed {
		g.handleBrush()
	}

	if !g.paused || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
	}
	return nil
}

func (g *Game) handleBrush() {
	if g.brush == nil {
		return
	}
	for i, key := range digitKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.brush.SetMaterial(i)
		}
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		step := 1
		if dy < 0 {
			step = -1
		}
		g.brush.SetBrushRadius(g.brush.BrushRadius() + step)
	}

	mx, my := ebiten.CursorPosition()
	if g.hud.Contains(mx, my) {
		return
	}
	x, y := mx/g.scale, my/g.scale
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.brush.Paint(x, y)
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		g.brush.Erase(x, y)
	}
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim, g.onColor, g.offColor, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.gridWidth(), g.scale)
}

// Layout returns the logical screen size: the scaled grid plus the HUD panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.gridWidth() + g.hud.Width(), g.sim.Size().H * g.scale
}

func (g *Game) gridWidth() int { return g.sim.Size().W * g.scale }
