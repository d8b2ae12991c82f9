//go:build ebiten

package ui

import (
	"image/color"

	"sander/internal/core"
	"sander/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type activityProvider interface {
	Activity() []uint8
}

var (
	outlineColor  = color.RGBA{R: 240, G: 240, B: 240, A: 160}
	activityTint  = color.RGBA{R: 255, G: 64, B: 160, A: 255}
	activityAlpha = uint8(110)
)

// Overlay draws the brush outline under the cursor and, when toggled with A,
// the cells that changed during the last step.
type Overlay struct {
	sim          core.Sim
	scale        int
	showActivity bool
	cursorX      int
	cursorY      int
	hover        bool

	maskImg *ebiten.Image
	maskBuf []byte
	pixel   *ebiten.Image
}

// NewOverlay constructs an overlay for sim drawn at the given scale.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	o := &Overlay{sim: sim, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update tracks the cursor in grid space and handles the activity toggle.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		o.showActivity = !o.showActivity
	}
	mx, my := ebiten.CursorPosition()
	o.cursorX, o.cursorY = mx/o.scale, my/o.scale
	o.hover = o.sim.Size().Contains(o.cursorX, o.cursorY)
}

// Draw renders the overlay onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	if size.Area() == 0 {
		return
	}
	if o.showActivity {
		if provider, ok := o.sim.(activityProvider); ok {
			o.drawActivity(screen, provider.Activity(), size)
		}
	}
	if brush, ok := o.sim.(core.Brush); ok && o.hover {
		for _, c := range brushOutline(size, o.cursorX, o.cursorY, brush.BrushRadius()) {
			o.drawCell(screen, c)
		}
	}
}

func (o *Overlay) drawActivity(screen *ebiten.Image, mask []uint8, size core.Size) {
	if len(mask) != size.Area() {
		return
	}
	if o.maskImg == nil || o.maskImg.Bounds().Dx() != size.W || o.maskImg.Bounds().Dy() != size.H {
		o.maskImg = ebiten.NewImage(size.W, size.H)
		o.maskBuf = make([]byte, 4*size.Area())
	}
	render.FillMaskRGBA(o.maskBuf, mask, activityTint, activityAlpha)
	o.maskImg.WritePixels(o.maskBuf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(o.scale), float64(o.scale))
	screen.DrawImage(o.maskImg, op)
}

func (o *Overlay) drawCell(screen *ebiten.Image, c core.Coord) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(o.scale), float64(o.scale))
	op.GeoM.Translate(float64(c.X*o.scale), float64(c.Y*o.scale))
	op.ColorScale.ScaleWithColor(outlineColor)
	screen.DrawImage(o.pixel, op)
}
