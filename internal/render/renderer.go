//go:build ebiten

package render

import (
	"image/color"

	"sander/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads a sim's frame into a single RGBA image and draws it
// scaled onto the screen.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Blit renders sim into the painter image and draws it onto dst.
func (gp *GridPainter) Blit(dst *ebiten.Image, sim core.Sim, on, off color.Color, scale int) {
	if len(sim.Cells()) != gp.w*gp.h {
		return
	}
	FillSim(gp.buf, sim, on, off)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
