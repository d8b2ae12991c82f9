package render

import (
	"image/color"

	"sander/internal/core"
)

// PixelSource is implemented by sims that color each cell themselves.
type PixelSource interface {
	FillRGBA(buf []byte)
}

// PaletteProvider is implemented by sims whose cell values index a palette.
type PaletteProvider interface {
	Palette() []color.RGBA
}

// FillSim writes the sim's current frame into buf as RGBA bytes, preferring
// per-cell colors, then a palette, then a binary on/off rendering.
func FillSim(buf []byte, sim core.Sim, on, off color.Color) {
	switch s := sim.(type) {
	case PixelSource:
		s.FillRGBA(buf)
	case PaletteProvider:
		fillPaletteRGBA(buf, sim.Cells(), s.Palette())
	default:
		fillBinaryRGBA(buf, sim.Cells(), on, off)
	}
}

// fillBinaryRGBA converts binary cell data (0/1) into RGBA pixels in buf.
func fillBinaryRGBA(buf []byte, cells []uint8, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	for i, c := range cells {
		base := i * 4
		if c != 0 {
			buf[base+0] = uint8(rOn >> 8)
			buf[base+1] = uint8(gOn >> 8)
			buf[base+2] = uint8(bOn >> 8)
			buf[base+3] = uint8(aOn >> 8)
			continue
		}
		buf[base+0] = uint8(rOff >> 8)
		buf[base+1] = uint8(gOff >> 8)
		buf[base+2] = uint8(bOff >> 8)
		buf[base+3] = uint8(aOff >> 8)
	}
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}
	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// FillMaskRGBA tints every non-zero mask cell with tint at the given alpha and
// leaves the rest transparent.
func FillMaskRGBA(buf []byte, mask []uint8, tint color.RGBA, alpha uint8) {
	for i, m := range mask {
		base := i * 4
		if m == 0 {
			buf[base+0], buf[base+1], buf[base+2], buf[base+3] = 0, 0, 0, 0
			continue
		}
		// Premultiplied, as ebiten expects.
		buf[base+0] = uint8(uint16(tint.R) * uint16(alpha) / 255)
		buf[base+1] = uint8(uint16(tint.G) * uint16(alpha) / 255)
		buf[base+2] = uint8(uint16(tint.B) * uint16(alpha) / 255)
		buf[base+3] = alpha
	}
}
