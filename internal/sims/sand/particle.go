package sand

import (
	"fmt"
	"image/color"
	"strings"

	"sander/internal/core"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Kind enumerates the materials a particle can be made of.
type Kind uint8

const (
	KindSand Kind = iota
	KindWater
	KindWood

	kindCount
)

const (
	saturationJitter = 0.20
	lightnessJitter  = 0.02
)

var kindNames = [kindCount]string{
	KindSand:  "sand",
	KindWater: "water",
	KindWood:  "wood",
}

var kindBaseColors = [kindCount]color.RGBA{
	KindSand:  {R: 230, G: 200, B: 60, A: 255},
	KindWater: {R: 50, G: 110, B: 220, A: 255},
	KindWood:  {R: 120, G: 80, B: 40, A: 255},
}

// Kinds returns every material in declaration order.
func Kinds() []Kind {
	return []Kind{KindSand, KindWater, KindWood}
}

// ParseKind resolves a material name, ignoring case.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown material %q", name)
}

// String returns the material name.
func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Solid reports whether the material blocks falling sand.
func (k Kind) Solid() bool {
	switch k {
	case KindSand, KindWood:
		return true
	case KindWater:
		return false
	default:
		panic(fmt.Sprintf("sand: solidity of unknown kind %d", uint8(k)))
	}
}

// BaseColor is the unjittered display color of the material.
func (k Kind) BaseColor() color.RGBA {
	if k >= kindCount {
		return color.RGBA{A: 255}
	}
	return kindBaseColors[k]
}

// Particle is the occupant of a grid cell.
type Particle struct {
	Kind Kind
	// Ticked is set once the particle has been processed in the current frame.
	Ticked bool
	Color  color.RGBA
}

// NewParticle creates a particle whose color is jittered around the kind's
// base color in HSL space.
func NewParticle(kind Kind, rng *core.RNG) Particle {
	return Particle{Kind: kind, Color: varyColor(kind.BaseColor(), rng)}
}

// Solid reports whether the particle blocks falling sand.
func (p Particle) Solid() bool { return p.Kind.Solid() }

func varyColor(base color.RGBA, rng *core.RNG) color.RGBA {
	if rng == nil {
		return base
	}
	c, _ := colorful.MakeColor(base)
	h, s, l := c.Hsl()
	s = clamp01(s + rng.Range(-saturationJitter, saturationJitter))
	l = clamp01(l + rng.Range(-lightnessJitter, lightnessJitter))
	r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: base.A}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
