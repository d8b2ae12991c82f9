package sand

import (
	"fmt"

	"sander/internal/core"
)

// Grid is the particle grid driven by the Simulator.
type Grid = core.Grid[Particle]

var (
	diagonalDown = []core.Offset{{DX: -1, DY: 1}, {DX: 1, DY: 1}}
	lateral      = []core.Offset{{DX: -1, DY: 0}, {DX: 1, DY: 0}}
)

// Simulator applies the per-frame movement rules to a grid in place.
//
// A frame is Init followed by Simulate on every coordinate, rows from the
// bottom up, each row swept in a randomly chosen direction. Step runs that
// protocol for callers that do not need to interleave their own work.
type Simulator struct {
	rng *core.RNG
}

// NewSimulator returns a simulator drawing all randomness from rng.
func NewSimulator(rng *core.RNG) *Simulator {
	if rng == nil {
		panic("sand: simulator requires a random source")
	}
	return &Simulator{rng: rng}
}

// Init clears the ticked flag of every particle. It must run once per frame
// before any Simulate call of that frame.
func (s *Simulator) Init(g *Grid) {
	for _, cell := range g.All() {
		if p := cell.Occupant(); p != nil {
			p.Ticked = false
		}
	}
}

// Step runs one full frame and returns the number of particles that moved.
func (s *Simulator) Step(g *Grid) int {
	s.Init(g)
	size := g.Size()
	moves := 0
	for y := size.H - 1; y >= 0; y-- {
		if s.rng.Bool() {
			for x := 0; x < size.W; x++ {
				moves += s.simulateAt(g, x, y)
			}
			continue
		}
		for x := size.W - 1; x >= 0; x-- {
			moves += s.simulateAt(g, x, y)
		}
	}
	return moves
}

func (s *Simulator) simulateAt(g *Grid, x, y int) int {
	c, ok := g.Coord(x, y)
	if !ok {
		panic(fmt.Sprintf("sand: scan produced out-of-bounds coordinate (%d,%d)", x, y))
	}
	if s.Simulate(g, c) {
		return 1
	}
	return 0
}

// Simulate processes the particle at c and reports whether it moved. Empty
// cells and particles already ticked this frame are left untouched.
func (s *Simulator) Simulate(g *Grid, c core.Coord) bool {
	p := g.Get(c).Occupant()
	if p == nil || p.Ticked {
		return false
	}
	p.Ticked = true

	switch p.Kind {
	case KindSand:
		return s.moveSand(g, c)
	case KindWater:
		return s.moveWater(g, c)
	case KindWood:
		return false
	default:
		panic(fmt.Sprintf("sand: no movement rule for kind %d at (%d,%d)", uint8(p.Kind), c.X, c.Y))
	}
}

func (s *Simulator) moveSand(g *Grid, c core.Coord) bool {
	if c.IsAtBottom() {
		return false
	}
	below, _ := c.MoveBy(0, 1)
	if !solidAt(g, below) {
		g.Swap(c, below)
		return true
	}
	for _, target := range c.RandomNeighbors(s.rng, diagonalDown) {
		if solidAt(g, target) {
			continue
		}
		// Lift whatever sits in the target so it does not ride up the slope
		// with the sand.
		if above, ok := target.MoveBy(0, -1); ok && g.IsEmpty(above) {
			g.Swap(target, above)
		}
		g.Swap(c, target)
		return true
	}
	return false
}

func (s *Simulator) moveWater(g *Grid, c core.Coord) bool {
	if c.IsAtBottom() {
		return false
	}
	below, _ := c.MoveBy(0, 1)
	if g.IsEmpty(below) {
		g.Swap(c, below)
		return true
	}
	if s.moveToFirstEmpty(g, c, diagonalDown) {
		return true
	}
	return s.moveToFirstEmpty(g, c, lateral)
}

func (s *Simulator) moveToFirstEmpty(g *Grid, c core.Coord, offsets []core.Offset) bool {
	for _, target := range c.RandomNeighbors(s.rng, offsets) {
		if g.IsEmpty(target) {
			g.Swap(c, target)
			return true
		}
	}
	return false
}

func solidAt(g *Grid, c core.Coord) bool {
	p, ok := g.Value(c)
	return ok && p.Solid()
}
