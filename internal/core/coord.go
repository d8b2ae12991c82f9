package core

import "math"

// Offset is a relative grid displacement.
type Offset struct {
	DX, DY int
}

// Coord is a grid position validated against fixed world dimensions. A Coord
// obtained from NewCoord, Grid.Coord or MoveBy is always inside its bounds;
// the zero value is not a usable position.
type Coord struct {
	X, Y int
	w, h int
}

// NewCoord returns the coordinate (x, y) for a world of the given size. The
// boolean is false when the point lies outside the world.
func NewCoord(x, y int, size Size) (Coord, bool) {
	if !size.Contains(x, y) {
		return Coord{}, false
	}
	return Coord{X: x, Y: y, w: size.W, h: size.H}, true
}

// Bounds returns the world size the coordinate was validated against.
func (c Coord) Bounds() Size { return Size{W: c.w, H: c.h} }

// MoveBy returns the coordinate offset by (dx, dy), or false when the result
// leaves the world.
func (c Coord) MoveBy(dx, dy int) (Coord, bool) {
	return NewCoord(c.X+dx, c.Y+dy, c.Bounds())
}

// IsAtBottom reports whether the coordinate is on the last row.
func (c Coord) IsAtBottom() bool { return c.Y == c.h-1 }

// Neighbors returns the in-bounds coordinates whose rounded euclidean
// distance from c is strictly less than radius, in row-major order.
func (c Coord) Neighbors(radius int) []Coord {
	if radius <= 0 {
		return nil
	}
	out := make([]Coord, 0, (2*radius+1)*(2*radius+1))
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			dist := math.Round(math.Sqrt(float64(dx*dx + dy*dy)))
			if int(dist) >= radius {
				continue
			}
			if n, ok := c.MoveBy(dx, dy); ok {
				out = append(out, n)
			}
		}
	}
	return out
}

// RandomNeighbors applies the offsets in a freshly shuffled order and keeps
// the in-bounds results. The caller's slice is not modified.
func (c Coord) RandomNeighbors(rng *RNG, offsets []Offset) []Coord {
	order := make([]Offset, len(offsets))
	copy(order, offsets)
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	out := make([]Coord, 0, len(order))
	for _, o := range order {
		if n, ok := c.MoveBy(o.DX, o.DY); ok {
			out = append(out, n)
		}
	}
	return out
}
