package core

import (
	"fmt"
	"iter"
)

// Cell is a single grid slot holding at most one occupant. Cells stay at
// their coordinate for the lifetime of the grid; only occupants move.
type Cell[T any] struct {
	coord    Coord
	value    T
	occupied bool
}

// Coord returns the position owning this cell.
func (c *Cell[T]) Coord() Coord { return c.coord }

// IsEmpty reports whether the cell has no occupant.
func (c *Cell[T]) IsEmpty() bool { return !c.occupied }

// Value returns the occupant and whether there is one.
func (c *Cell[T]) Value() (T, bool) { return c.value, c.occupied }

// Occupant returns a pointer to the occupant for in-place mutation, or nil
// when the cell is empty.
func (c *Cell[T]) Occupant() *T {
	if !c.occupied {
		return nil
	}
	return &c.value
}

// Set replaces the occupant.
func (c *Cell[T]) Set(v T) {
	c.value = v
	c.occupied = true
}

// Clear empties the cell.
func (c *Cell[T]) Clear() {
	var zero T
	c.value = zero
	c.occupied = false
}

// Grid stores a fixed-size 2D grid of cells in row-major order.
type Grid[T any] struct {
	size  Size
	cells []Cell[T]
}

// NewGrid allocates an empty grid with the given dimensions.
func NewGrid[T any](w, h int) *Grid[T] {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	g := &Grid[T]{size: Size{W: w, H: h}, cells: make([]Cell[T], w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.cells[y*w+x].coord = Coord{X: x, Y: y, w: w, h: h}
		}
	}
	return g
}

// Size returns the grid dimensions.
func (g *Grid[T]) Size() Size { return g.size }

// Len returns the number of cells.
func (g *Grid[T]) Len() int { return len(g.cells) }

// Coord validates (x, y) against the grid dimensions.
func (g *Grid[T]) Coord(x, y int) (Coord, bool) { return NewCoord(x, y, g.size) }

// index maps a coordinate to its slice offset. A coordinate validated for
// different dimensions means the caller broke the grid contract.
func (g *Grid[T]) index(c Coord) int {
	if c.w != g.size.W || c.h != g.size.H {
		panic(fmt.Sprintf("core: coordinate (%d,%d) built for %dx%d used on %dx%d grid",
			c.X, c.Y, c.w, c.h, g.size.W, g.size.H))
	}
	return c.Y*g.size.W + c.X
}

// Get returns the cell at c.
func (g *Grid[T]) Get(c Coord) *Cell[T] { return &g.cells[g.index(c)] }

// Value returns the occupant at c and whether there is one.
func (g *Grid[T]) Value(c Coord) (T, bool) { return g.Get(c).Value() }

// IsEmpty reports whether the cell at c has no occupant.
func (g *Grid[T]) IsEmpty(c Coord) bool { return g.Get(c).IsEmpty() }

// Set places v at c, replacing any occupant.
func (g *Grid[T]) Set(c Coord, v T) { g.Get(c).Set(v) }

// Clear removes the occupant at c.
func (g *Grid[T]) Clear(c Coord) { g.Get(c).Clear() }

// Reset empties every cell.
func (g *Grid[T]) Reset() {
	for i := range g.cells {
		g.cells[i].Clear()
	}
}

// Swap exchanges the occupants of a and b. Both offsets are resolved first
// and the exchange is a single assignment on the backing slice.
func (g *Grid[T]) Swap(a, b Coord) {
	i, j := g.index(a), g.index(b)
	if i == j {
		return
	}
	g.cells[i].value, g.cells[j].value = g.cells[j].value, g.cells[i].value
	g.cells[i].occupied, g.cells[j].occupied = g.cells[j].occupied, g.cells[i].occupied
}

// All yields every cell in row-major order.
func (g *Grid[T]) All() iter.Seq2[Coord, *Cell[T]] {
	return func(yield func(Coord, *Cell[T]) bool) {
		for i := range g.cells {
			if !yield(g.cells[i].coord, &g.cells[i]) {
				return
			}
		}
	}
}

// Occupied yields the coordinate and occupant of every non-empty cell in
// row-major order.
func (g *Grid[T]) Occupied() iter.Seq2[Coord, T] {
	return func(yield func(Coord, T) bool) {
		for i := range g.cells {
			if !g.cells[i].occupied {
				continue
			}
			if !yield(g.cells[i].coord, g.cells[i].value) {
				return
			}
		}
	}
}
