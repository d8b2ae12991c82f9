package ui

import "sander/internal/core"

// brushOutline returns the edge cells of the brush disc centred at (x, y):
// cells of the disc with at least one 4-neighbour outside it.
func brushOutline(size core.Size, x, y, radius int) []core.Coord {
	center, ok := core.NewCoord(x, y, size)
	if !ok {
		return nil
	}
	disc := center.Neighbors(radius)
	inside := make(map[[2]int]struct{}, len(disc))
	for _, c := range disc {
		inside[[2]int{c.X, c.Y}] = struct{}{}
	}
	var edge []core.Coord
	for _, c := range disc {
		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			if _, ok := inside[[2]int{c.X + d[0], c.Y + d[1]}]; !ok {
				edge = append(edge, c)
				break
			}
		}
	}
	return edge
}
