package snake

import "math/rand"

// Food is a single edible cell. It is replaced, never moved.
type Food struct {
	Pos Cell
}

// Occupancy answers whether a cell is taken.
type Occupancy interface {
	Occupies(Cell) bool
}

// CellSet is an Occupancy backed by a set of cells.
type CellSet map[Cell]struct{}

// NewCellSet builds a set from the given cells.
func NewCellSet(cells ...Cell) CellSet {
	s := make(CellSet, len(cells))
	for _, c := range cells {
		s[c] = struct{}{}
	}
	return s
}

// Occupies implements Occupancy.
func (s CellSet) Occupies(c Cell) bool {
	_, ok := s[c]
	return ok
}

// PlaceFood draws cells uniformly from the width×height grid until one is
// not occupied. There is no retry cap: on a fully occupied grid this never
// returns. Playable grids are far larger than any creature gets.
func PlaceFood(rng *rand.Rand, width, height int, occupied Occupancy) Food {
	for {
		p := Cell{X: rng.Intn(width), Y: rng.Intn(height)}
		if occupied == nil || !occupied.Occupies(p) {
			return Food{Pos: p}
		}
	}
}
