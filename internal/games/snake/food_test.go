package snake

import (
	"math/rand"
	"testing"
)

func TestFoodSpawnValidity(t *testing.T) {
	rng := rand.New(rand.NewSource(999))
	c := NewCreature(10, 10)
	for i := 0; i < 6; i++ {
		c.MarkGrowth()
		c.Advance()
	}

	for i := 0; i < 500; i++ {
		f := PlaceFood(rng, 10, 10, c)

		if c.Occupies(f.Pos) {
			t.Fatalf("Food spawned on snake at (%d, %d)", f.Pos.X, f.Pos.Y)
		}
		if !f.Pos.In(10, 10) {
			t.Fatalf("Food spawned out of bounds at (%d, %d)", f.Pos.X, f.Pos.Y)
		}
	}
}

func TestPlaceFoodFindsLastFreeCell(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	occupied := NewCellSet()
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if x == 2 && y == 1 {
				continue
			}
			occupied[Cell{x, y}] = struct{}{}
		}
	}

	for i := 0; i < 20; i++ {
		f := PlaceFood(rng, 3, 3, occupied)
		if f.Pos != (Cell{2, 1}) {
			t.Fatalf("PlaceFood() = %v, expected the only free cell {2 1}", f.Pos)
		}
	}
}

func TestPlaceFoodDeterministic(t *testing.T) {
	a := PlaceFood(rand.New(rand.NewSource(42)), 21, 16, nil)
	b := PlaceFood(rand.New(rand.NewSource(42)), 21, 16, nil)
	if a != b {
		t.Errorf("same seed gave %v and %v", a.Pos, b.Pos)
	}
}

func TestCellSetOccupies(t *testing.T) {
	s := NewCellSet(Cell{1, 2}, Cell{3, 4})
	if !s.Occupies(Cell{1, 2}) || !s.Occupies(Cell{3, 4}) {
		t.Error("CellSet should contain its members")
	}
	if s.Occupies(Cell{2, 1}) {
		t.Error("CellSet should not contain non-members")
	}
}
