// Package snake implements the deterministic snake simulation: the creature's
// segment chain, its movement and growth rule, collision detection, food
// placement and the tick driver. It performs no rendering and no I/O; the
// platform layer reads Snapshots and feeds directions and ticks.
package snake

const (
	// InitialLength is the number of segments a fresh creature starts with.
	InitialLength = 3

	// SelfCheckFrom is the first segment index the head is tested against.
	// Fixed, tied to InitialLength: at minimum length the head touches its
	// own neck, so segments 1..3 never count as a self collision.
	SelfCheckFrom = 4
)

// Cell is a grid coordinate. Valid cells satisfy 0 <= X < width and
// 0 <= Y < height; cells outside that range are legal intermediate state.
type Cell struct {
	X, Y int
}

// Add returns the cell shifted one step in direction d.
func (c Cell) Add(d Direction) Cell {
	dx, dy := d.Delta()
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// In reports whether the cell lies inside a width×height grid.
func (c Cell) In(width, height int) bool {
	return c.X >= 0 && c.X < width && c.Y >= 0 && c.Y < height
}

// Creature is the player-controlled chain of cells.
type Creature struct {
	body      *chain
	direction Direction
	pending   Direction // applied on the next Advance
	growing   bool      // keep the tail on the next Advance
}

// NewCreature places a creature of InitialLength segments at the grid center,
// heading right with the tail to the left of the head.
func NewCreature(width, height int) *Creature {
	cx, cy := width/2, height/2
	body := newChain(width * height / 4)
	for i := 0; i < InitialLength; i++ {
		body.PushBack(Cell{X: cx - i, Y: cy})
	}
	return &Creature{
		body:      body,
		direction: DirRight,
		pending:   DirRight,
	}
}

// newCreatureFrom builds a creature from explicit segments, head first.
func newCreatureFrom(segments []Cell, dir Direction) *Creature {
	body := newChain(len(segments) * 2)
	for _, s := range segments {
		body.PushBack(s)
	}
	return &Creature{body: body, direction: dir, pending: dir}
}

// ChangeDirection records d as the direction for the next Advance, unless d
// reverses the current direction. Rejected requests are dropped silently.
// The check is against the current direction, not the pending one.
func (c *Creature) ChangeDirection(d Direction) {
	if d == c.direction.Opposite() {
		return
	}
	c.pending = d
}

// Advance applies the pending direction and moves the head one cell.
// The tail is dropped unless MarkGrowth was called since the last Advance.
// No bounds clamping or wrapping happens here.
func (c *Creature) Advance() Cell {
	c.direction = c.pending
	head := c.Head().Add(c.direction)
	c.body.PushFront(head)

	if c.growing {
		c.growing = false
	} else {
		c.body.PopBack()
	}
	return head
}

// MarkGrowth makes the next Advance keep the tail segment.
func (c *Creature) MarkGrowth() {
	c.growing = true
}

// Growing reports whether the next Advance will grow the creature.
func (c *Creature) Growing() bool {
	return c.growing
}

// HeadCollidesWithBody reports whether the head shares a cell with any
// segment at index SelfCheckFrom or later.
func (c *Creature) HeadCollidesWithBody() bool {
	head := c.Head()
	for i := SelfCheckFrom; i < c.body.Len(); i++ {
		if c.body.At(i) == head {
			return true
		}
	}
	return false
}

// CollidesWithWalls reports whether the head lies outside the grid.
func (c *Creature) CollidesWithWalls(width, height int) bool {
	return !c.Head().In(width, height)
}

// Occupies reports whether any segment is at p.
func (c *Creature) Occupies(p Cell) bool {
	for i := 0; i < c.body.Len(); i++ {
		if c.body.At(i) == p {
			return true
		}
	}
	return false
}

// Head returns segment 0.
func (c *Creature) Head() Cell {
	return c.body.At(0)
}

// Len returns the number of segments.
func (c *Creature) Len() int {
	return c.body.Len()
}

// Direction returns the direction applied on the last Advance.
func (c *Creature) Direction() Direction {
	return c.direction
}

// Pending returns the direction the next Advance will apply.
func (c *Creature) Pending() Direction {
	return c.pending
}

// Segments returns a copy of the segments, head first.
func (c *Creature) Segments() []Cell {
	return c.body.Slice()
}
