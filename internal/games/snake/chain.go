package snake

// chain is a double-ended ring buffer of cells. Index 0 is the head.
// Pushing to the front and popping from the back are O(1); the buffer
// doubles when full.
type chain struct {
	buf   []Cell
	start int // buffer index of the head
	n     int
}

func newChain(capacity int) *chain {
	if capacity < 4 {
		capacity = 4
	}
	return &chain{buf: make([]Cell, capacity)}
}

// Len returns the number of cells in the chain.
func (c *chain) Len() int {
	return c.n
}

// At returns the cell at index i, counted from the head.
func (c *chain) At(i int) Cell {
	if i < 0 || i >= c.n {
		panic("snake: chain index out of range")
	}
	return c.buf[(c.start+i)%len(c.buf)]
}

// PushFront inserts a cell before the current head.
func (c *chain) PushFront(p Cell) {
	if c.n == len(c.buf) {
		c.grow()
	}
	c.start = (c.start - 1 + len(c.buf)) % len(c.buf)
	c.buf[c.start] = p
	c.n++
}

// PushBack appends a cell after the current tail.
func (c *chain) PushBack(p Cell) {
	if c.n == len(c.buf) {
		c.grow()
	}
	c.buf[(c.start+c.n)%len(c.buf)] = p
	c.n++
}

// PopBack removes and returns the tail cell.
func (c *chain) PopBack() Cell {
	if c.n == 0 {
		panic("snake: pop from empty chain")
	}
	c.n--
	return c.buf[(c.start+c.n)%len(c.buf)]
}

// Slice copies the chain into a new slice, head first.
func (c *chain) Slice() []Cell {
	out := make([]Cell, c.n)
	for i := range out {
		out[i] = c.At(i)
	}
	return out
}

func (c *chain) grow() {
	buf := make([]Cell, len(c.buf)*2)
	for i := 0; i < c.n; i++ {
		buf[i] = c.At(i)
	}
	c.buf = buf
	c.start = 0
}
