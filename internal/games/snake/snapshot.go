package snake

import "time"

// Snapshot is a read-only copy of everything a renderer needs for one frame.
type Snapshot struct {
	Round    int
	Tick     uint64
	Width    int
	Height   int
	Segments []Cell // Head first
	Dir      Direction
	Food     Cell
	Score    int
	Best     int
	Interval time.Duration
	State    State
}

// Snapshot captures the current state. The segment slice is a copy.
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		Round:    s.round,
		Tick:     s.ticks,
		Width:    s.opts.Width,
		Height:   s.opts.Height,
		Segments: s.creature.Segments(),
		Dir:      s.creature.Direction(),
		Food:     s.food.Pos,
		Score:    s.score,
		Best:     s.best,
		Interval: s.interval,
		State:    s.state,
	}
}

// Head returns the head segment.
func (s Snapshot) Head() Cell {
	if len(s.Segments) == 0 {
		return Cell{}
	}
	return s.Segments[0]
}

// Len returns the creature length.
func (s Snapshot) Len() int {
	return len(s.Segments)
}

// Over reports whether the snapshot was taken after the game ended.
func (s Snapshot) Over() bool {
	return s.State == StateOver
}
