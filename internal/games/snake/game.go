package snake

import (
	"math/rand"
	"time"
)

// FoodReward is the score gained per food eaten.
const FoodReward = 10

// State is the simulation's lifecycle state.
type State string

const (
	StateRunning State = "running"
	StateOver    State = "game_over"
)

// Options configures a Simulation.
type Options struct {
	Width  int   // Grid width in cells
	Height int   // Grid height in cells
	Pace   Pace  // Tick interval schedule
	Seed   int64 // RNG seed for food placement
}

// DefaultOptions returns a 21×16 grid with the default pace.
func DefaultOptions() Options {
	return Options{
		Width:  21,
		Height: 16,
		Pace:   DefaultPace(),
	}
}

// TickResult reports what happened during one Tick.
type TickResult struct {
	Head    Cell // Head position after the tick
	Ate     bool // Food was consumed this tick
	Over    bool // The simulation is over
	NewBest bool // This tick ended the game with a new best score
}

// Simulation owns the creature, the food, the score and the game-over flag.
// It is not safe for concurrent use; a single driver calls Tick,
// ChangeDirection and Restart, each of which completes before returning.
type Simulation struct {
	opts     Options
	rng      *rand.Rand
	keeper   BestScoreKeeper
	creature *Creature
	food     Food
	score    int
	best     int
	interval time.Duration
	state    State
	ticks    uint64 // ticks in the current round
	round    int
}

// New creates a running simulation. The best score is loaded from keeper
// once; a nil keeper keeps it in memory only.
func New(opts Options, keeper BestScoreKeeper) *Simulation {
	if keeper == nil {
		keeper = &MemoryBest{}
	}
	s := &Simulation{
		opts:   opts,
		rng:    rand.New(rand.NewSource(opts.Seed)),
		keeper: keeper,
		best:   keeper.LoadBestScore(),
	}
	s.Restart()
	return s
}

// Restart starts a new round: fresh creature and food, score 0, base
// interval, running. Legal in any state.
func (s *Simulation) Restart() {
	s.creature = NewCreature(s.opts.Width, s.opts.Height)
	s.food = PlaceFood(s.rng, s.opts.Width, s.opts.Height, s.creature)
	s.score = 0
	s.interval = s.opts.Pace.Interval(0)
	s.state = StateRunning
	s.ticks = 0
	s.round++
}

// ChangeDirection buffers a direction request for the next tick.
// Requests are ignored once the game is over.
func (s *Simulation) ChangeDirection(d Direction) {
	if s.state == StateOver {
		return
	}
	s.creature.ChangeDirection(d)
}

// Tick advances the simulation one step. Food is checked before
// collisions; growth from eating shows up on the following tick.
func (s *Simulation) Tick() TickResult {
	if s.state == StateOver {
		return TickResult{Head: s.creature.Head(), Over: true}
	}

	s.ticks++
	head := s.creature.Advance()
	result := TickResult{Head: head}

	if head == s.food.Pos {
		s.creature.MarkGrowth()
		s.food = PlaceFood(s.rng, s.opts.Width, s.opts.Height, s.creature)
		s.score += FoodReward
		s.interval = s.opts.Pace.Interval(s.score)
		result.Ate = true
	}

	if s.creature.CollidesWithWalls(s.opts.Width, s.opts.Height) || s.creature.HeadCollidesWithBody() {
		s.state = StateOver
		result.Over = true
		if s.score > s.best {
			s.best = s.score
			s.keeper.SaveBestScore(s.score)
			result.NewBest = true
		}
	}

	return result
}

// Score returns the current round's score.
func (s *Simulation) Score() int {
	return s.score
}

// Best returns the best score seen, including earlier sessions.
func (s *Simulation) Best() int {
	return s.best
}

// IsOver reports whether the current round has ended.
func (s *Simulation) IsOver() bool {
	return s.state == StateOver
}

// State returns the lifecycle state.
func (s *Simulation) State() State {
	return s.state
}

// Interval returns the delay before the next tick should run.
func (s *Simulation) Interval() time.Duration {
	return s.interval
}

// Round returns the 1-based round number; each Restart increments it.
func (s *Simulation) Round() int {
	return s.round
}

// Options returns the options the simulation was created with.
func (s *Simulation) Options() Options {
	return s.opts
}
