package snake

import (
	"math/rand"
	"reflect"
	"testing"
	"time"
)

func newTestSim(t *testing.T, w, h int, keeper BestScoreKeeper) *Simulation {
	t.Helper()
	opts := DefaultOptions()
	opts.Width, opts.Height = w, h
	opts.Seed = 7
	return New(opts, keeper)
}

func TestNewSimulation(t *testing.T) {
	s := newTestSim(t, 10, 10, &MemoryBest{Score: 30})

	if s.State() != StateRunning {
		t.Errorf("State() = %v, expected %v", s.State(), StateRunning)
	}
	if s.Score() != 0 {
		t.Errorf("Score() = %d, expected 0", s.Score())
	}
	if s.Best() != 30 {
		t.Errorf("Best() = %d, expected 30 from keeper", s.Best())
	}
	if s.Interval() != 150*time.Millisecond {
		t.Errorf("Interval() = %v, expected 150ms", s.Interval())
	}
	if s.Round() != 1 {
		t.Errorf("Round() = %d, expected 1", s.Round())
	}
	if s.creature.Occupies(s.food.Pos) {
		t.Errorf("food %v placed on the creature", s.food.Pos)
	}
}

func TestTickMovesWithoutFood(t *testing.T) {
	s := newTestSim(t, 10, 10, nil)
	s.food = Food{Pos: Cell{0, 0}}

	res := s.Tick()

	if res.Head != (Cell{6, 5}) {
		t.Errorf("Head = %v, expected {6 5}", res.Head)
	}
	if res.Ate || res.Over {
		t.Errorf("TickResult = %+v, expected a plain move", res)
	}
	if s.creature.Len() != 3 {
		t.Errorf("Len() = %d, expected 3", s.creature.Len())
	}
	if s.Score() != 0 {
		t.Errorf("Score() = %d, expected 0", s.Score())
	}
}

func TestEatingDelaysGrowthOneTick(t *testing.T) {
	s := newTestSim(t, 10, 10, nil)
	s.food = Food{Pos: Cell{6, 5}}

	res := s.Tick()
	if !res.Ate {
		t.Fatal("expected food to be eaten")
	}
	if s.Score() != FoodReward {
		t.Errorf("Score() = %d, expected %d", s.Score(), FoodReward)
	}
	if s.creature.Len() != 3 {
		t.Errorf("Len() after eating = %d, expected 3", s.creature.Len())
	}
	if s.creature.Occupies(s.food.Pos) {
		t.Errorf("new food %v placed on the creature", s.food.Pos)
	}

	s.food = Food{Pos: Cell{0, 0}}
	s.Tick()
	if s.creature.Len() != 4 {
		t.Errorf("Len() one tick later = %d, expected 4", s.creature.Len())
	}

	s.Tick()
	if s.creature.Len() != 4 {
		t.Errorf("Len() two ticks later = %d, expected 4", s.creature.Len())
	}
}

func TestWallCollisionEndsGame(t *testing.T) {
	s := newTestSim(t, 10, 10, nil)
	s.creature = newCreatureFrom([]Cell{{0, 5}, {1, 5}, {2, 5}}, DirLeft)
	s.food = Food{Pos: Cell{9, 9}}

	res := s.Tick()

	if !res.Over || !s.IsOver() {
		t.Fatalf("expected game over after leaving the grid, got %+v", res)
	}
	if s.State() != StateOver {
		t.Errorf("State() = %v, expected %v", s.State(), StateOver)
	}
	if res.Head != (Cell{-1, 5}) {
		t.Errorf("Head = %v, expected {-1 5}", res.Head)
	}
}

func TestSelfCollisionEndsGame(t *testing.T) {
	s := newTestSim(t, 10, 10, nil)
	s.creature = newCreatureFrom([]Cell{{5, 5}, {4, 5}, {4, 6}, {5, 6}, {6, 6}, {6, 5}}, DirRight)
	s.food = Food{Pos: Cell{0, 0}}

	s.ChangeDirection(DirDown)
	res := s.Tick()

	if !res.Over {
		t.Errorf("expected self collision at %v", res.Head)
	}
}

func TestBestScoreSaving(t *testing.T) {
	tests := []struct {
		name      string
		prevBest  int
		score     int
		wantSaves int
		wantBest  int
		wantNew   bool
	}{
		{"new best", 0, 20, 1, 20, true},
		{"below best", 100, 20, 0, 100, false},
		{"equal to best", 20, 20, 0, 20, false},
		{"zero score", 0, 0, 0, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			keeper := &MemoryBest{Score: tc.prevBest}
			s := newTestSim(t, 10, 10, keeper)
			s.score = tc.score
			s.creature = newCreatureFrom([]Cell{{0, 5}, {1, 5}, {2, 5}}, DirLeft)
			s.food = Food{Pos: Cell{9, 9}}

			res := s.Tick()

			if keeper.Saves != tc.wantSaves {
				t.Errorf("SaveBestScore calls = %d, expected %d", keeper.Saves, tc.wantSaves)
			}
			if s.Best() != tc.wantBest {
				t.Errorf("Best() = %d, expected %d", s.Best(), tc.wantBest)
			}
			if keeper.Score != tc.wantBest {
				t.Errorf("keeper.Score = %d, expected %d", keeper.Score, tc.wantBest)
			}
			if res.NewBest != tc.wantNew {
				t.Errorf("NewBest = %v, expected %v", res.NewBest, tc.wantNew)
			}
		})
	}
}

func TestTickAfterOverIsNoop(t *testing.T) {
	keeper := &MemoryBest{}
	s := newTestSim(t, 10, 10, keeper)
	s.score = 40
	s.creature = newCreatureFrom([]Cell{{0, 5}, {1, 5}, {2, 5}}, DirLeft)
	s.food = Food{Pos: Cell{9, 9}}
	s.Tick()

	before := s.Snapshot()
	s.ChangeDirection(DirUp)
	res := s.Tick()
	after := s.Snapshot()

	if !res.Over {
		t.Error("Tick() after game over should report Over")
	}
	if !reflect.DeepEqual(before, after) {
		t.Errorf("state changed after game over:\nbefore %+v\nafter  %+v", before, after)
	}
	if s.creature.Pending() != DirLeft {
		t.Errorf("Pending() = %v, expected direction change to be ignored", s.creature.Pending())
	}
	if keeper.Saves != 1 {
		t.Errorf("SaveBestScore calls = %d, expected 1", keeper.Saves)
	}
}

func TestRestart(t *testing.T) {
	s := newTestSim(t, 10, 10, nil)
	s.score = 120
	s.interval = 90 * time.Millisecond
	s.creature = newCreatureFrom([]Cell{{0, 5}, {1, 5}, {2, 5}}, DirLeft)
	s.Tick()

	s.Restart()

	if s.State() != StateRunning {
		t.Errorf("State() = %v, expected %v", s.State(), StateRunning)
	}
	if s.Round() != 2 {
		t.Errorf("Round() = %d, expected 2", s.Round())
	}
	if s.Score() != 0 {
		t.Errorf("Score() = %d, expected 0", s.Score())
	}
	if s.Best() != 120 {
		t.Errorf("Best() = %d, expected 120 to survive restart", s.Best())
	}
	if s.Interval() != 150*time.Millisecond {
		t.Errorf("Interval() = %v, expected 150ms", s.Interval())
	}
	if s.creature.Head() != (Cell{5, 5}) || s.creature.Len() != InitialLength {
		t.Errorf("creature = %v, expected fresh creature at the center", s.creature.Segments())
	}
	if s.creature.Occupies(s.food.Pos) {
		t.Errorf("food %v placed on the creature", s.food.Pos)
	}
	if snap := s.Snapshot(); snap.Tick != 0 {
		t.Errorf("Snapshot().Tick = %d, expected 0", snap.Tick)
	}
}

func TestRestartWhileRunning(t *testing.T) {
	s := newTestSim(t, 10, 10, nil)
	s.Tick()
	s.Restart()
	if s.Round() != 2 || s.IsOver() {
		t.Errorf("Round() = %d, IsOver() = %v after restart while running", s.Round(), s.IsOver())
	}
}

func TestIntervalSpeedsUpWithScore(t *testing.T) {
	s := newTestSim(t, 20, 20, nil)
	s.score = 40
	s.food = Food{Pos: Cell{11, 10}}

	s.Tick()

	if s.Score() != 50 {
		t.Fatalf("Score() = %d, expected 50", s.Score())
	}
	if s.Interval() != 145*time.Millisecond {
		t.Errorf("Interval() = %v, expected 145ms", s.Interval())
	}
}

func TestScoreNeverDecreasesWithinRound(t *testing.T) {
	s := newTestSim(t, 12, 12, nil)
	rng := rand.New(rand.NewSource(3))
	dirs := []Direction{DirUp, DirDown, DirLeft, DirRight}

	for round := 0; round < 20; round++ {
		prev := s.Score()
		for i := 0; i < 500 && !s.IsOver(); i++ {
			s.ChangeDirection(dirs[rng.Intn(len(dirs))])
			s.Tick()
			if s.Score() < prev {
				t.Fatalf("Score() dropped from %d to %d", prev, s.Score())
			}
			if s.Score()%FoodReward != 0 {
				t.Fatalf("Score() = %d, expected a multiple of %d", s.Score(), FoodReward)
			}
			prev = s.Score()
		}
		s.Restart()
		if s.Score() != 0 {
			t.Fatalf("Score() after restart = %d, expected 0", s.Score())
		}
	}
}

func TestSimulationDeterministic(t *testing.T) {
	run := func() []Snapshot {
		opts := DefaultOptions()
		opts.Seed = 1234
		s := New(opts, nil)
		dirs := []Direction{DirUp, DirRight, DirDown, DirRight, DirUp, DirLeft}
		var out []Snapshot
		for i := 0; i < 60 && !s.IsOver(); i++ {
			if i%5 == 0 {
				s.ChangeDirection(dirs[(i/5)%len(dirs)])
			}
			s.Tick()
			out = append(out, s.Snapshot())
		}
		return out
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed and inputs produced different runs")
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	s := newTestSim(t, 10, 10, nil)
	snap := s.Snapshot()
	snap.Segments[0] = Cell{-5, -5}

	if s.creature.Head() == (Cell{-5, -5}) {
		t.Error("mutating a snapshot changed the simulation")
	}
	if snap.Len() != 3 || s.Snapshot().Head() != (Cell{5, 5}) {
		t.Errorf("Snapshot() = %+v, unexpected", s.Snapshot())
	}
}
