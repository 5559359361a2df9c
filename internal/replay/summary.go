package replay

import (
	"fmt"
	"time"
)

// Summary describes a recorded run.
type Summary struct {
	RunID       string
	Round       int
	Ticks       int
	FinalScore  int
	FinalLength int
	FoodEaten   int
	Turns       int // Direction changes
	Over        bool
	Duration    time.Duration // Sum of tick intervals
}

// Summarize walks frames in order. Score increases count as food eaten.
func Summarize(frames []Frame) Summary {
	if len(frames) == 0 {
		return Summary{}
	}

	first, last := frames[0], frames[len(frames)-1]
	s := Summary{
		RunID:       first.RunID,
		Round:       int(first.Round),
		Ticks:       len(frames),
		FinalScore:  int(last.Score),
		FinalLength: len(last.BodyX),
		Over:        last.Over,
	}

	prev := first
	for i, f := range frames {
		s.Duration += time.Duration(f.IntervalMS) * time.Millisecond
		if i == 0 {
			continue
		}
		if f.Score > prev.Score {
			s.FoodEaten++
		}
		if f.Dir != prev.Dir {
			s.Turns++
		}
		prev = f
	}
	if first.Score > 0 {
		s.FoodEaten++
	}
	return s
}

func (s Summary) String() string {
	status := "running"
	if s.Over {
		status = "game over"
	}
	return fmt.Sprintf("run %s round %d: %d ticks, score %d, length %d, %d food, %d turns, %s (%s)",
		s.RunID, s.Round, s.Ticks, s.FinalScore, s.FinalLength, s.FoodEaten, s.Turns,
		s.Duration.Round(time.Millisecond), status)
}
