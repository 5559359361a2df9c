package snake

import (
	"errors"
	"time"
)

// Pace maps score to the interval between simulation ticks. The interval
// shrinks by Step for every ScorePerStep points and never drops below Floor.
type Pace struct {
	Base         time.Duration
	Floor        time.Duration
	Step         time.Duration
	ScorePerStep int
}

// DefaultPace starts at 150ms and speeds up 5ms per 50 points down to 60ms.
func DefaultPace() Pace {
	return Pace{
		Base:         150 * time.Millisecond,
		Floor:        60 * time.Millisecond,
		Step:         5 * time.Millisecond,
		ScorePerStep: 50,
	}
}

// Interval returns max(Floor, Base - (score/ScorePerStep)*Step).
func (p Pace) Interval(score int) time.Duration {
	if score < 0 || p.ScorePerStep <= 0 {
		return p.Base
	}
	steps := score / p.ScorePerStep
	return max(p.Floor, p.Base-time.Duration(steps)*p.Step)
}

// Validate checks that the schedule is usable.
func (p Pace) Validate() error {
	switch {
	case p.Base <= 0 || p.Floor <= 0:
		return errors.New("pace: base and floor must be positive")
	case p.Floor > p.Base:
		return errors.New("pace: floor exceeds base")
	case p.Step < 0:
		return errors.New("pace: step must not be negative")
	case p.ScorePerStep <= 0:
		return errors.New("pace: score_per_step must be positive")
	}
	return nil
}
