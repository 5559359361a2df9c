package config

import (
	"time"

	"github.com/vovakirdan/snake-tui/internal/games/snake"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the accepted difficulty names in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// Valid reports whether p names a known preset. Empty means normal.
func (p DifficultyPreset) Valid() bool {
	switch p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return true
	}
	return false
}

// ApplyPreset adjusts a pace for a difficulty preset.
// Normal leaves the configured schedule untouched; fixed disables speed-up.
func ApplyPreset(p snake.Pace, preset DifficultyPreset) snake.Pace {
	switch preset {
	case DifficultyEasy:
		p.Base = scale(p.Base, 6, 5)
		p.Floor = scale(p.Floor, 3, 2)
		if p.Floor > p.Base {
			p.Floor = p.Base
		}
	case DifficultyHard:
		p.Base = scale(p.Base, 3, 4)
		p.Step *= 2
		if p.Floor > p.Base {
			p.Floor = p.Base
		}
	case DifficultyFixed:
		p.Step = 0
	}
	return p
}

func scale(d time.Duration, num, den int64) time.Duration {
	return d * time.Duration(num) / time.Duration(den)
}
