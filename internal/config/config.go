// Package config provides YAML-based configuration loading for the snake
// game: grid size, tick pace, storage paths and the servers.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vovakirdan/snake-tui/internal/games/snake"
)

// ErrInvalid is returned by Validate for unusable settings.
var ErrInvalid = errors.New("invalid config")

// MinGridSize is the smallest playable grid edge.
const MinGridSize = 5

// Config contains all configuration for the game and its surroundings.
type Config struct {
	Grid       GridConfig       `yaml:"grid"`
	Pace       PaceConfig       `yaml:"pace"`
	Difficulty DifficultyPreset `yaml:"difficulty"`
	FPS        int              `yaml:"fps"`
	Seed       int64            `yaml:"seed"`
	Storage    StorageConfig    `yaml:"storage"`
	Replay     ReplayConfig     `yaml:"replay"`
	Log        LogConfig        `yaml:"log"`
	SSH        SSHConfig        `yaml:"ssh"`
	Spectate   SpectateConfig   `yaml:"spectate"`
}

// GridConfig defines the playfield size in cells.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PaceConfig defines the tick interval schedule in milliseconds.
type PaceConfig struct {
	BaseMS       int `yaml:"base_ms"`
	FloorMS      int `yaml:"floor_ms"`
	StepMS       int `yaml:"step_ms"`
	ScorePerStep int `yaml:"score_per_step"`
}

// StorageConfig locates the score database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// ReplayConfig controls run recording.
type ReplayConfig struct {
	Dir string `yaml:"dir"` // Empty disables recording
}

// LogConfig controls the file logger.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// SSHConfig configures the SSH server.
type SSHConfig struct {
	Address            string `yaml:"address"`
	HostKeyPath        string `yaml:"host_key_path"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// SpectateConfig configures the websocket spectator feed.
type SpectateConfig struct {
	Address string `yaml:"address"` // Empty disables the feed
}

// BasePace converts the millisecond schedule into a snake.Pace, before any
// difficulty preset.
func (c Config) BasePace() snake.Pace {
	return snake.Pace{
		Base:         time.Duration(c.Pace.BaseMS) * time.Millisecond,
		Floor:        time.Duration(c.Pace.FloorMS) * time.Millisecond,
		Step:         time.Duration(c.Pace.StepMS) * time.Millisecond,
		ScorePerStep: c.Pace.ScorePerStep,
	}
}

// SnakePace returns the schedule with the difficulty preset applied.
func (c Config) SnakePace() snake.Pace {
	return ApplyPreset(c.BasePace(), c.Difficulty)
}

// Options returns the simulation options for this config.
func (c Config) Options() snake.Options {
	return snake.Options{
		Width:  c.Grid.Width,
		Height: c.Grid.Height,
		Pace:   c.SnakePace(),
		Seed:   c.Seed,
	}
}

// IdleTimeout returns the SSH idle timeout as a duration.
func (c Config) IdleTimeout() time.Duration {
	return time.Duration(c.SSH.IdleTimeoutMinutes) * time.Minute
}

// Validate reports the first unusable setting, wrapping ErrInvalid.
func (c Config) Validate() error {
	if c.Grid.Width < MinGridSize || c.Grid.Height < MinGridSize {
		return fmt.Errorf("%w: grid %dx%d is smaller than %dx%d",
			ErrInvalid, c.Grid.Width, c.Grid.Height, MinGridSize, MinGridSize)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.FPS)
	}
	if !c.Difficulty.Valid() {
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalid, c.Difficulty)
	}
	if err := c.SnakePace().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
