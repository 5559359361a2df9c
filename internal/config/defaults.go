package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration. It matches the embedded
// defaults/snake.yaml and is used when that file cannot be parsed.
func Default() Config {
	return Config{
		Grid: GridConfig{
			Width:  21,
			Height: 16,
		},
		Pace: PaceConfig{
			BaseMS:       150,
			FloorMS:      60,
			StepMS:       5,
			ScorePerStep: 50,
		},
		Difficulty: DifficultyNormal,
		FPS:        60,
		Storage: StorageConfig{
			DBPath: "~/.snake/scores.db",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.snake/snake.log",
		},
		SSH: SSHConfig{
			Address:            ":23234",
			HostKeyPath:        "~/.snake/ssh_host_ed25519",
			IdleTimeoutMinutes: 30,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
