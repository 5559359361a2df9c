// snake is a terminal snake game with local play, an SSH server, score
// history and replays.
//
// Usage:
//
//	snake play               - Play in this terminal
//	snake serve              - Start SSH server for remote play
//	snake scores             - Show high scores
//	snake replay <file>      - Summarize or play back a recorded run
//	snake config             - Print the effective configuration
//
// Global flags:
//
//	--config <path>       - Config file (default search: ~/.snake, ./configs)
//	--db <path>           - Scores database path
//	--seed <value>        - RNG seed for reproducible food placement
//	--fps <rate>          - Render frame rate
//	--difficulty <name>   - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-tui/internal/config"
)

var (
	// Global flags
	flagConfig     string
	flagDBPath     string
	flagSeed       int64
	flagFPS        int
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game in your terminal",
	Long: `Snake is a terminal snake game. Steer the snake to the food, grow,
and avoid the walls and your own tail.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  scores   - View high scores
  replay   - Inspect a recorded run
  config   - Print the effective configuration

Examples:
  snake play
  snake play --difficulty hard --record ./runs
  snake serve
  snake scores --tui`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Render frame rate (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the config file and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Storage.DBPath = flagDBPath
	}
	if flags.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if flags.Changed("fps") {
		cfg.FPS = flagFPS
	}
	if flags.Changed("difficulty") {
		cfg.Difficulty = config.DifficultyPreset(flagDifficulty)
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLogger builds the charm logger. With toFile the output goes to the
// configured log file, since the TUI owns the terminal.
func newLogger(cfg config.Config, prefix string, toFile bool) (*log.Logger, io.Closer, error) {
	var w io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)

	if toFile {
		path := config.ExpandHome(cfg.Log.File)
		if path == "" {
			path = filepath.Join(config.DataDir(), "snake.log")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})

	if cfg.Log.Level != "" {
		level, err := log.ParseLevel(cfg.Log.Level)
		if err != nil {
			closer.Close()
			return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
		}
		logger.SetLevel(level)
	}

	return logger, closer, nil
}
