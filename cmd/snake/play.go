package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snake-tui/internal/config"
	"github.com/vovakirdan/snake-tui/internal/games/snake"
	"github.com/vovakirdan/snake-tui/internal/platform/tui"
	"github.com/vovakirdan/snake-tui/internal/spectate"
	"github.com/vovakirdan/snake-tui/internal/storage"
)

var (
	flagRecord   string
	flagSpectate string
	flagNoDB     bool
	flagMenu     bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play snake in this terminal",
	Long: `Start a game of snake.

Controls:
  Arrows/WASD/HJKL - Steer
  P/Esc            - Pause
  R                - Restart (after game over)
  ?                - Toggle help
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slower start, higher speed floor
  normal - The configured pace
  hard   - Faster start, speeds up twice as quickly
  fixed  - No speed-up

Examples:
  snake play
  snake play --difficulty hard
  snake play --seed 42 --record ./runs
  snake play --spectate :8089
  snake play --menu`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Directory to write replays to (overrides config)")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a websocket spectator feed on this address")
	playCmd.Flags().BoolVar(&flagNoDB, "no-db", false, "Do not read or write the scores database")
	playCmd.Flags().BoolVar(&flagMenu, "menu", false, "Pick the difficulty from a menu before playing")
}

func runPlay(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cmd.Flags().Changed("record") {
		cfg.Replay.Dir = flagRecord
	}
	if cmd.Flags().Changed("spectate") {
		cfg.Spectate.Address = flagSpectate
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	if flagMenu {
		preset, ok, menuErr := tui.RunMenu(cfg.BasePace(), cfg.Difficulty, width, height)
		if menuErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", menuErr)
			os.Exit(1)
		}
		if !ok {
			return
		}
		cfg.Difficulty = preset
	}

	logger, logFile, err := newLogger(cfg, "snake", true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	session := tui.Session{
		Options:   cfg.Options(),
		FPS:       cfg.FPS,
		ReplayDir: config.ExpandHome(cfg.Replay.Dir),
		Logger:    logger,
	}

	if !flagNoDB {
		store, openErr := storage.Open(cfg.Storage.DBPath)
		if openErr != nil {
			logger.Warn("could not open scores database", "err", openErr)
		} else {
			defer store.Close()
			session.Scores = store
			session.Keeper = storage.NewKeeper(store, storage.DefaultBestKey, logger)
		}
	}
	if session.Keeper == nil {
		session.Keeper = &snake.MemoryBest{}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Spectate.Address != "" {
		hub := spectate.NewHub(logger)
		session.Spectate = hub
		go func() {
			if serveErr := spectate.Serve(ctx, cfg.Spectate.Address, hub); serveErr != nil {
				logger.Error("spectator feed stopped", "err", serveErr)
			}
		}()
	}

	logger.Info("session started", "grid", fmt.Sprintf("%dx%d", cfg.Grid.Width, cfg.Grid.Height),
		"difficulty", cfg.Difficulty, "seed", cfg.Seed)

	if err := tui.Run(session, width, height); err != nil {
		logger.Error("session failed", "err", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("session ended")
}
