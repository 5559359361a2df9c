package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-tui/internal/platform/tui"
	"github.com/vovakirdan/snake-tui/internal/replay"
)

var flagReplayPlay bool

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Summarize or play back a recorded run",
	Long: `Read a replay written by 'snake play --record <dir>'.

Without flags a one-line summary is printed. With --play the run is
shown in the terminal at its original speed.

Examples:
  snake replay ./runs/run_1b9d6bcd.parquet
  snake replay ./runs/run_1b9d6bcd.parquet --play`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplayPlay, "play", false, "Play the run back in the terminal")
}

func runReplay(_ *cobra.Command, args []string) {
	frames, err := replay.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(frames) == 0 {
		fmt.Fprintln(os.Stderr, "Error: replay has no frames")
		os.Exit(1)
	}

	if flagReplayPlay {
		if err := tui.RunPlayback(frames); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println(replay.Summarize(frames))
}
