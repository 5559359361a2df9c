package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snake-tui/internal/platform/tui"
	"github.com/vovakirdan/snake-tui/internal/storage"
)

var (
	flagScoresTUI   bool
	flagScoresClear bool
	flagScoresLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top scores, the best score and overall statistics.

Examples:
  snake scores
  snake scores --limit 25
  snake scores --tui
  snake scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded scores")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
}

func runScores(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagScoresClear:
		if err := store.ClearScores(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Scores cleared.")
		return

	case flagScoresTUI:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	scores, err := store.TopScores(flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores - Snake")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-6s  %-6s  %-6s  %-12s  %s\n", "Rank", "Score", "Length", "Ticks", "Player", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %-6s  %-12s  %s\n", "----", "-----", "------", "-----", "------", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-6d  %-6d  %-6d  %-12s  %s\n",
			i+1, e.Score, e.Length, e.Ticks, e.Player, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	best, err := store.BestScore(storage.DefaultBestKey)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best (local): %d\n", best)
	}
	if stats, err := store.Stats(); err == nil {
		fmt.Printf("Games: %d  Average: %.1f  Longest snake: %d\n", stats.Games, stats.AvgScore, stats.MaxLength)
	}
}
