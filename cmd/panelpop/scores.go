package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/panelpop/panelpop/internal/registry"
	"github.com/panelpop/panelpop/internal/storage"
	"github.com/panelpop/panelpop/internal/versus"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show high scores for a mode",
	Long: `Display the top 10 high scores for the specified mode.
For versus, shows the match history against the CPU instead.

Examples:
  panelpop scores solo
  panelpop scores versus`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	modeID := args[0]

	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'panelpop list' to see available modes.")
		os.Exit(1)
	}

	// Get mode title
	game, err := registry.Create(modeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if modeID == "versus" {
		printVersusHistory(store, title)
		return
	}

	scores, err := store.TopScores(modeID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'panelpop play %s' to set the first high score!\n", modeID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	fmt.Println()
	if highScore, err := store.HighScore(modeID); err == nil {
		fmt.Printf("Best: %d\n", highScore)
	}
}

func printVersusHistory(store *storage.Store, title string) {
	matches, err := store.RecentVersusMatches(10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving match history: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Match History - %s\n", title)
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches played yet.")
		fmt.Println()
		fmt.Println("Play 'panelpop play versus' to take on the CPU!")
		return
	}

	fmt.Printf("  %-7s  %-7s  %-7s  %-10s  %s\n", "Result", "You", "CPU", "Difficulty", "Date")
	fmt.Printf("  %-7s  %-7s  %-7s  %-10s  %s\n", "------", "---", "---", "----------", "----")

	for _, m := range matches {
		outcome := "DRAW"
		switch versus.PlayerID(m.Winner) {
		case versus.Player1:
			outcome = "WIN"
		case versus.Player2:
			outcome = "LOSS"
		}
		dateStr := m.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-7s  %-7d  %-7d  %-10s  %s\n", outcome, m.Score1, m.Score2, m.Difficulty, dateStr)
	}

	fmt.Println()
	if wins, losses, draws, err := store.VersusRecord(); err == nil {
		fmt.Printf("Record: %d wins, %d losses, %d draws\n", wins, losses, draws)
	}
}
