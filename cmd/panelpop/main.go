// panelpop is a terminal falling-block puzzle game in the Panel de Pon
// tradition: swap tiles to match three or more while the stack rises, chain
// cascades for big scores, and bury the CPU opponent under garbage blocks.
//
// Usage:
//
//	panelpop list              - List available game modes
//	panelpop play <mode>       - Play a mode (solo, versus)
//	panelpop menu              - Interactive mode picker
//	panelpop serve             - Start SSH server for remote play
//	panelpop scores <mode>     - Show high scores or versus history
//	panelpop sim               - Run a headless CPU-vs-CPU match
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.panelpop/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import game modes to register them
	_ "github.com/panelpop/panelpop/internal/games/panelpop"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "panelpop",
	Short: "Panel Pop - tile-matching puzzle action in your terminal",
	Long: `Panel Pop is a terminal puzzle game. Tiles rise from the bottom of
the board; swap adjacent pairs to line up three or more of a kind, chain
cascades for combo scores, and in versus mode send garbage blocks to a
CPU opponent.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View high scores and versus history
  sim      - Headless CPU-vs-CPU simulation

Examples:
  panelpop play solo
  panelpop play versus --difficulty hard
  panelpop menu
  panelpop serve --ssh :2222
  panelpop scores solo`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.panelpop/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}
