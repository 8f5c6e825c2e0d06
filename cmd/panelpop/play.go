package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/panelpop/panelpop/internal/config"
	"github.com/panelpop/panelpop/internal/core"
	panelpop "github.com/panelpop/panelpop/internal/games/panelpop"
	"github.com/panelpop/panelpop/internal/platform/tui"
	"github.com/panelpop/panelpop/internal/registry"
	"github.com/panelpop/panelpop/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a game mode",
	Long: `Start playing the specified mode.

Controls:
  Arrows/WASD    - Move cursor
  Space/Enter    - Swap the two tiles under the cursor
  X              - Raise the stack faster
  P              - Pause
  R              - Restart (after game over)
  B/Esc          - Back to menu (while paused or after game over)
  Q/Ctrl+C       - Quit

Difficulty presets tune the CPU opponent in versus mode:
  easy   - Slow reactions, frequent mistakes
  normal - Balanced play
  hard   - Fast, chain-hungry, aggressive

Examples:
  panelpop play solo
  panelpop play versus
  panelpop play versus --difficulty hard
  panelpop play solo --config ./my-rules.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "CPU difficulty preset: easy, normal, hard")
}

func runPlay(cmd *cobra.Command, args []string) {
	modeID := args[0]

	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'panelpop list' to see available modes.")
		os.Exit(1)
	}

	if flagDifficulty != "" && !config.ValidPreset(flagDifficulty) {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q (easy, normal, hard)\n", flagDifficulty)
		os.Exit(1)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Configure the game before creation
	panelpop.SetConfigPath(flagConfig)
	panelpop.SetDifficultyPreset(flagDifficulty)

	game, err := registry.Create(modeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		panelpop.SetResultSaver(store)
	}

	// Run the game
	runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
