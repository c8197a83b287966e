package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode in the terminal",
	Long: `Start playing the given mode (default: platformer) in the terminal.

Terminals only report key presses, so walking keeps going for a short
moment after the last key repeat. Click anywhere to shoot in that
direction if your terminal reports mouse clicks.

Difficulty options:
  easy   - 5 lives, longer invulnerability, slower enemy respawns
  normal - Tuning as configured
  hard   - 2 lives, more and faster respawning enemies, costly dashes

Examples:
  platformer play
  platformer play platformer_arena
  platformer play --difficulty easy
  platformer play --config ./my-tuning.yaml --levels ./my-levels.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := modeArg(args)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, terminalConfig())

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
