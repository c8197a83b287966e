package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/platform/desktop"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var windowCmd = &cobra.Command{
	Use:   "window [mode]",
	Short: "Play a mode in a desktop window",
	Long: `Open a desktop window and play the given mode (default: platformer).

The window sees real key releases, so movement is exact, and the mouse
aims shots.

Examples:
  platformer window
  platformer window platformer_arena --fps 120`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWindow,
}

func runWindow(_ *cobra.Command, args []string) {
	gameID := modeArg(args)

	g, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	game, ok := g.(*platformer.Game)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: mode %q cannot run in a window\n", gameID)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		log.Warn("could not open scores database", "error", err)
		store = nil
	}

	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	runErr := desktop.Run(game, store, cfg, log.Default())

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
