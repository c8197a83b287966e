// platformer is a side-scrolling action platformer for the terminal, a
// desktop window or SSH.
//
// Usage:
//
//	platformer                  - Mode picker, then play in the terminal
//	platformer list             - List available modes
//	platformer levels           - List or export the level pack
//	platformer play [mode]      - Play a mode in the terminal
//	platformer window [mode]    - Play a mode in a desktop window
//	platformer sim              - Run a headless autopilot simulation
//	platformer scores [mode]    - Show high scores
//	platformer serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.platformer/scores.db)
//	--config <path>       - Custom tuning YAML
//	--levels <path>       - Custom level file (.yaml, .json or .toml)
//	--difficulty <name>   - Difficulty preset: easy, normal, hard
//	--verbose             - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagLevels     string
	flagDifficulty string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "Side-scrolling platformer for your terminal",
	Long: `Run, jump, dash and shoot through a pack of levels, in the terminal,
a desktop window or over SSH.

Without a subcommand the mode picker opens in the terminal.

Controls:
  ←/→ a/d     - Walk
  Space/↑     - Jump (again in the air for a double jump)
  X           - Dash
  F / click   - Shoot (click aims)
  Enter       - Start level
  P/Esc       - Pause
  M           - Level menu
  R           - Restart after game over
  Ctrl+C      - Quit

Examples:
  platformer
  platformer play platformer_arena
  platformer window --difficulty hard
  platformer play --levels ./my-levels.toml
  platformer sim --frames 3600 --seed 42
  platformer serve --ssh :2222`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging()
		platformer.SetConfigPath(flagConfig)
		platformer.SetLevelsPath(flagLevels)
		if err := platformer.SetDifficultyPreset(flagDifficulty); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := platformer.CheckSources(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
	Run: runMenu,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.platformer/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	pf.StringVar(&flagLevels, "levels", "", "Path to custom level file (.yaml, .json, .toml)")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

func setupLogging() {
	log.SetReportTimestamp(true)
	if flagVerbose {
		log.SetLevel(log.DebugLevel)
	}
}

// terminalConfig builds the runtime config from the terminal size.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// modeArg returns the mode named in args, defaulting to the campaign, and
// exits if it is unknown.
func modeArg(args []string) string {
	id := platformer.IDCampaign
	if len(args) > 0 {
		id = args[0]
	}
	if !registry.Exists(id) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'platformer list' to see available modes.")
		os.Exit(1)
	}
	return id
}
