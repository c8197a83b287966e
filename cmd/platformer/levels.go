package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/level"
)

var flagExport string

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List or export the level pack",
	Long: `Show the levels that would be played, after the level file search.

Search order: --levels path, ~/.platformer/levels.{yaml,yml,json,toml},
./levels.{yaml,yml,json,toml}, then the built-in pack.

With --export the pack is written in the format named by the file
extension, which makes it a starting point for custom levels. Use "-" to
write YAML to stdout.

Examples:
  platformer levels
  platformer levels --levels ./my-levels.json
  platformer levels --export ./levels.toml`,
	Run: runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagExport, "export", "", "Write the pack to a .yaml, .json or .toml file")
}

func runLevels(_ *cobra.Command, _ []string) {
	tuning, err := config.LoadTuning(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	pack, err := level.Load(flagLevels, level.DefaultsFrom(tuning))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagExport != "" {
		exportLevels(pack)
		return
	}

	fmt.Printf("Levels (%s)\n", pack.Source)
	fmt.Println()
	fmt.Printf("  %-3s  %-20s  %9s  %7s  %s\n", "#", "Name", "Platforms", "Enemies", "Goal")
	fmt.Printf("  %-3s  %-20s  %9s  %7s  %s\n", "-", "----", "---------", "-------", "----")
	for i, l := range pack.Levels {
		fmt.Printf("  %-3d  %-20s  %9d  %7d  (%.0f, %.0f)\n",
			i+1, l.Name, len(l.Platforms), len(l.Enemies), l.Goal.X, l.Goal.Y)
	}
	if pack.Fallback {
		fmt.Println()
		fmt.Println("The level file has no levels list; the default level is used.")
	}
}

func exportLevels(pack level.Pack) {
	ext := filepath.Ext(flagExport)
	if flagExport == "-" {
		ext = ".yaml"
	}

	data, err := level.Encode(pack.Levels, ext)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagExport == "-" {
		fmt.Print(string(data))
		return
	}
	if err := os.WriteFile(flagExport, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d levels to %s\n", pack.Len(), flagExport)
}
