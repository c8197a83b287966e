package config

import (
	"fmt"
	"strings"
)

// ParsePreset converts a CLI string into a preset.
// An empty string means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return "", nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset modifies the tuning based on a difficulty preset.
// Normal keeps the loaded values untouched.
func ApplyPreset(cfg *Tuning, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Game.Lives = 5
		cfg.Game.InvulnTime = 2.5
		cfg.Game.SpawnCooldown = 3.0
		cfg.Stamina.RegenDelay = 2.0
		cfg.Stamina.DoubleJumpCost = 10
	case DifficultyHard:
		cfg.Game.Lives = 2
		cfg.Game.InvulnTime = 1.0
		cfg.Game.MaxEnemies = 5
		cfg.Game.SpawnCooldown = 1.2
		cfg.Stamina.RegenDelay = 5.0
		cfg.Dash.Cost = 20
	}
}
