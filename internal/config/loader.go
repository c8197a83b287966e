package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// TuningFile is the file name looked up in the config directories.
const TuningFile = "platformer.yaml"

// LoadTuning loads the simulation tuning.
// Search order: customPath -> ~/.platformer/configs/platformer.yaml ->
// ./configs/platformer.yaml -> embedded default.
//
// Files are decoded on top of the defaults, so a file only needs the keys it
// changes. A custom path that cannot be read, parsed or validated is an error;
// broken files found during the search are skipped.
func LoadTuning(customPath string) (Tuning, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultTuning(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := ParseTuning(data)
		if err != nil {
			return DefaultTuning(), fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(TuningFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseTuning(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", TuningFile)); err == nil {
		if cfg, err := ParseTuning(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseTuning(defaultTuningYAML)
	if err != nil {
		return DefaultTuning(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseTuning decodes YAML over the default tuning and validates the result.
func ParseTuning(data []byte) (Tuning, error) {
	cfg := DefaultTuning()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse tuning: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (t Tuning) Validate() error {
	var errs []error
	if t.Game.FPS <= 0 {
		errs = append(errs, fmt.Errorf("game.fps must be positive, got %d", t.Game.FPS))
	}
	if t.Stamina.Max <= 0 {
		errs = append(errs, fmt.Errorf("stamina.max must be positive, got %v", t.Stamina.Max))
	}
	if t.Stamina.RegenInterval <= 0 {
		errs = append(errs, fmt.Errorf("stamina.regen_interval must be positive, got %v", t.Stamina.RegenInterval))
	}
	if t.Player.HeadRadius <= 0 {
		errs = append(errs, fmt.Errorf("player.head_radius must be positive, got %v", t.Player.HeadRadius))
	}
	if t.Camera.ViewportW <= 0 || t.Camera.ViewportH <= 0 {
		errs = append(errs, fmt.Errorf("camera viewport must be positive, got %vx%v", t.Camera.ViewportW, t.Camera.ViewportH))
	}
	if t.Enemies.PatrolMinX >= t.Enemies.PatrolMaxX {
		errs = append(errs, fmt.Errorf("enemies.patrol_min_x (%v) must be below patrol_max_x (%v)", t.Enemies.PatrolMinX, t.Enemies.PatrolMaxX))
	}
	if t.Player.BlinkMin > t.Player.BlinkMax {
		errs = append(errs, fmt.Errorf("player.blink_min (%v) exceeds blink_max (%v)", t.Player.BlinkMin, t.Player.BlinkMax))
	}
	return errors.Join(errs...)
}

// DefaultYAML returns the embedded default tuning document.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultTuningYAML))
	copy(out, defaultTuningYAML)
	return out
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".platformer", "configs", filename)
}
