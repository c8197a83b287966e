package level

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/level/formats"
)

//go:embed defaults/levels.yaml
var defaultPackYAML []byte

// BaseName is the file name (without extension) looked up by Load.
const BaseName = "levels"

// SourceEmbedded is the Pack.Source of the built-in level pack.
const SourceEmbedded = "embedded"

// Pack is an ordered list of levels and where it came from.
type Pack struct {
	Levels []Level
	Source string // File path, or SourceEmbedded
	// Fallback is set when the source had no usable level list and the
	// synthetic default level was used instead.
	Fallback bool
}

// Len returns the number of levels.
func (p Pack) Len() int {
	return len(p.Levels)
}

// At returns level i, wrapping around the pack.
func (p Pack) At(i int) Level {
	n := len(p.Levels)
	if n == 0 {
		return Default()
	}
	return p.Levels[((i%n)+n)%n]
}

// Names returns the level names in order.
func (p Pack) Names() []string {
	names := make([]string, len(p.Levels))
	for i, l := range p.Levels {
		names[i] = l.Name
	}
	return names
}

// Parse decodes data in the format given by ext into levels.
func Parse(data []byte, ext string, d Defaults) ([]Level, bool, error) {
	doc, err := formats.Parse(data, ext)
	if err != nil {
		return nil, false, err
	}
	levels, fallback := FromDocument(doc, d)
	return levels, fallback, nil
}

// LoadFile loads a single level file.
func LoadFile(path string, d Defaults) (Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Pack{}, fmt.Errorf("level: reading %s: %w", path, err)
	}

	levels, fallback, err := Parse(data, filepath.Ext(path), d)
	if err != nil {
		return Pack{}, fmt.Errorf("level: parsing %s: %w", path, err)
	}
	return Pack{Levels: levels, Source: path, Fallback: fallback}, nil
}

// Load finds the level pack.
// Search order: customPath -> ~/.platformer/levels.{yaml,yml,json,toml} ->
// ./levels.{yaml,yml,json,toml} -> embedded pack.
//
// A custom path that cannot be read or decoded is an error. Broken files
// found during the search are logged and skipped.
func Load(customPath string, d Defaults) (Pack, error) {
	if customPath != "" {
		pack, err := LoadFile(customPath, d)
		if err != nil {
			return Pack{}, err
		}
		if pack.Fallback {
			log.Warn("level file has no levels list, using default level", "path", customPath)
		}
		return pack, nil
	}

	for _, path := range searchPaths() {
		pack, err := LoadFile(path, d)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				log.Warn("skipping level file", "path", path, "err", err)
			}
			continue
		}
		log.Debug("loaded levels", "path", path, "count", pack.Len())
		return pack, nil
	}

	return Embedded(d), nil
}

// Embedded returns the built-in level pack.
func Embedded(d Defaults) Pack {
	levels, fallback, err := Parse(defaultPackYAML, ".yaml", d)
	if err != nil {
		return Pack{Levels: []Level{Default()}, Source: SourceEmbedded, Fallback: true}
	}
	return Pack{Levels: levels, Source: SourceEmbedded, Fallback: fallback}
}

// Encode renders levels in the format named by ext.
func Encode(levels []Level, ext string) ([]byte, error) {
	doc := ToDocument(levels)
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return formats.EncodeYAML(doc)
	case ".json":
		return formats.EncodeJSON(doc)
	case ".toml":
		return formats.EncodeTOML(doc)
	default:
		return nil, fmt.Errorf("level: unsupported extension: %s", ext)
	}
}

func searchPaths() []string {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".platformer"))
	}
	dirs = append(dirs, ".")

	var paths []string
	for _, dir := range dirs {
		for _, ext := range formats.FormatExtensions() {
			paths = append(paths, filepath.Join(dir, BaseName+ext))
		}
	}
	return paths
}
