package formats

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
)

// ParseTOML parses a TOML level file. Levels are written as [[levels]]
// tables with [[levels.platforms]] and [[levels.enemies]] children.
func ParseTOML(data []byte) (Document, error) {
	doc := Document{}
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("toml decode: %w", err)
	}
	return doc, nil
}

// EncodeTOML renders a document as TOML.
func EncodeTOML(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(map[string]any(doc)); err != nil {
		return nil, fmt.Errorf("toml encode: %w", err)
	}
	return buf.Bytes(), nil
}
