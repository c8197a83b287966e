// Package formats provides pluggable level file format parsers.
// Every parser decodes into the same generic document tree; the level
// package interprets the schema.
package formats

import (
	"fmt"
	"strings"
)

// Document is a decoded level file.
type Document map[string]any

// Levels returns the entries of the top-level "levels" list that are maps.
// ok is false when the list is missing or not a list.
func (d Document) Levels() (levels []map[string]any, ok bool) {
	raw, found := d["levels"]
	if !found {
		return nil, false
	}
	list, isList := AsList(raw)
	if !isList {
		return nil, false
	}
	for _, entry := range list {
		if m, isMap := AsMap(entry); isMap {
			levels = append(levels, m)
		}
	}
	return levels, true
}

// Parse routes data to the parser registered for ext.
func Parse(data []byte, ext string) (Document, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".json":
		return ParseJSON(data)
	case ".toml":
		return ParseTOML(data)
	default:
		return nil, fmt.Errorf("unsupported extension: %s", ext)
	}
}

// FormatExtensions returns supported file extensions in lookup order.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".json", ".toml"}
}

// IsSupported reports whether ext has a parser.
func IsSupported(ext string) bool {
	ext = strings.ToLower(ext)
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// toDocument wraps a decoded root value. A root that is not a map yields an
// empty document, which the level package treats as "no levels".
func toDocument(raw any) Document {
	if m, ok := AsMap(raw); ok {
		return Document(m)
	}
	return Document{}
}

// AsMap converts decoder map shapes to map[string]any.
func AsMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Document:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// AsList converts decoder list shapes to []any.
// TOML arrays of tables decode as []map[string]any.
func AsList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []map[string]any:
		out := make([]any, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out, true
	default:
		return nil, false
	}
}
