package formats

import (
	"encoding/json"
	"fmt"
)

// ParseJSON parses a JSON level file.
func ParseJSON(data []byte) (Document, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return toDocument(raw), nil
}

// EncodeJSON renders a document as indented JSON.
func EncodeJSON(doc Document) ([]byte, error) {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return append(out, '\n'), nil
}
