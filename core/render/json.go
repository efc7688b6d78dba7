// Package render serializes pipeline records for disk.
// Every JSON file the pipeline writes is indented with two spaces, keeps
// non-ASCII text as UTF-8 and leaves &, < and > unescaped.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JSON marshals v into human-readable JSON.
func JSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	// Encode appends a newline; drop it so files end on the closing bracket.
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
