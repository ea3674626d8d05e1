// Package render builds the markdown and JSON representations of
// domain results. The MCP server returns these strings raw; the CLI
// and TUI pass the markdown through glamour before printing.
package render

import (
	"encoding/json"
	"fmt"
)

// MaxResponseChars caps tool responses. Truncation keeps the output a
// valid, readable document with a notice at the cut.
const MaxResponseChars = 25000

const truncationNotice = "\n\n[response truncated]"

// JSON renders v as two-space indented JSON.
func JSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding response: %w", err)
	}
	return string(data), nil
}

// Truncate caps s at max runes, appending a truncation notice when
// anything was cut. The notice counts against the cap.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	keep := max - len([]rune(truncationNotice))
	if keep <= 0 {
		return string(runes[:max])
	}
	return string(runes[:keep]) + truncationNotice
}
