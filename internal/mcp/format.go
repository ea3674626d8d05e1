package mcp

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"fittrack/internal/render"
)

// Response formats accepted by every tool's response_format argument.
const (
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

// parseResponseFormat normalizes the response_format argument. Empty means
// markdown.
func parseResponseFormat(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", formatMarkdown:
		return formatMarkdown, nil
	case formatJSON:
		return formatJSON, nil
	default:
		return "", fmt.Errorf("invalid response_format %q, valid formats: markdown, json", s)
	}
}

// textResult caps the payload at the response budget and wraps it as a
// successful tool result.
func textResult(s string) *mcp.CallToolResult {
	return mcp.NewToolResultText(render.Truncate(s, render.MaxResponseChars))
}

// jsonResult encodes v as indented JSON inside a capped tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := render.JSON(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return textResult(out), nil
}
