package main

import "github.com/charmbracelet/glamour"

// renderMarkdown renders markdown for terminal output, falling back to the
// raw text when glamour cannot build a renderer.
func renderMarkdown(md string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}
