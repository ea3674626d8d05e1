package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"fittrack/internal/tui/styles"
)

const (
	noticeMarginX  = 2
	noticeMarginY  = 1
	noticeMaxWidth = 100
	noticeMinWidth = 40
)

var noticeFrame = lipgloss.NewStyle().Margin(noticeMarginY, noticeMarginX)

// Notice renders the browser's full-screen informational states, the
// loading placeholder and the window-too-small message, as a wrapped
// column of title, subtitle, body, and key hints.
type Notice struct {
	title    string
	subtitle string
	hints    string
	width    int
}

func NewNotice(title, subtitle, hints string) Notice {
	return Notice{title: title, subtitle: subtitle, hints: hints}
}

// Update tracks the window width so Render wraps to the terminal.
func (n Notice) Update(msg tea.Msg) (Notice, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		n.width = size.Width
	}
	return n, nil
}

// Render lays out the notice around the given body text.
func (n Notice) Render(body string) string {
	width := n.wrapWidth()

	var sections []string
	if n.title != "" {
		sections = append(sections, styles.Title.Render(wrap(n.title, width)))
	}
	if n.subtitle != "" {
		sections = append(sections, styles.Subtitle.Render(wrap(n.subtitle, width)))
	}
	if body != "" {
		sections = append(sections, styles.Body.Render(wrap(body, width)))
	}
	if n.hints != "" {
		sections = append(sections, styles.Help.Render(wrap(n.hints, width)))
	}

	return noticeFrame.Render(strings.Join(sections, "\n\n"))
}

func (n Notice) wrapWidth() int {
	avail := n.width - noticeMarginX*2
	switch {
	case avail > noticeMaxWidth:
		return noticeMaxWidth
	case avail < noticeMinWidth:
		return noticeMinWidth
	}
	return avail
}

// wrap word-wraps long lines; hard breaks in the text survive.
func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}
