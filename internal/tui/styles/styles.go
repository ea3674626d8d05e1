// Package styles holds the shared Lip Gloss styles for the exercise
// browser and CLI output. Safety tier colors follow the traffic-light
// scheme used on the cards.
package styles

import "github.com/charmbracelet/lipgloss"

const (
	colorAccent  = lipgloss.Color("#00d787")
	colorMuted   = lipgloss.Color("#6c6c6c")
	colorText    = lipgloss.Color("#e4e4e4")
	colorHelp    = lipgloss.Color("#8a8a8a")
	colorBorder  = lipgloss.Color("#5f87ff")
	colorSafe    = lipgloss.Color("#00d75f")
	colorCaution = lipgloss.Color("#ffaf00")
	colorAvoid   = lipgloss.Color("#ff5f5f")
)

var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1).PaddingLeft(1)
	Subtitle = lipgloss.NewStyle().Foreground(colorMuted).MarginBottom(1).PaddingLeft(1)
	Body     = lipgloss.NewStyle().Foreground(colorText).MarginBottom(1)
	ErrText  = lipgloss.NewStyle().Foreground(colorAvoid).Bold(true)
	Help     = lipgloss.NewStyle().Faint(true).Foreground(colorHelp).MarginTop(1).Padding(0, 1)

	// Safety tier badges shared by the browser list and CLI tables.
	TierSafe    = lipgloss.NewStyle().Foreground(colorSafe).Bold(true)
	TierCaution = lipgloss.NewStyle().Foreground(colorCaution).Bold(true)
	TierAvoid   = lipgloss.NewStyle().Foreground(colorAvoid).Bold(true)

	// Boxes that keep the header, panes, and help line aligned.
	HeaderBox  = lipgloss.NewStyle().MarginLeft(1).MarginBottom(1)
	HelpBox    = lipgloss.NewStyle().MarginLeft(1).MarginTop(1)
	ContentBox = lipgloss.NewStyle().MarginLeft(1)

	// Panes for the browser's list and detail views.
	Pane       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).PaddingLeft(2).PaddingRight(1)
	PaneActive = Pane.BorderForeground(colorAccent)
)

// TierBadge renders a safety tier name in its signal color. Unknown
// tiers come back unstyled.
func TierBadge(tier string) string {
	switch tier {
	case "safe":
		return TierSafe.Render("safe")
	case "caution":
		return TierCaution.Render("caution")
	case "avoid":
		return TierAvoid.Render("avoid")
	default:
		return tier
	}
}
