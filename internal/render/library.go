package render

import (
	"fmt"
	"strings"

	"fittrack/internal/library"
)

// LibraryMarkdown renders a catalog listing grouped by movement
// pattern. Avoid-tier exercises are pulled out of their categories into
// a closing section, caution-tier entries carry an inline badge.
func LibraryMarkdown(exercises []library.Exercise) string {
	if len(exercises) == 0 {
		return "# AC-Joint Safe Exercise Library\n\nNo exercises match the filters.\n"
	}

	byCategory := make(map[library.Category][]library.Exercise)
	var avoid []library.Exercise
	for _, ex := range exercises {
		if ex.Tier == library.TierAvoid {
			avoid = append(avoid, ex)
			continue
		}
		byCategory[ex.Category] = append(byCategory[ex.Category], ex)
	}

	var b strings.Builder
	b.WriteString("# AC-Joint Safe Exercise Library\n\n")
	b.WriteString("**Training Constraints Applied:**\n")
	b.WriteString("- Standing and self-stabilizing lifts preferred\n")
	b.WriteString("- AC-joint safe pressing (scapular plane, neutral grip)\n")
	b.WriteString("- Serratus anterior and lower trapezius emphasis\n")
	b.WriteString("- Landmine exercises approved\n")
	b.WriteString("- RPE-based progression (6-10 scale)\n")

	for _, cat := range library.Categories() {
		group := byCategory[cat]
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n", cat.Label())
		for _, ex := range group {
			if ex.Tier == library.TierCaution {
				fmt.Fprintf(&b, "- %s (caution)\n", ex.Name)
			} else {
				fmt.Fprintf(&b, "- %s\n", ex.Name)
			}
		}
	}

	if len(avoid) > 0 {
		b.WriteString("\n### Exercises to Avoid\n")
		for _, ex := range avoid {
			fmt.Fprintf(&b, "- %s\n", ex.Name)
		}
	}
	return b.String()
}

// CardMarkdown renders a single exercise card.
func CardMarkdown(ex library.Exercise) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", ex.Name)
	fmt.Fprintf(&b, "**Category:** %s\n", ex.Category.Label())
	fmt.Fprintf(&b, "**Tier:** %s\n", ex.Tier)
	if len(ex.Aliases) > 0 {
		fmt.Fprintf(&b, "**Also known as:** %s\n", strings.Join(ex.Aliases, ", "))
	}
	if strings.TrimSpace(ex.Notes) != "" {
		b.WriteString("\n")
		b.WriteString(strings.TrimSpace(ex.Notes))
		b.WriteString("\n")
	}
	return b.String()
}
