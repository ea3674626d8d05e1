package render

import (
	"fmt"
	"strings"

	"fittrack/internal/rehab"
)

// phasePreviewCount bounds the exercise list in the all-phases summary.
const phasePreviewCount = 3

// ProtocolMarkdown renders a full protocol as a phase-by-phase summary
// with key principles.
func ProtocolMarkdown(p rehab.Protocol) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	fmt.Fprintf(&b, "**Overview:** %s\n", p.Overview)

	for _, phase := range p.Phases {
		fmt.Fprintf(&b, "\n## Phase %d: %s (%s)\n", phase.Number, phase.Title, phase.DurationEstimate)
		fmt.Fprintf(&b, "**Goals:** %s\n", strings.Join(phase.Goals, ", "))
		b.WriteString("\n**Key Exercises:**\n")
		for i, ex := range phase.Exercises {
			if i == phasePreviewCount {
				break
			}
			fmt.Fprintf(&b, "- %s (%s)\n", ex.Name, ex.Dosage)
		}
	}

	b.WriteString("\n## Key Principles\n")
	for _, principle := range p.KeyPrinciples {
		fmt.Fprintf(&b, "- %s\n", principle)
	}
	return b.String()
}

// PhaseMarkdown renders one phase of a protocol in full detail.
func PhaseMarkdown(p rehab.Protocol, phase rehab.Phase) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	fmt.Fprintf(&b, "## Phase %d: %s (%s)\n", phase.Number, phase.Title, phase.DurationEstimate)

	b.WriteString("\n**Goals:**\n")
	for _, g := range phase.Goals {
		fmt.Fprintf(&b, "- %s\n", g)
	}

	b.WriteString("\n**Exercises:**\n")
	for _, ex := range phase.Exercises {
		fmt.Fprintf(&b, "- **%s**\n", ex.Name)
		fmt.Fprintf(&b, "  - Dosage: %s\n", ex.Dosage)
		if ex.Cautions != "" {
			fmt.Fprintf(&b, "  - Cautions: %s\n", ex.Cautions)
		}
	}

	if len(phase.Restrictions) > 0 {
		b.WriteString("\n**Restrictions:**\n")
		for _, r := range phase.Restrictions {
			fmt.Fprintf(&b, "- %s\n", r)
		}
	}

	fmt.Fprintf(&b, "\n**Progress when:** %s\n", phase.ProgressionCriteria)
	return b.String()
}
