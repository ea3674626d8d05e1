package render

import (
	"fmt"
	"strings"

	"fittrack/internal/workout"
)

// WorkoutAckMarkdown renders a logged workout with its safety
// assessment.
func WorkoutAckMarkdown(ack workout.Ack) string {
	var b strings.Builder
	b.WriteString("## Workout Logged\n\n")
	fmt.Fprintf(&b, "**Exercise:** %s\n", ack.Entry.Exercise)
	fmt.Fprintf(&b, "**Volume:** %d sets x %d reps\n", ack.Entry.Sets, ack.Entry.Reps)
	if ack.Entry.WeightLb > 0 {
		fmt.Fprintf(&b, "**Load:** %g lbs\n", ack.Entry.WeightLb)
	}
	fmt.Fprintf(&b, "**Intensity:** RPE %d\n", ack.Entry.RPE)
	if ack.Entry.Notes != "" {
		fmt.Fprintf(&b, "**Notes:** %s\n", ack.Entry.Notes)
	}
	fmt.Fprintf(&b, "**Entry ID:** %s\n", ack.EntryID)

	b.WriteString("\n### AC Joint Safety Assessment\n")
	b.WriteString(ack.Safety.Guidance)
	b.WriteString("\n")

	if len(ack.Warnings) > 0 {
		b.WriteString("\n**Warnings:**\n")
		for _, w := range ack.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}
	return b.String()
}
