package render

import (
	"fmt"
	"strings"

	"fittrack/internal/hydration"
)

// PlanMarkdown renders a hydration plan alongside the session it was
// computed for.
func PlanMarkdown(in hydration.Input, plan hydration.Plan) string {
	var b strings.Builder
	b.WriteString("## Hydration Protocol\n\n")
	fmt.Fprintf(&b, "**Workout Duration:** %g minutes\n", in.DurationMinutes)
	fmt.Fprintf(&b, "**Intensity:** %s\n", in.Intensity.Label())
	fmt.Fprintf(&b, "**Temperature:** %g°F\n", in.TemperatureF)
	if in.SweatRateLbPerHr != nil {
		fmt.Fprintf(&b, "**Measured Sweat Rate:** %g lb/hr\n", *in.SweatRateLbPerHr)
	}

	b.WriteString("\n### Fluid Replacement\n")
	fmt.Fprintf(&b, "- **Estimated Loss:** %g oz\n", plan.FluidOz)
	fmt.Fprintf(&b, "- **Replace:** %g-%g oz over 2-4 hours post-workout\n", plan.ReplaceLowOz, plan.ReplaceHighOz)
	fmt.Fprintf(&b, "- **Pre-workout:** %g oz about 2 hours before\n", plan.PreWorkoutOz)
	fmt.Fprintf(&b, "- **During:** %g oz every 15 minutes\n", plan.DuringWorkoutOzPer15Min)

	b.WriteString("\n### Electrolytes\n")
	if plan.SodiumMg > 0 {
		fmt.Fprintf(&b, "- **Sodium:** %d mg during and after the session\n", plan.SodiumMg)
		b.WriteString("- **Daily goal (training days):** 3,000-5,000 mg\n")
	}
	fmt.Fprintf(&b, "- %s\n", plan.ElectrolyteGuidance)

	b.WriteString("\n### How This Was Estimated\n")
	b.WriteString(plan.Rationale)
	b.WriteString("\n")
	return b.String()
}
