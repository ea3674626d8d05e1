package render

import (
	"fmt"
	"strings"

	"fittrack/internal/nutrition"
)

// AssessmentMarkdown renders a meal evaluation with any late-eating
// warnings.
func AssessmentMarkdown(meal nutrition.Meal, a nutrition.Assessment) string {
	var b strings.Builder
	b.WriteString("## Meal Logged\n\n")
	fmt.Fprintf(&b, "**Time:** %s\n", meal.Time)
	fmt.Fprintf(&b, "**Meal:** %s\n", meal.Description)
	fmt.Fprintf(&b, "**Entry ID:** %s\n", a.EntryID)

	if meal.ProteinG != nil || meal.CarbsG != nil || meal.FatG != nil || meal.Calories != nil {
		b.WriteString("\n**Macros:**\n")
		if meal.ProteinG != nil {
			fmt.Fprintf(&b, "- Protein: %gg\n", *meal.ProteinG)
		}
		if meal.CarbsG != nil {
			fmt.Fprintf(&b, "- Carbs: %gg\n", *meal.CarbsG)
		}
		if meal.FatG != nil {
			fmt.Fprintf(&b, "- Fat: %gg\n", *meal.FatG)
		}
		if meal.Calories != nil {
			fmt.Fprintf(&b, "- **Total:** %d cal\n", *meal.Calories)
		}
	}

	if len(a.Warnings) > 0 {
		b.WriteString("\n### Late Meal Guardrail\n")
		for _, w := range a.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}
	return b.String()
}
