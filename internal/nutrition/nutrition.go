// Package nutrition checks meals against late-eating guardrails.
//
// The guard is advisory: any structurally valid meal is accepted, and
// meals eaten in the late-night window (21:00 through 05:59) pick up a
// warning about sleep and recovery rather than being rejected.
package nutrition

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	// LateMealCutoffHour opens the late-eating window;
	// EarlyMorningHour closes it the next morning.
	LateMealCutoffHour = 21
	EarlyMorningHour   = 6

	// MaxDescriptionLen bounds the free-text meal description.
	MaxDescriptionLen = 500

	// Macro upper bounds. Values beyond these are treated as input
	// mistakes rather than meals.
	MaxProteinG = 300.0
	MaxCarbsG   = 500.0
	MaxFatG     = 200.0
	MaxCalories = 5000
)

// timePattern accepts strict two-digit 24-hour wall-clock times.
var timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Meal is one eating event to evaluate. Macros are optional; when set
// they must be non-negative and within the package bounds.
type Meal struct {
	// Time is the wall-clock time of the meal in 24-hour HH:MM form.
	// It is interpreted exactly as given, with no timezone handling.
	Time string `json:"meal_time"`

	// Description is a short free-text summary of the meal.
	Description string `json:"description"`

	ProteinG *float64 `json:"protein_g,omitempty"`
	CarbsG   *float64 `json:"carbs_g,omitempty"`
	FatG     *float64 `json:"fat_g,omitempty"`
	Calories *int     `json:"calories,omitempty"`
}

func (m Meal) validate() error {
	if !timePattern.MatchString(m.Time) {
		return invalidMeal("meal_time", "must be 24-hour HH:MM, e.g. 21:30")
	}
	desc := strings.TrimSpace(m.Description)
	if desc == "" {
		return invalidMeal("meal_description", "must not be empty")
	}
	if len(m.Description) > MaxDescriptionLen {
		return invalidMeal("meal_description", fmt.Sprintf("must be at most %d characters", MaxDescriptionLen))
	}
	if m.ProteinG != nil && (*m.ProteinG < 0 || *m.ProteinG > MaxProteinG) {
		return invalidMeal("protein_g", fmt.Sprintf("must be between 0 and %.0f", MaxProteinG))
	}
	if m.CarbsG != nil && (*m.CarbsG < 0 || *m.CarbsG > MaxCarbsG) {
		return invalidMeal("carbs_g", fmt.Sprintf("must be between 0 and %.0f", MaxCarbsG))
	}
	if m.FatG != nil && (*m.FatG < 0 || *m.FatG > MaxFatG) {
		return invalidMeal("fat_g", fmt.Sprintf("must be between 0 and %.0f", MaxFatG))
	}
	if m.Calories != nil && (*m.Calories < 0 || *m.Calories > MaxCalories) {
		return invalidMeal("calories", fmt.Sprintf("must be between 0 and %d", MaxCalories))
	}
	return nil
}

// Assessment is the guard's verdict on a meal. Accepted is always true
// for a valid meal; the EntryID only acknowledges the evaluation, no
// meal is stored anywhere.
type Assessment struct {
	Warnings []string `json:"warnings"`
	Accepted bool     `json:"accepted"`
	EntryID  string   `json:"entry_id"`
}

// Evaluate validates a meal and reports late-eating warnings. Invalid
// input returns an InvalidMealError naming the offending field.
func Evaluate(meal Meal) (Assessment, error) {
	if err := meal.validate(); err != nil {
		return Assessment{}, err
	}

	var warnings []string
	if inLateWindow(meal.Time) {
		warnings = append(warnings, lateMealWarning(meal.Time))
	}

	return Assessment{
		Warnings: warnings,
		Accepted: true,
		EntryID:  uuid.NewString(),
	}, nil
}

// inLateWindow reports whether a validated HH:MM time falls at or
// after the cutoff or before the early-morning hour, the window
// wrapping past midnight.
func inLateWindow(hhmm string) bool {
	hour, _ := strconv.Atoi(hhmm[:2])
	return hour >= LateMealCutoffHour || hour < EarlyMorningHour
}

func lateMealWarning(hhmm string) string {
	return fmt.Sprintf(
		"Eating at %s falls in the late-night window and can interfere with sleep quality and recovery. "+
			"Keep the portion lighter than usual, avoid high-fat and high-acid foods, and consider a 10-15 minute walk after eating. "+
			"An earlier protein snack around 19:00-20:00 helps prevent late hunger.", hhmm)
}
