// Package workout validates workout entries and attaches shoulder
// safety advice. Nothing is persisted; the acknowledgment ID only
// confirms the assessment ran.
package workout

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"fittrack/internal/library"
	"fittrack/internal/safety"
)

const (
	MinSets = 1
	MaxSets = 10
	MinReps = 1
	MaxReps = 50
	MinRPE  = 6
	MaxRPE  = 10

	// MaxNotesLen bounds the free-text notes field.
	MaxNotesLen = 500

	// maxAlternatives caps how many safer same-pattern exercises an
	// avoid warning suggests.
	maxAlternatives = 4
)

// Entry is one logged exercise: what was done and how hard.
type Entry struct {
	Exercise string  `json:"exercise"`
	Sets     int     `json:"sets"`
	Reps     int     `json:"reps"`
	WeightLb float64 `json:"weight_lbs"`
	RPE      int     `json:"rpe"`
	Notes    string  `json:"notes,omitempty"`
}

func (e Entry) validate() error {
	if strings.TrimSpace(e.Exercise) == "" {
		return invalidEntry("exercise_name", "must not be empty")
	}
	if e.Sets < MinSets || e.Sets > MaxSets {
		return invalidEntry("sets", fmt.Sprintf("must be between %d and %d", MinSets, MaxSets))
	}
	if e.Reps < MinReps || e.Reps > MaxReps {
		return invalidEntry("reps", fmt.Sprintf("must be between %d and %d", MinReps, MaxReps))
	}
	if e.WeightLb < 0 {
		return invalidEntry("weight_lbs", "must be 0 or greater")
	}
	if e.RPE < MinRPE || e.RPE > MaxRPE {
		return invalidEntry("rpe", fmt.Sprintf("must be between %d and %d", MinRPE, MaxRPE))
	}
	if len(e.Notes) > MaxNotesLen {
		return invalidEntry("notes", fmt.Sprintf("must be at most %d characters", MaxNotesLen))
	}
	return nil
}

// Ack acknowledges an assessed entry. Warnings are derived from the
// safety classification; an empty slice means the exercise is cleared
// as logged.
type Ack struct {
	EntryID  string        `json:"entry_id"`
	Entry    Entry         `json:"entry"`
	Safety   safety.Result `json:"safety"`
	Warnings []string      `json:"warnings,omitempty"`
}

// Assess validates an entry and classifies its exercise. Invalid
// entries return an InvalidEntryError naming the field; classification
// itself never fails.
func Assess(entry Entry, cls *safety.Classifier) (Ack, error) {
	if err := entry.validate(); err != nil {
		return Ack{}, err
	}

	result := cls.Classify(entry.Exercise)

	return Ack{
		EntryID:  uuid.NewString(),
		Entry:    entry,
		Safety:   result,
		Warnings: warningsFor(result, cls.Catalog()),
	}, nil
}

// warningsFor turns a classification into actionable warnings. Avoid
// tiers get a swap suggestion built from safe catalog exercises in the
// same movement pattern; caution tiers surface the card's modification
// notes; unknown exercises carry the general guidance.
func warningsFor(result safety.Result, catalog *library.Catalog) []string {
	switch result.Tier {
	case safety.TierAvoid:
		return []string{avoidWarning(result, catalog)}
	case safety.TierCaution:
		return []string{cautionWarning(result, catalog)}
	case safety.TierUnknown:
		return []string{result.Guidance}
	default:
		return nil
	}
}

func avoidWarning(result safety.Result, catalog *library.Catalog) string {
	matched, ok := catalog.Find(result.MatchedName)
	if !ok {
		return fmt.Sprintf("%s is not recommended with AC joint arthritis.", result.MatchedName)
	}

	alternatives := safeAlternatives(catalog, matched)
	if len(alternatives) == 0 {
		return fmt.Sprintf("%s is not recommended with AC joint arthritis. Swap it for a landmine or neutral-grip variation.",
			matched.Name)
	}
	return fmt.Sprintf("%s is not recommended with AC joint arthritis. Safer %s options: %s.",
		matched.Name, strings.ToLower(matched.Category.Label()), strings.Join(alternatives, ", "))
}

func cautionWarning(result safety.Result, catalog *library.Catalog) string {
	if matched, ok := catalog.Find(result.MatchedName); ok && strings.TrimSpace(matched.Notes) != "" {
		return fmt.Sprintf("%s is tolerable for some with modifications. %s",
			matched.Name, strings.TrimSpace(matched.Notes))
	}
	return result.Guidance
}

// safeAlternatives lists safe-tier exercises sharing the movement
// pattern, excluding the exercise itself, capped at maxAlternatives.
// Catalog order is sorted, so the suggestion set is deterministic.
func safeAlternatives(catalog *library.Catalog, matched library.Exercise) []string {
	var names []string
	for _, ex := range catalog.ByCategory(matched.Category) {
		if ex.Tier != library.TierSafe || ex.Name == matched.Name {
			continue
		}
		names = append(names, ex.Name)
		if len(names) == maxAlternatives {
			break
		}
	}
	return names
}
