package library

import (
	"fmt"
	"strings"
)

// Category groups exercises by movement pattern. The five categories mirror
// the structure of an AC-joint friendly program: pressing and pulling in the
// scapular plane, standing lower-body work, serratus/lower-trap activation,
// and standing anti-rotation core work.
type Category string

const (
	CategoryPressing  Category = "pressing"
	CategoryPulling   Category = "pulling"
	CategoryLowerBody Category = "lower_body_standing"
	CategorySerratus  Category = "serratus_lower_trap_focus"
	CategoryCore      Category = "core_standing"
)

// Categories returns all valid categories in display order.
func Categories() []Category {
	return []Category{
		CategoryPressing,
		CategoryPulling,
		CategoryLowerBody,
		CategorySerratus,
		CategoryCore,
	}
}

// ParseCategory validates a category string from a card or a tool argument.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.TrimSpace(strings.ToLower(s)))
	switch c {
	case CategoryPressing, CategoryPulling, CategoryLowerBody, CategorySerratus, CategoryCore:
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q (valid: pressing, pulling, lower_body_standing, serratus_lower_trap_focus, core_standing)", s)
}

func (c Category) String() string { return string(c) }

// Label returns a human-readable category name for rendered output.
func (c Category) Label() string {
	switch c {
	case CategoryPressing:
		return "Pressing"
	case CategoryPulling:
		return "Pulling"
	case CategoryLowerBody:
		return "Lower Body (Standing)"
	case CategorySerratus:
		return "Serratus & Lower Trap Focus"
	case CategoryCore:
		return "Core (Standing)"
	default:
		return string(c)
	}
}

// Tier is the AC-joint safety classification of an exercise.
type Tier string

const (
	TierSafe    Tier = "safe"
	TierCaution Tier = "caution"
	TierAvoid   Tier = "avoid"
)

// ParseTier validates a tier string from a card.
func ParseTier(s string) (Tier, error) {
	t := Tier(strings.TrimSpace(strings.ToLower(s)))
	switch t {
	case TierSafe, TierCaution, TierAvoid:
		return t, nil
	}
	return "", fmt.Errorf("unknown tier %q (valid: safe, caution, avoid)", s)
}

func (t Tier) String() string { return string(t) }

// Exercise is a single catalog entry. Instances are value types; the catalog
// hands out copies so callers cannot mutate the reference data.
type Exercise struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Tier     Tier     `json:"ac_joint_tier"`
	Aliases  []string `json:"aliases,omitempty"`
	Notes    string   `json:"notes,omitempty"`
}

// NormalizeName canonicalizes an exercise name for lookup: trimmed,
// casefolded, internal whitespace collapsed to single spaces.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
