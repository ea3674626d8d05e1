// Package safety classifies exercise names against the catalog's AC-joint
// tiers. Classification is total: any input, including garbage, yields a
// usable Result rather than an error.
package safety

import (
	"fmt"

	"fittrack/internal/library"
)

// Tier aliases the catalog tier so classified results and card data share
// one vocabulary. The classifier adds TierUnknown for names the catalog
// cannot account for; cards themselves can never carry it.
type Tier = library.Tier

const (
	TierSafe    = library.TierSafe
	TierCaution = library.TierCaution
	TierAvoid   = library.TierAvoid

	TierUnknown Tier = "unknown"
)

// Confidence states how the input was matched to a catalog entry.
type Confidence string

const (
	ConfidenceExact       Confidence = "exact"
	ConfidenceApproximate Confidence = "approximate"
	ConfidenceNone        Confidence = "none"
)

// Result is a classification outcome. MatchedName is the canonical catalog
// name (empty when Confidence is "none"); Guidance is always populated.
type Result struct {
	Tier        Tier       `json:"tier"`
	MatchedName string     `json:"matched_name,omitempty"`
	Confidence  Confidence `json:"confidence"`
	Guidance    string     `json:"guidance"`
}

// unknownGuidance is shown when a name has no catalog match at all. The
// principles mirror the card set: what makes an exercise risky for AC
// joint arthritis and what the safe substitutions look like.
const unknownGuidance = "Not in the exercise library. Verify against these principles: " +
	"avoid flat bench press, wide-grip movements, and strict overhead pressing; " +
	"prefer scapular-plane pressing (30-45 degree angle), neutral grips, and landmine variations."

// Classifier resolves free-text exercise names to safety tiers. Safe for
// concurrent use; the catalog is immutable and the matcher stateless.
type Classifier struct {
	catalog    *library.Catalog
	matcher    Matcher
	candidates []string
}

// NewClassifier builds a classifier with the default bounded-distance
// matcher (two edits).
func NewClassifier(catalog *library.Catalog) *Classifier {
	return NewClassifierWithMatcher(catalog, LevenshteinMatcher{MaxDistance: 2})
}

// NewClassifierWithMatcher builds a classifier with a custom matcher.
func NewClassifierWithMatcher(catalog *library.Catalog, matcher Matcher) *Classifier {
	return &Classifier{
		catalog:    catalog,
		matcher:    matcher,
		candidates: catalog.Names(),
	}
}

// Catalog returns the exercise catalog the classifier resolves against.
func (c *Classifier) Catalog() *library.Catalog {
	return c.catalog
}

// Classify resolves a free-text exercise name. Lookup order: exact match
// on canonical name or alias, then approximate match within the matcher's
// bound, then unknown with general guidance. Never returns an error.
func (c *Classifier) Classify(name string) Result {
	normalized := library.NormalizeName(name)
	if normalized == "" {
		return Result{
			Tier:       TierUnknown,
			Confidence: ConfidenceNone,
			Guidance:   unknownGuidance,
		}
	}

	if ex, ok := c.catalog.Find(normalized); ok {
		return Result{
			Tier:        ex.Tier,
			MatchedName: ex.Name,
			Confidence:  ConfidenceExact,
			Guidance:    tierGuidance(ex),
		}
	}

	if key, ok := c.matcher.Match(normalized, c.candidates); ok {
		if ex, found := c.catalog.Find(key); found {
			return Result{
				Tier:        ex.Tier,
				MatchedName: ex.Name,
				Confidence:  ConfidenceApproximate,
				Guidance:    fmt.Sprintf("Interpreted %q as %q. %s", name, ex.Name, tierGuidance(ex)),
			}
		}
	}

	return Result{
		Tier:       TierUnknown,
		Confidence: ConfidenceNone,
		Guidance:   unknownGuidance,
	}
}

// tierGuidance builds the per-tier advice line for a matched exercise.
func tierGuidance(ex library.Exercise) string {
	switch ex.Tier {
	case TierSafe:
		return fmt.Sprintf("%s is AC-joint safe (%s).", ex.Name, ex.Category.Label())
	case TierCaution:
		return fmt.Sprintf("%s is tolerable for some with AC joint arthritis. Modify load, grip, or range, and stop if the joint flares.", ex.Name)
	case TierAvoid:
		return fmt.Sprintf("%s is not recommended with AC joint arthritis. Avoid wide-grip and flat bench pressing patterns.", ex.Name)
	default:
		return unknownGuidance
	}
}
