// Package rehab holds the built-in rehabilitation protocols and serves
// them by condition and phase. Protocol definitions live in embedded
// YAML documents, one per condition, validated against the exercise
// catalog at load time.
package rehab

import "strings"

// Condition identifies one of the supported rehabilitation protocols.
type Condition string

const (
	ACJointArthritis       Condition = "ac_joint_arthritis"
	BicepTendonitis        Condition = "bicep_tendonitis"
	CervicalSpineArthritis Condition = "cervical_spine_arthritis"
	PostAnkleSurgery       Condition = "post_ankle_surgery"
	PostMeniscusSurgery    Condition = "post_meniscus_surgery"
	ScapularWinging        Condition = "scapular_winging"
)

// allConditions is the closed, sorted set of supported conditions.
var allConditions = []Condition{
	ACJointArthritis,
	BicepTendonitis,
	CervicalSpineArthritis,
	PostAnkleSurgery,
	PostMeniscusSurgery,
	ScapularWinging,
}

// ParseCondition resolves free-form input ("AC Joint Arthritis",
// "post-ankle-surgery") to a known condition.
func ParseCondition(input string) (Condition, error) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = strings.ReplaceAll(normalized, "-", "_")

	c := Condition(normalized)
	for _, known := range allConditions {
		if c == known {
			return c, nil
		}
	}
	return "", &UnknownConditionError{Condition: Condition(input)}
}

// Protocol is the full rehabilitation plan for one condition.
type Protocol struct {
	Condition     Condition `yaml:"condition" json:"condition"`
	Title         string    `yaml:"title" json:"title"`
	Overview      string    `yaml:"overview" json:"overview"`
	KeyPrinciples []string  `yaml:"key_principles" json:"key_principles"`
	Phases        []Phase   `yaml:"phases" json:"phases"`
}

// Phase is one stage of a protocol. Numbers are contiguous from 1.
type Phase struct {
	Number              int             `yaml:"number" json:"number"`
	Title               string          `yaml:"title" json:"title"`
	DurationEstimate    string          `yaml:"duration_estimate" json:"duration_estimate"`
	Goals               []string        `yaml:"goals" json:"goals"`
	Exercises           []PhaseExercise `yaml:"exercises" json:"exercises"`
	Restrictions        []string        `yaml:"restrictions,omitempty" json:"restrictions,omitempty"`
	ProgressionCriteria string          `yaml:"progression_criteria" json:"progression_criteria"`
}

// PhaseExercise prescribes one exercise within a phase. Dosage folds
// sets, reps, and frequency into one string ("3x12, 3x/week").
// ProtocolOnly marks clinical drills (pendulums, isometrics, ROM work)
// that are not exercise catalog entries; everything else must resolve
// through the catalog.
type PhaseExercise struct {
	Name         string `yaml:"name" json:"name"`
	Dosage       string `yaml:"dosage" json:"dosage"`
	Cautions     string `yaml:"cautions,omitempty" json:"cautions,omitempty"`
	ProtocolOnly bool   `yaml:"protocol_only,omitempty" json:"protocol_only,omitempty"`
}
