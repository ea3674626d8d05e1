// Package hydration computes fluid and electrolyte replacement plans for
// training sessions, sized for heavy sweaters.
//
// Compute is a pure function: identical inputs always produce identical
// plans. When no measured sweat rate is supplied the plan is estimated
// from a default rate scaled by session intensity and adjusted for
// temperature; a measured rate overrides the estimate entirely.
package hydration

import (
	"fmt"
	"math"
	"strings"
)

const (
	// DefaultSweatRateLbPerHr is the assumed sweat loss for a heavy
	// sweater when no measured rate is provided.
	DefaultSweatRateLbPerHr = 1.5

	// OzPerLb converts pounds of sweat loss to fluid ounces.
	OzPerLb = 16.0

	// DefaultTemperatureF is the assumed ambient temperature when the
	// caller does not report one.
	DefaultTemperatureF = 72.0

	// HotThresholdF and ColdThresholdF bound the temperature band in
	// which no adjustment applies.
	HotThresholdF  = 80.0
	ColdThresholdF = 50.0

	// HotExtraOzPerHour is added per hour above HotThresholdF;
	// ColdReliefOzPerHour is subtracted per hour below ColdThresholdF.
	HotExtraOzPerHour   = 6.0
	ColdReliefOzPerHour = 4.0

	// MeasuredSafetyMargin pads a measured sweat rate so the plan errs
	// toward over-replacement.
	MeasuredSafetyMargin = 1.1

	// ReplaceLowPct and ReplaceHighPct bound the post-session
	// replacement range relative to estimated loss.
	ReplaceLowPct  = 1.0
	ReplaceHighPct = 1.5

	// SodiumMgPerHour is the sodium target per hour of sweating,
	// rounded to the nearest sodiumRoundMg in plans.
	SodiumMgPerHour = 1500
	sodiumRoundMg   = 50

	// ElectrolyteDurationMin is the session length beyond which water
	// alone is insufficient. LongSessionMin marks sessions long enough
	// that potassium and magnesium matter too.
	ElectrolyteDurationMin = 60.0
	LongSessionMin         = 120.0

	// electrolyteRPE is the intensity at which electrolytes are
	// recommended regardless of duration.
	electrolyteRPE = RPE(9)

	// PreWorkoutOz and DuringWorkoutOzPer15Min are fixed intra-session
	// timing recommendations.
	PreWorkoutOz            = 16.0
	DuringWorkoutOzPer15Min = 7.0
)

// RPE is a session intensity rating on the 6 to 10 scale.
type RPE int

// MinRPE and MaxRPE bound the accepted intensity scale.
const (
	MinRPE RPE = 6
	MaxRPE RPE = 10
)

var rpeFactors = map[RPE]float64{
	6:  0.7,
	7:  0.8,
	8:  1.0,
	9:  1.3,
	10: 1.5,
}

var rpeLabels = map[RPE]string{
	6:  "6 - Very light",
	7:  "7 - Light",
	8:  "8 - Moderate",
	9:  "9 - Hard",
	10: "10 - Maximum effort",
}

// Valid reports whether r is on the accepted scale.
func (r RPE) Valid() bool {
	return r >= MinRPE && r <= MaxRPE
}

// Factor returns the sweat rate multiplier for r. Invalid values
// return the moderate factor; validate before use.
func (r RPE) Factor() float64 {
	if f, ok := rpeFactors[r]; ok {
		return f
	}
	return 1.0
}

// Label returns the human-readable description of r.
func (r RPE) Label() string {
	if l, ok := rpeLabels[r]; ok {
		return l
	}
	return fmt.Sprintf("%d", int(r))
}

// Input describes a training session to plan hydration for.
type Input struct {
	// DurationMinutes is the session length. Must be positive.
	DurationMinutes float64

	// Intensity is the session RPE on the 6 to 10 scale.
	Intensity RPE

	// TemperatureF is the ambient temperature in Fahrenheit. Must be
	// non-negative.
	TemperatureF float64

	// SweatRateLbPerHr is an optional measured sweat rate. When set it
	// must be positive and it overrides the heuristic estimate.
	SweatRateLbPerHr *float64
}

func (in Input) validate() error {
	if in.DurationMinutes <= 0 {
		return invalidInput("duration_minutes", "must be greater than 0")
	}
	if !in.Intensity.Valid() {
		return invalidInput("intensity", fmt.Sprintf("must be between %d and %d", MinRPE, MaxRPE))
	}
	if in.TemperatureF < 0 {
		return invalidInput("temperature_f", "must be 0 or greater")
	}
	if in.SweatRateLbPerHr != nil && *in.SweatRateLbPerHr <= 0 {
		return invalidInput("sweat_rate_lb_per_hr", "must be greater than 0 when provided")
	}
	return nil
}

// Plan is a complete hydration recommendation for one session.
type Plan struct {
	// FluidOz is the governing estimated fluid loss for the session.
	FluidOz float64 `json:"fluid_oz"`

	// ReplaceLowOz and ReplaceHighOz bound the post-session
	// replacement target (100 to 150 percent of estimated loss).
	ReplaceLowOz  float64 `json:"replace_low_oz"`
	ReplaceHighOz float64 `json:"replace_high_oz"`

	// SodiumMg is the sodium replacement target, zero when water alone
	// suffices.
	SodiumMg int `json:"sodium_mg,omitempty"`

	// ElectrolyteGuidance explains the sodium recommendation.
	ElectrolyteGuidance string `json:"electrolyte_guidance"`

	// Rationale explains how the estimate was derived.
	Rationale string `json:"rationale"`

	// HeuristicOz is the estimate from the default sweat rate. It is
	// always reported, even when a measured rate governs.
	HeuristicOz float64 `json:"heuristic_oz"`

	// MeasuredOz is the estimate from the measured sweat rate, nil
	// when none was provided.
	MeasuredOz *float64 `json:"measured_oz,omitempty"`

	// PreWorkoutOz and DuringWorkoutOzPer15Min are fixed timing
	// recommendations.
	PreWorkoutOz            float64 `json:"pre_workout_oz"`
	DuringWorkoutOzPer15Min float64 `json:"during_workout_oz_per_15min"`
}

// Compute builds a hydration plan for the given session. It validates
// the input and returns an InvalidInputError naming the first field
// that fails.
func Compute(in Input) (Plan, error) {
	if err := in.validate(); err != nil {
		return Plan{}, err
	}

	hours := in.DurationMinutes / 60.0
	var rationale []string
	rationale = append(rationale, fmt.Sprintf("%s session at intensity %s.",
		formatMinutes(in.DurationMinutes), in.Intensity.Label()))

	heuristic := DefaultSweatRateLbPerHr * hours * in.Intensity.Factor() * OzPerLb
	switch {
	case in.TemperatureF > HotThresholdF:
		extra := HotExtraOzPerHour * hours
		heuristic += extra
		rationale = append(rationale, fmt.Sprintf("Hot conditions (%.0fF) add %.1f oz.", in.TemperatureF, extra))
	case in.TemperatureF < ColdThresholdF:
		relief := ColdReliefOzPerHour * hours
		heuristic -= relief
		rationale = append(rationale, fmt.Sprintf("Cool conditions (%.0fF) trim %.1f oz.", in.TemperatureF, relief))
	}
	if heuristic < 0 {
		heuristic = 0
	}

	governing := heuristic
	var measured *float64
	if in.SweatRateLbPerHr != nil {
		m := round1(*in.SweatRateLbPerHr * hours * OzPerLb * MeasuredSafetyMargin)
		measured = &m
		governing = m
		rationale = append(rationale, fmt.Sprintf(
			"Measured sweat rate %.2f lb/hr governs, with a 10%% safety margin; the default-rate estimate was %.1f oz.",
			*in.SweatRateLbPerHr, round1(heuristic)))
	} else {
		rationale = append(rationale, fmt.Sprintf(
			"Estimated from the default heavy-sweater rate of %.1f lb/hr.", DefaultSweatRateLbPerHr))
	}

	sodium, guidance := electrolytes(in.DurationMinutes, in.Intensity, hours)

	return Plan{
		FluidOz:                 round1(governing),
		ReplaceLowOz:            round1(governing * ReplaceLowPct),
		ReplaceHighOz:           round1(governing * ReplaceHighPct),
		SodiumMg:                sodium,
		ElectrolyteGuidance:     guidance,
		Rationale:               strings.Join(rationale, " "),
		HeuristicOz:             round1(heuristic),
		MeasuredOz:              measured,
		PreWorkoutOz:            PreWorkoutOz,
		DuringWorkoutOzPer15Min: DuringWorkoutOzPer15Min,
	}, nil
}

// electrolytes returns the sodium target and guidance for a session.
// Water alone covers short, easy sessions; long sessions add potassium
// and magnesium to the note.
func electrolytes(durationMin float64, intensity RPE, hours float64) (int, string) {
	switch {
	case durationMin >= LongSessionMin:
		mg := roundToNearest(hours*SodiumMgPerHour, sodiumRoundMg)
		return mg, fmt.Sprintf(
			"Electrolytes are essential at this duration: target roughly %d mg sodium across the session, plus potassium and magnesium.", mg)
	case durationMin >= ElectrolyteDurationMin || intensity >= electrolyteRPE:
		mg := roundToNearest(hours*SodiumMgPerHour, sodiumRoundMg)
		return mg, fmt.Sprintf(
			"Add electrolytes: target roughly %d mg sodium across the session.", mg)
	default:
		return 0, "Water alone is sufficient for a session this short and easy."
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func roundToNearest(v float64, step int) int {
	return int(math.Round(v/float64(step))) * step
}

// formatMinutes renders a duration without a trailing ".0" for whole
// minute values.
func formatMinutes(min float64) string {
	if min == math.Trunc(min) {
		return fmt.Sprintf("%.0f min", min)
	}
	return fmt.Sprintf("%.1f min", min)
}
