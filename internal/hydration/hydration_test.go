package hydration

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func TestComputeHeuristic(t *testing.T) {
	tests := []struct {
		name      string
		in        Input
		fluidOz   float64
		lowOz     float64
		highOz    float64
		sodiumMg  int
		guidance  string
		rationale string
	}{
		{
			name:     "moderate hour in mild weather",
			in:       Input{DurationMinutes: 60, Intensity: 8, TemperatureF: 70},
			fluidOz:  24.0,
			lowOz:    24.0,
			highOz:   36.0,
			sodiumMg: 1500,
			guidance: "Add electrolytes",
		},
		{
			name:      "hard session in the heat",
			in:        Input{DurationMinutes: 90, Intensity: 9, TemperatureF: 85},
			fluidOz:   55.8,
			lowOz:     55.8,
			highOz:    83.7,
			sodiumMg:  2250,
			guidance:  "Add electrolytes",
			rationale: "Hot conditions (85F) add 9.0 oz.",
		},
		{
			name:      "easy session in the cold",
			in:        Input{DurationMinutes: 45, Intensity: 7, TemperatureF: 45},
			fluidOz:   11.4,
			lowOz:     11.4,
			highOz:    17.1,
			sodiumMg:  0,
			guidance:  "Water alone is sufficient",
			rationale: "Cool conditions (45F) trim 3.0 oz.",
		},
		{
			name:     "short but maximal effort still needs sodium",
			in:       Input{DurationMinutes: 30, Intensity: 9, TemperatureF: 70},
			fluidOz:  15.6,
			lowOz:    15.6,
			highOz:   23.4,
			sodiumMg: 750,
			guidance: "Add electrolytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := Compute(tt.in)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if plan.FluidOz != tt.fluidOz {
				t.Errorf("FluidOz = %v, want %v", plan.FluidOz, tt.fluidOz)
			}
			if plan.ReplaceLowOz != tt.lowOz {
				t.Errorf("ReplaceLowOz = %v, want %v", plan.ReplaceLowOz, tt.lowOz)
			}
			if plan.ReplaceHighOz != tt.highOz {
				t.Errorf("ReplaceHighOz = %v, want %v", plan.ReplaceHighOz, tt.highOz)
			}
			if plan.SodiumMg != tt.sodiumMg {
				t.Errorf("SodiumMg = %d, want %d", plan.SodiumMg, tt.sodiumMg)
			}
			if !strings.Contains(plan.ElectrolyteGuidance, tt.guidance) {
				t.Errorf("ElectrolyteGuidance = %q, want substring %q", plan.ElectrolyteGuidance, tt.guidance)
			}
			if tt.rationale != "" && !strings.Contains(plan.Rationale, tt.rationale) {
				t.Errorf("Rationale = %q, want substring %q", plan.Rationale, tt.rationale)
			}
			if plan.HeuristicOz != tt.fluidOz {
				t.Errorf("HeuristicOz = %v, want %v (no measured rate given)", plan.HeuristicOz, tt.fluidOz)
			}
			if plan.MeasuredOz != nil {
				t.Errorf("MeasuredOz = %v, want nil", *plan.MeasuredOz)
			}
			if plan.PreWorkoutOz != PreWorkoutOz {
				t.Errorf("PreWorkoutOz = %v, want %v", plan.PreWorkoutOz, PreWorkoutOz)
			}
			if plan.DuringWorkoutOzPer15Min != DuringWorkoutOzPer15Min {
				t.Errorf("DuringWorkoutOzPer15Min = %v, want %v", plan.DuringWorkoutOzPer15Min, DuringWorkoutOzPer15Min)
			}
		})
	}
}

func TestComputeMeasuredRateGoverns(t *testing.T) {
	plan, err := Compute(Input{
		DurationMinutes:  120,
		Intensity:        10,
		TemperatureF:     95,
		SweatRateLbPerHr: floatPtr(2.0),
	})
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	// 2.0 lb/hr x 2 hr x 16 oz x 1.1 margin.
	if plan.FluidOz != 70.4 {
		t.Errorf("FluidOz = %v, want 70.4", plan.FluidOz)
	}
	if plan.MeasuredOz == nil || *plan.MeasuredOz != 70.4 {
		t.Errorf("MeasuredOz = %v, want 70.4", plan.MeasuredOz)
	}
	// The heuristic is still reported even though the measured rate
	// governs, and here it is the larger of the two.
	if plan.HeuristicOz != 84.0 {
		t.Errorf("HeuristicOz = %v, want 84.0", plan.HeuristicOz)
	}
	if plan.ReplaceHighOz != 105.6 {
		t.Errorf("ReplaceHighOz = %v, want 105.6", plan.ReplaceHighOz)
	}
	if plan.SodiumMg != 3000 {
		t.Errorf("SodiumMg = %d, want 3000", plan.SodiumMg)
	}
	if !strings.Contains(plan.ElectrolyteGuidance, "potassium and magnesium") {
		t.Errorf("ElectrolyteGuidance = %q, want potassium and magnesium note for a long session", plan.ElectrolyteGuidance)
	}
	if !strings.Contains(plan.Rationale, "Measured sweat rate 2.00 lb/hr governs") {
		t.Errorf("Rationale = %q, want measured-rate explanation", plan.Rationale)
	}
}

func TestComputeHeavySweaterBeatsDefault(t *testing.T) {
	base := Input{DurationMinutes: 60, Intensity: 8, TemperatureF: 70}

	defaultPlan, err := Compute(base)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	measured := base
	measured.SweatRateLbPerHr = floatPtr(2.5)
	measuredPlan, err := Compute(measured)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if measuredPlan.FluidOz < defaultPlan.FluidOz {
		t.Errorf("measured 2.5 lb/hr plan %v oz < default plan %v oz", measuredPlan.FluidOz, defaultPlan.FluidOz)
	}
}

func TestComputeInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		in    Input
		field string
	}{
		{"negative duration", Input{DurationMinutes: -10, Intensity: 9, TemperatureF: 75}, "duration_minutes"},
		{"zero duration", Input{DurationMinutes: 0, Intensity: 8, TemperatureF: 70}, "duration_minutes"},
		{"intensity below scale", Input{DurationMinutes: 60, Intensity: 5, TemperatureF: 70}, "intensity"},
		{"intensity above scale", Input{DurationMinutes: 60, Intensity: 11, TemperatureF: 70}, "intensity"},
		{"negative temperature", Input{DurationMinutes: 60, Intensity: 8, TemperatureF: -5}, "temperature_f"},
		{"zero sweat rate", Input{DurationMinutes: 60, Intensity: 8, TemperatureF: 70, SweatRateLbPerHr: floatPtr(0)}, "sweat_rate_lb_per_hr"},
		{"negative sweat rate", Input{DurationMinutes: 60, Intensity: 8, TemperatureF: 70, SweatRateLbPerHr: floatPtr(-1)}, "sweat_rate_lb_per_hr"},
		{"duration reported first", Input{DurationMinutes: -10, Intensity: 99, TemperatureF: -5}, "duration_minutes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.in)
			if err == nil {
				t.Fatal("Compute() expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("errors.Is(err, ErrInvalidInput) = false for %v", err)
			}
			var invErr *InvalidInputError
			if !errors.As(err, &invErr) {
				t.Fatalf("error %v is not an InvalidInputError", err)
			}
			if invErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", invErr.Field, tt.field)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("Error() = %q, want it to name field %q", err.Error(), tt.field)
			}
		})
	}
}

func TestComputeDeterministic(t *testing.T) {
	in := Input{DurationMinutes: 75, Intensity: 9, TemperatureF: 88, SweatRateLbPerHr: floatPtr(1.8)}

	first, err := Compute(in)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	second, err := Compute(in)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different plans:\n%+v\n%+v", first, second)
	}
}

func TestComputeNeverNegative(t *testing.T) {
	// Cold trims the estimate; sweep short cold sessions to confirm
	// the plan never goes below zero.
	for _, duration := range []float64{10, 15, 30, 45} {
		for rpe := MinRPE; rpe <= MaxRPE; rpe++ {
			for _, temp := range []float64{0, 20, 49} {
				plan, err := Compute(Input{DurationMinutes: duration, Intensity: rpe, TemperatureF: temp})
				if err != nil {
					t.Fatalf("Compute(%v, %v, %v) error = %v", duration, rpe, temp, err)
				}
				if plan.FluidOz < 0 || plan.ReplaceLowOz < 0 || plan.ReplaceHighOz < 0 {
					t.Errorf("Compute(%v, %v, %v) produced negative ounces: %+v", duration, rpe, temp, plan)
				}
				if plan.ReplaceHighOz < plan.ReplaceLowOz {
					t.Errorf("Compute(%v, %v, %v): high %v < low %v", duration, rpe, temp, plan.ReplaceHighOz, plan.ReplaceLowOz)
				}
			}
		}
	}
}

func TestRPE(t *testing.T) {
	factors := map[RPE]float64{6: 0.7, 7: 0.8, 8: 1.0, 9: 1.3, 10: 1.5}
	labels := map[RPE]string{
		6:  "6 - Very light",
		7:  "7 - Light",
		8:  "8 - Moderate",
		9:  "9 - Hard",
		10: "10 - Maximum effort",
	}

	for r := MinRPE; r <= MaxRPE; r++ {
		if !r.Valid() {
			t.Errorf("RPE(%d).Valid() = false, want true", r)
		}
		if got := r.Factor(); got != factors[r] {
			t.Errorf("RPE(%d).Factor() = %v, want %v", r, got, factors[r])
		}
		if got := r.Label(); got != labels[r] {
			t.Errorf("RPE(%d).Label() = %q, want %q", r, got, labels[r])
		}
	}

	for _, r := range []RPE{0, 5, 11, -1} {
		if r.Valid() {
			t.Errorf("RPE(%d).Valid() = true, want false", r)
		}
	}
}

func TestRoundToNearest(t *testing.T) {
	tests := []struct {
		v    float64
		step int
		want int
	}{
		{1500, 50, 1500},
		{2250, 50, 2250},
		{1874, 50, 1850},
		{1875, 50, 1900},
		{730, 50, 750},
		{0, 50, 0},
	}
	for _, tt := range tests {
		if got := roundToNearest(tt.v, tt.step); got != tt.want {
			t.Errorf("roundToNearest(%v, %d) = %d, want %d", tt.v, tt.step, got, tt.want)
		}
	}
}

func TestRound1(t *testing.T) {
	if got := round1(23.400000000000002); got != 23.4 {
		t.Errorf("round1 = %v, want 23.4", got)
	}
	if got := round1(70.44); got != 70.4 {
		t.Errorf("round1 = %v, want 70.4", got)
	}
	if got := round1(0); got != 0 {
		t.Errorf("round1 = %v, want 0", got)
	}
}
