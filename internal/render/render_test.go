package render

import (
	"strings"
	"testing"
	"unicode/utf8"

	"fittrack/internal/hydration"
	"fittrack/internal/library"
	"fittrack/internal/logging"
	"fittrack/internal/nutrition"
	"fittrack/internal/rehab"
	"fittrack/internal/safety"
	"fittrack/internal/workout"
)

func loadCatalog(t *testing.T) *library.Catalog {
	t.Helper()
	logger, _ := logging.NewBuffered()
	catalog, err := library.LoadBuiltinCatalog(logger)
	if err != nil {
		t.Fatalf("loading builtin catalog: %v", err)
	}
	return catalog
}

func TestJSON(t *testing.T) {
	out, err := JSON(map[string]int{"fluid_oz": 24})
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	if !strings.Contains(out, "  \"fluid_oz\": 24") {
		t.Errorf("JSON() = %q, want two-space indentation", out)
	}
}

func TestTruncate(t *testing.T) {
	t.Run("short string unchanged", func(t *testing.T) {
		if got := Truncate("hello", 100); got != "hello" {
			t.Errorf("Truncate = %q, want unchanged input", got)
		}
	})

	t.Run("long string capped with notice", func(t *testing.T) {
		in := strings.Repeat("a", 500)
		got := Truncate(in, 100)
		if n := utf8.RuneCountInString(got); n != 100 {
			t.Errorf("rune count = %d, want exactly 100", n)
		}
		if !strings.Contains(got, "truncated") {
			t.Errorf("Truncate = %q, want a truncation notice", got)
		}
	})

	t.Run("multibyte runes stay intact", func(t *testing.T) {
		in := strings.Repeat("30-45° präss ", 100)
		got := Truncate(in, 80)
		if !utf8.ValidString(got) {
			t.Errorf("Truncate produced invalid UTF-8: %q", got)
		}
		if n := utf8.RuneCountInString(got); n > 80 {
			t.Errorf("rune count = %d, want at most 80", n)
		}
	})

	t.Run("cap smaller than notice", func(t *testing.T) {
		got := Truncate(strings.Repeat("a", 50), 5)
		if n := utf8.RuneCountInString(got); n != 5 {
			t.Errorf("rune count = %d, want 5", n)
		}
	})

	t.Run("non-positive cap is a no-op", func(t *testing.T) {
		if got := Truncate("hello", 0); got != "hello" {
			t.Errorf("Truncate = %q, want unchanged input", got)
		}
	})
}

func TestWorkoutAckMarkdown(t *testing.T) {
	ack := workout.Ack{
		EntryID: "abc-123",
		Entry: workout.Entry{
			Exercise: "Landmine Press",
			Sets:     3,
			Reps:     10,
			WeightLb: 95,
			RPE:      8,
			Notes:    "felt strong",
		},
		Safety: safety.Result{
			Tier:        safety.TierSafe,
			MatchedName: "Landmine Press",
			Confidence:  safety.ConfidenceExact,
			Guidance:    "Landmine Press is AC-joint safe (Pressing).",
		},
	}

	out := WorkoutAckMarkdown(ack)
	for _, want := range []string{
		"## Workout Logged",
		"**Exercise:** Landmine Press",
		"**Volume:** 3 sets x 10 reps",
		"**Load:** 95 lbs",
		"**Intensity:** RPE 8",
		"**Notes:** felt strong",
		"**Entry ID:** abc-123",
		"### AC Joint Safety Assessment",
		"AC-joint safe",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Warnings") {
		t.Errorf("markdown has a warnings block for a safe exercise:\n%s", out)
	}
}

func TestWorkoutAckMarkdownWarnings(t *testing.T) {
	ack := workout.Ack{
		EntryID:  "abc-123",
		Entry:    workout.Entry{Exercise: "Bench Press", Sets: 3, Reps: 5, RPE: 9},
		Safety:   safety.Result{Tier: safety.TierAvoid, Guidance: "not recommended"},
		Warnings: []string{"Swap for Landmine Press."},
	}

	out := WorkoutAckMarkdown(ack)
	if !strings.Contains(out, "**Warnings:**") || !strings.Contains(out, "- Swap for Landmine Press.") {
		t.Errorf("markdown missing the warnings block:\n%s", out)
	}
	if strings.Contains(out, "**Load:**") {
		t.Errorf("markdown shows a load line for a bodyweight entry:\n%s", out)
	}
}

func TestPlanMarkdown(t *testing.T) {
	in := hydration.Input{DurationMinutes: 90, Intensity: 9, TemperatureF: 85}
	plan, err := hydration.Compute(in)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	out := PlanMarkdown(in, plan)
	for _, want := range []string{
		"## Hydration Protocol",
		"**Workout Duration:** 90 minutes",
		"**Intensity:** 9 - Hard",
		"**Temperature:** 85°F",
		"**Estimated Loss:** 55.8 oz",
		"**Replace:** 55.8-83.7 oz",
		"**Sodium:** 2250 mg",
		"### How This Was Estimated",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Measured Sweat Rate") {
		t.Errorf("markdown shows a measured rate that was never provided:\n%s", out)
	}
}

func TestAssessmentMarkdown(t *testing.T) {
	protein := 45.0
	meal := nutrition.Meal{Time: "23:30", Description: "Chicken and rice", ProteinG: &protein}
	a := nutrition.Assessment{
		Warnings: []string{"Eating at 23:30 falls in the late-night window."},
		Accepted: true,
		EntryID:  "meal-1",
	}

	out := AssessmentMarkdown(meal, a)
	for _, want := range []string{
		"## Meal Logged",
		"**Time:** 23:30",
		"**Meal:** Chicken and rice",
		"- Protein: 45g",
		"### Late Meal Guardrail",
		"late-night window",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}

	early := nutrition.Meal{Time: "12:00", Description: "Lunch"}
	out = AssessmentMarkdown(early, nutrition.Assessment{Accepted: true, EntryID: "meal-2"})
	if strings.Contains(out, "Guardrail") {
		t.Errorf("markdown has a guardrail block for a midday meal:\n%s", out)
	}
	if strings.Contains(out, "Macros") {
		t.Errorf("markdown has a macros block when none were given:\n%s", out)
	}
}

func TestLibraryMarkdown(t *testing.T) {
	catalog := loadCatalog(t)

	out := LibraryMarkdown(catalog.All())
	for _, want := range []string{
		"# AC-Joint Safe Exercise Library",
		"## Pressing",
		"- Landmine Press",
		"- Pull-ups (caution)",
		"### Exercises to Avoid",
		"- Bench Press (flat)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
	// Avoid-tier exercises appear only in the closing section.
	if idx := strings.Index(out, "- Bench Press (flat)"); idx < strings.Index(out, "### Exercises to Avoid") {
		t.Error("avoid-tier exercise listed inside a category section")
	}

	if out := LibraryMarkdown(nil); !strings.Contains(out, "No exercises match") {
		t.Errorf("empty listing = %q, want the no-match message", out)
	}
}

func TestCardMarkdown(t *testing.T) {
	catalog := loadCatalog(t)
	ex, ok := catalog.Find("Landmine Press")
	if !ok {
		t.Fatal("Landmine Press missing from builtin catalog")
	}

	out := CardMarkdown(ex)
	for _, want := range []string{
		"# Landmine Press",
		"**Category:** Pressing",
		"**Tier:** safe",
		"**Also known as:**",
		"scapular plane",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestProtocolMarkdown(t *testing.T) {
	logger, _ := logging.NewBuffered()
	store, err := rehab.NewStore(loadCatalog(t), logger)
	if err != nil {
		t.Fatalf("loading protocols: %v", err)
	}
	p, err := store.Protocol(rehab.ACJointArthritis)
	if err != nil {
		t.Fatalf("Protocol() error = %v", err)
	}

	out := ProtocolMarkdown(p)
	for _, want := range []string{
		"# AC Joint Arthritis Rehabilitation",
		"**Overview:**",
		"## Phase 1: Pain Control & Initial Mobility (Weeks 1-3)",
		"## Phase 4: Return to Training (Week 12+)",
		"**Key Exercises:**",
		"## Key Principles",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
	// The summary previews at most three exercises per phase.
	if strings.Contains(out, "External rotation (side-lying)") {
		t.Error("summary lists a fourth exercise from phase 2")
	}
}

func TestPhaseMarkdown(t *testing.T) {
	logger, _ := logging.NewBuffered()
	store, err := rehab.NewStore(loadCatalog(t), logger)
	if err != nil {
		t.Fatalf("loading protocols: %v", err)
	}
	p, err := store.Protocol(rehab.ACJointArthritis)
	if err != nil {
		t.Fatalf("Protocol() error = %v", err)
	}
	phase, err := store.Phase(rehab.ACJointArthritis, 2)
	if err != nil {
		t.Fatalf("Phase() error = %v", err)
	}

	out := PhaseMarkdown(p, phase)
	for _, want := range []string{
		"# AC Joint Arthritis Rehabilitation",
		"## Phase 2: Strengthening & Scapular Control (Weeks 3-6)",
		"**Goals:**",
		"- **Serratus Wall Slides**",
		"  - Dosage: 3x12, daily",
		"**Restrictions:**",
		"**Progress when:**",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}
