package workout

import (
	"errors"
	"strings"
	"testing"

	"fittrack/internal/library"
	"fittrack/internal/logging"
	"fittrack/internal/safety"
)

func newTestClassifier(t *testing.T) *safety.Classifier {
	t.Helper()
	logger, _ := logging.NewBuffered()
	catalog, err := library.LoadBuiltinCatalog(logger)
	if err != nil {
		t.Fatalf("loading builtin catalog: %v", err)
	}
	return safety.NewClassifier(catalog)
}

func validEntry() Entry {
	return Entry{Exercise: "Landmine Press", Sets: 3, Reps: 10, WeightLb: 95, RPE: 8}
}

func TestAssessSafeExercise(t *testing.T) {
	cls := newTestClassifier(t)

	ack, err := Assess(validEntry(), cls)
	if err != nil {
		t.Fatalf("Assess() error = %v", err)
	}
	if ack.EntryID == "" {
		t.Error("EntryID is empty")
	}
	if ack.Entry != validEntry() {
		t.Errorf("Entry = %+v, want the input echoed back", ack.Entry)
	}
	if ack.Safety.Tier != safety.TierSafe {
		t.Errorf("Safety.Tier = %q, want safe", ack.Safety.Tier)
	}
	if len(ack.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none for a safe exercise", ack.Warnings)
	}
}

func TestAssessAvoidSuggestsAlternatives(t *testing.T) {
	cls := newTestClassifier(t)

	entry := validEntry()
	entry.Exercise = "bench press"
	ack, err := Assess(entry, cls)
	if err != nil {
		t.Fatalf("Assess() error = %v", err)
	}
	if ack.Safety.Tier != safety.TierAvoid {
		t.Fatalf("Safety.Tier = %q, want avoid", ack.Safety.Tier)
	}
	if len(ack.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want exactly one", ack.Warnings)
	}

	warning := ack.Warnings[0]
	if !strings.Contains(warning, "not recommended") {
		t.Errorf("warning %q lacks the avoid statement", warning)
	}
	// Alternatives come from safe pressing cards in the catalog.
	for _, alt := range []string{"Landmine Press", "Floor Press"} {
		if !strings.Contains(warning, alt) {
			t.Errorf("warning %q does not suggest %s", warning, alt)
		}
	}
	if strings.Contains(warning, "Bench Press (flat), ") {
		t.Errorf("warning %q suggests the flagged exercise as its own alternative", warning)
	}
}

func TestAssessCautionSurfacesCardNotes(t *testing.T) {
	cls := newTestClassifier(t)

	entry := validEntry()
	entry.Exercise = "Pull-ups"
	ack, err := Assess(entry, cls)
	if err != nil {
		t.Fatalf("Assess() error = %v", err)
	}
	if ack.Safety.Tier != safety.TierCaution {
		t.Fatalf("Safety.Tier = %q, want caution", ack.Safety.Tier)
	}
	if len(ack.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want exactly one", ack.Warnings)
	}

	card, ok := cls.Catalog().Find("Pull-ups")
	if !ok {
		t.Fatal("Pull-ups missing from builtin catalog")
	}
	if !strings.Contains(ack.Warnings[0], strings.TrimSpace(card.Notes)) {
		t.Errorf("warning %q does not carry the card's modification notes", ack.Warnings[0])
	}
}

func TestAssessUnknownCarriesGuidance(t *testing.T) {
	cls := newTestClassifier(t)

	entry := validEntry()
	entry.Exercise = "Underwater Basket Press"
	ack, err := Assess(entry, cls)
	if err != nil {
		t.Fatalf("Assess() error = %v", err)
	}
	if ack.Safety.Tier != safety.TierUnknown {
		t.Fatalf("Safety.Tier = %q, want unknown", ack.Safety.Tier)
	}
	if len(ack.Warnings) != 1 || ack.Warnings[0] != ack.Safety.Guidance {
		t.Errorf("Warnings = %v, want the classifier guidance verbatim", ack.Warnings)
	}
}

func TestAssessApproximateMatch(t *testing.T) {
	cls := newTestClassifier(t)

	entry := validEntry()
	entry.Exercise = "bench pres"
	ack, err := Assess(entry, cls)
	if err != nil {
		t.Fatalf("Assess() error = %v", err)
	}
	if ack.Safety.Tier != safety.TierAvoid {
		t.Errorf("Safety.Tier = %q, want avoid via approximate match", ack.Safety.Tier)
	}
	if ack.Safety.Confidence != safety.ConfidenceApproximate {
		t.Errorf("Confidence = %q, want approximate", ack.Safety.Confidence)
	}
	if len(ack.Warnings) == 0 {
		t.Error("Warnings empty, want the avoid warning")
	}
}

func TestAssessInvalidEntry(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Entry)
		field  string
	}{
		{"empty exercise", func(e *Entry) { e.Exercise = "  " }, "exercise_name"},
		{"zero sets", func(e *Entry) { e.Sets = 0 }, "sets"},
		{"too many sets", func(e *Entry) { e.Sets = 11 }, "sets"},
		{"zero reps", func(e *Entry) { e.Reps = 0 }, "reps"},
		{"too many reps", func(e *Entry) { e.Reps = 51 }, "reps"},
		{"negative weight", func(e *Entry) { e.WeightLb = -1 }, "weight_lbs"},
		{"rpe below scale", func(e *Entry) { e.RPE = 5 }, "rpe"},
		{"rpe above scale", func(e *Entry) { e.RPE = 11 }, "rpe"},
		{"notes too long", func(e *Entry) { e.Notes = strings.Repeat("x", MaxNotesLen+1) }, "notes"},
	}

	cls := newTestClassifier(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := validEntry()
			tt.mutate(&entry)

			_, err := Assess(entry, cls)
			if err == nil {
				t.Fatal("Assess() expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidEntry) {
				t.Errorf("errors.Is(err, ErrInvalidEntry) = false for %v", err)
			}
			var invErr *InvalidEntryError
			if !errors.As(err, &invErr) {
				t.Fatalf("error %v is not an InvalidEntryError", err)
			}
			if invErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", invErr.Field, tt.field)
			}
		})
	}
}

func TestAssessBodyweightEntry(t *testing.T) {
	cls := newTestClassifier(t)

	entry := Entry{Exercise: "Scapular Push-ups", Sets: 3, Reps: 15, WeightLb: 0, RPE: 6}
	ack, err := Assess(entry, cls)
	if err != nil {
		t.Fatalf("Assess() error = %v", err)
	}
	if ack.Safety.Tier != safety.TierSafe {
		t.Errorf("Safety.Tier = %q, want safe", ack.Safety.Tier)
	}
}
