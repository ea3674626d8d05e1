package nutrition

import (
	"errors"
	"strings"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func validMeal(timeOfDay string) Meal {
	return Meal{Time: timeOfDay, Description: "Chicken, rice, and broccoli"}
}

func TestEvaluateLateWindow(t *testing.T) {
	tests := []struct {
		time string
		warn bool
	}{
		{"20:59", false},
		{"21:00", true},
		{"23:30", true},
		{"23:59", true},
		{"00:00", true},
		{"03:15", true},
		{"05:59", true},
		{"06:00", false},
		{"12:00", false},
		{"19:45", false},
	}

	for _, tt := range tests {
		t.Run(tt.time, func(t *testing.T) {
			a, err := Evaluate(validMeal(tt.time))
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if !a.Accepted {
				t.Error("Accepted = false, want true: the guard never rejects a valid meal")
			}
			if a.EntryID == "" {
				t.Error("EntryID is empty")
			}
			if tt.warn {
				if len(a.Warnings) != 1 {
					t.Fatalf("Warnings = %v, want exactly one late-meal warning", a.Warnings)
				}
				if !strings.Contains(a.Warnings[0], tt.time) {
					t.Errorf("warning %q does not mention the meal time %s", a.Warnings[0], tt.time)
				}
				if !strings.Contains(a.Warnings[0], "sleep") {
					t.Errorf("warning %q does not mention sleep", a.Warnings[0])
				}
			} else if len(a.Warnings) != 0 {
				t.Errorf("Warnings = %v, want none for %s", a.Warnings, tt.time)
			}
		})
	}
}

func TestEvaluateEntryIDsUnique(t *testing.T) {
	first, err := Evaluate(validMeal("12:30"))
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	second, err := Evaluate(validMeal("12:30"))
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if first.EntryID == second.EntryID {
		t.Errorf("EntryID repeated across evaluations: %s", first.EntryID)
	}
}

func TestEvaluateMacros(t *testing.T) {
	meal := validMeal("18:00")
	meal.ProteinG = floatPtr(45)
	meal.CarbsG = floatPtr(80)
	meal.FatG = floatPtr(20)
	meal.Calories = intPtr(680)

	a, err := Evaluate(meal)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if !a.Accepted || len(a.Warnings) != 0 {
		t.Errorf("Assessment = %+v, want accepted with no warnings", a)
	}
}

func TestEvaluateInvalidMeal(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Meal)
		field  string
	}{
		{"single digit hour", func(m *Meal) { m.Time = "9:00" }, "meal_time"},
		{"hour out of range", func(m *Meal) { m.Time = "24:00" }, "meal_time"},
		{"minute out of range", func(m *Meal) { m.Time = "12:60" }, "meal_time"},
		{"no separator", func(m *Meal) { m.Time = "1200" }, "meal_time"},
		{"not a time", func(m *Meal) { m.Time = "ab:cd" }, "meal_time"},
		{"empty time", func(m *Meal) { m.Time = "" }, "meal_time"},
		{"empty description", func(m *Meal) { m.Description = "" }, "meal_description"},
		{"blank description", func(m *Meal) { m.Description = "   " }, "meal_description"},
		{"description too long", func(m *Meal) { m.Description = strings.Repeat("x", MaxDescriptionLen+1) }, "meal_description"},
		{"negative protein", func(m *Meal) { m.ProteinG = floatPtr(-1) }, "protein_g"},
		{"protein too high", func(m *Meal) { m.ProteinG = floatPtr(301) }, "protein_g"},
		{"carbs too high", func(m *Meal) { m.CarbsG = floatPtr(501) }, "carbs_g"},
		{"fat too high", func(m *Meal) { m.FatG = floatPtr(201) }, "fat_g"},
		{"negative calories", func(m *Meal) { m.Calories = intPtr(-5) }, "calories"},
		{"calories too high", func(m *Meal) { m.Calories = intPtr(5001) }, "calories"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meal := validMeal("12:00")
			tt.mutate(&meal)

			_, err := Evaluate(meal)
			if err == nil {
				t.Fatal("Evaluate() expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidMeal) {
				t.Errorf("errors.Is(err, ErrInvalidMeal) = false for %v", err)
			}
			var invErr *InvalidMealError
			if !errors.As(err, &invErr) {
				t.Fatalf("error %v is not an InvalidMealError", err)
			}
			if invErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", invErr.Field, tt.field)
			}
		})
	}
}

func TestEvaluateBoundaryMacros(t *testing.T) {
	meal := validMeal("12:00")
	meal.ProteinG = floatPtr(MaxProteinG)
	meal.CarbsG = floatPtr(0)
	meal.FatG = floatPtr(MaxFatG)
	meal.Calories = intPtr(MaxCalories)

	if _, err := Evaluate(meal); err != nil {
		t.Errorf("Evaluate() at inclusive bounds returned error: %v", err)
	}
}
