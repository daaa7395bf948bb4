package models

import "testing"

// TestPrescriptionMissingWeek verifies an exercise without an entry for a
// week reports ok=false, which is how week-limited exercises are encoded.
func TestPrescriptionMissingWeek(t *testing.T) {
	ex := Exercise{
		Name: "Eccentric Pull Ups",
		Weeks: map[int]ExerciseSet{
			1: {Sets: "3", Reps: "5"},
			2: {Sets: "3", Reps: "6"},
		},
	}

	set, ok := ex.Prescription(2)
	if !ok || set.Reps != "6" {
		t.Errorf("Prescription(2) = %+v, %v; want reps 6, true", set, ok)
	}
	if _, ok := ex.Prescription(4); ok {
		t.Error("Prescription(4) ok = true, want false")
	}
}

// TestDisplayTitle verifies untitled sections fall back to their type.
func TestDisplayTitle(t *testing.T) {
	s := WorkoutSection{Type: SectionCircuit}
	if got := s.DisplayTitle(); got != "Circuit" {
		t.Errorf("DisplayTitle = %q, want %q", got, "Circuit")
	}
	s.Title = "Sprints"
	if got := s.DisplayTitle(); got != "Sprints" {
		t.Errorf("DisplayTitle = %q, want %q", got, "Sprints")
	}
}

// TestTypeValidation verifies the enumerated tags.
func TestTypeValidation(t *testing.T) {
	for _, wt := range []WorkoutType{WorkoutStrength, WorkoutRun, WorkoutMetcon, WorkoutRest, WorkoutAerobic} {
		if !wt.Valid() {
			t.Errorf("%q.Valid() = false", wt)
		}
	}
	if WorkoutType("Yoga").Valid() {
		t.Error(`"Yoga".Valid() = true`)
	}
	if SectionType("Finisher").Valid() {
		t.Error(`"Finisher".Valid() = true`)
	}
	if !SectionWarmUp.Valid() {
		t.Error(`"Warm Up".Valid() = false`)
	}
}
