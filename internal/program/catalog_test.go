package program

import (
	"strings"
	"testing"

	"github.com/meltforce/tacticalfit/internal/models"
)

// TestDefaultCatalog verifies the embedded program parses and has the nine
// session templates with the expected types.
func TestDefaultCatalog(t *testing.T) {
	c := Default()

	plans := c.Plans()
	if len(plans) != 9 {
		t.Fatalf("len(Plans) = %d, want 9", len(plans))
	}

	counts := map[models.WorkoutType]int{}
	for _, p := range plans {
		counts[p.Type]++
	}
	if counts[models.WorkoutStrength] != 6 {
		t.Errorf("strength plans = %d, want 6", counts[models.WorkoutStrength])
	}
	if counts[models.WorkoutRun] != 2 {
		t.Errorf("run plans = %d, want 2", counts[models.WorkoutRun])
	}
	if counts[models.WorkoutRest] != 1 {
		t.Errorf("rest plans = %d, want 1", counts[models.WorkoutRest])
	}

	if c.Rest().ID != "rest" {
		t.Errorf("Rest().ID = %q, want rest", c.Rest().ID)
	}
}

// TestRotations verifies the day-index tables, including phase 2 reusing the
// phase 1 conditioning plans.
func TestRotations(t *testing.T) {
	c := Default()

	want1 := []string{"p1_d1", "p1_cond_a", "p1_d2", "p1_cond_b", "p1_d3", "rest", "rest"}
	want2 := []string{"p2_d1", "p1_cond_a", "p2_d2", "p1_cond_b", "p2_d3", "rest", "rest"}

	r1, r2 := c.Rotation(1), c.Rotation(2)
	for i := 0; i < DaysPerWeek; i++ {
		if r1[i].ID != want1[i] {
			t.Errorf("phase1[%d] = %s, want %s", i, r1[i].ID, want1[i])
		}
		if r2[i].ID != want2[i] {
			t.Errorf("phase2[%d] = %s, want %s", i, r2[i].ID, want2[i])
		}
	}
	if r1[1] != r2[1] || r1[3] != r2[3] {
		t.Error("phase 2 conditioning days should share the phase 1 plans")
	}
}

// TestExerciseNamesUniquePerPlan verifies no plan repeats an exercise name,
// since completion tracking keys on the name alone.
func TestExerciseNamesUniquePerPlan(t *testing.T) {
	for _, p := range Default().Plans() {
		seen := map[string]bool{}
		for _, s := range p.Sections {
			for _, e := range s.Exercises {
				if seen[e.Name] {
					t.Errorf("plan %s: duplicate exercise %q", p.ID, e.Name)
				}
				seen[e.Name] = true
			}
		}
	}
}

// TestPlanContent spot-checks authored prescriptions.
func TestPlanContent(t *testing.T) {
	p, ok := Default().Plan("p1_d1")
	if !ok {
		t.Fatal("p1_d1 not found")
	}
	var found bool
	for _, s := range p.Sections {
		for _, e := range s.Exercises {
			if e.Name == "DB Front Squat (or Goblet)" {
				found = true
				set, ok := e.Prescription(1)
				if !ok {
					t.Fatal("DB Front Squat has no week 1 prescription")
				}
				if set.Sets != "1" || set.Reps != "8 (wu)" || set.Intensity != "Then 1-2x8" {
					t.Errorf("week 1 = %+v", set)
				}
			}
		}
	}
	if !found {
		t.Error("DB Front Squat (or Goblet) not in p1_d1")
	}

	// Light Jog has authored-but-empty prescriptions; they still count as present.
	cond, _ := Default().Plan("p1_cond_a")
	jog := cond.Sections[0].Exercises[0]
	if _, ok := jog.Prescription(3); !ok {
		t.Error("Light Jog week 3 prescription missing")
	}
}

// TestLoadInvalid verifies validation failures produce descriptive errors.
func TestLoadInvalid(t *testing.T) {
	const base = `
rest_plan: rest
rotations:
  phase1: [a, rest, rest, rest, rest, rest, rest]
  phase2: [a, rest, rest, rest, rest, rest, rest]
plans:
  - id: a
    title: A
    type: Strength
    sections:
      - type: Strength
        exercises:
          - name: Squat
            weeks:
              1: {sets: "3", reps: "5"}
  - id: rest
    title: Rest
    type: Rest
    sections: []
`
	if _, err := Load([]byte(base)); err != nil {
		t.Fatalf("base document should load: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(string) string
		wantErr string
	}{
		{"bad yaml", func(string) string { return "plans: [" }, "parsing catalog"},
		{"unknown plan in rotation", func(s string) string {
			return strings.Replace(s, "phase2: [a,", "phase2: [b,", 1)
		}, "unknown plan"},
		{"short rotation", func(s string) string {
			return strings.Replace(s, "phase1: [a, rest, rest, rest, rest, rest, rest]", "phase1: [a, rest]", 1)
		}, "2 entries"},
		{"rest plan wrong type", func(s string) string {
			return strings.Replace(s, "type: Rest", "type: Run", 1)
		}, "want Rest"},
		{"week out of range", func(s string) string {
			return strings.Replace(s, `1: {sets: "3"`, `5: {sets: "3"`, 1)
		}, "out of range"},
		{"unknown workout type", func(s string) string {
			return strings.Replace(s, "type: Strength\n    sections", "type: Yoga\n    sections", 1)
		}, "unknown workout type"},
		{"duplicate id", func(s string) string {
			return strings.Replace(s, "id: rest", "id: a", 1)
		}, "duplicate plan id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.mutate(base)))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}
