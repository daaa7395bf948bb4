package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue metrics
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

// TestExerciseToggled verifies toggles are counted per resulting state.
func TestExerciseToggled(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()
	m.ExerciseToggled(true)
	m.ExerciseToggled(true)
	m.ExerciseToggled(false)

	name := "tacticalfit_test_exercise_toggles_total"
	if got := counterValue(t, reg, name, map[string]string{"state": "completed"}); got != 2 {
		t.Errorf("completed = %v, want 2", got)
	}
	if got := counterValue(t, reg, name, map[string]string{"state": "cleared"}); got != 1 {
		t.Errorf("cleared = %v, want 1", got)
	}
}

// TestProgressReset verifies confirmed resets are counted.
func TestProgressReset(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()
	m.ProgressReset()
	if got := counterValue(t, reg, "tacticalfit_test_progress_resets_total", nil); got != 1 {
		t.Errorf("resets = %v, want 1", got)
	}
}

// TestSetupPrometheus verifies the runtime collectors are registered and a
// manager can share the registry.
func TestSetupPrometheus(t *testing.T) {
	reg := SetupPrometheus()
	m := NewManager("tacticalfit", "", reg)
	m.CounterRequests.WithLabelValues("GET", "200").Inc()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	seen := map[string]bool{}
	for _, mf := range families {
		seen[mf.GetName()] = true
	}
	for _, want := range []string{"go_goroutines", "tacticalfit_requests_total"} {
		if !seen[want] {
			t.Errorf("metric %s not registered", want)
		}
	}
}
