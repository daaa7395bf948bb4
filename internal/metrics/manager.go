package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests        *prometheus.CounterVec
	CounterExerciseToggles *prometheus.CounterVec
	CounterProgressResets  prometheus.Counter

	// gauges
	GaugeLifeSignal prometheus.Gauge

	// histograms
	HistogramRequestDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("tacticalfit", "test", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("tacticalfit", "test", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "requests_total",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterExerciseToggles := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "exercise_toggles_total",
		Help:      "The total number of exercise completion toggles, by resulting state",
	}, []string{"state"})
	counterProgressResets := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "progress_resets_total",
		Help:      "The total number of confirmed progress resets",
	})

	gaugeLifeSignal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "life_signal",
		Help:      "Shows whether the service is alive",
	})

	histogramRequestDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Histogram of response time for requests in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"route", "method", "status_code"})

	return &Manager{
		CounterRequests:          counterRequests,
		CounterExerciseToggles:   counterExerciseToggles,
		CounterProgressResets:    counterProgressResets,
		GaugeLifeSignal:          gaugeLifeSignal,
		HistogramRequestDuration: histogramRequestDuration,
	}
}

// ExerciseToggled counts a completion toggle by its resulting state.
func (m *Manager) ExerciseToggled(completed bool) {
	state := "cleared"
	if completed {
		state = "completed"
	}
	m.CounterExerciseToggles.WithLabelValues(state).Inc()
}

// ProgressReset counts a confirmed reset.
func (m *Manager) ProgressReset() {
	m.CounterProgressResets.Inc()
}
