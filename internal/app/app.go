// Package app is the application root: it owns the program start date, the
// progress store and the current view, and turns user intents into store
// mutations.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/meltforce/tacticalfit/internal/models"
	"github.com/meltforce/tacticalfit/internal/progress"
	"github.com/meltforce/tacticalfit/internal/schedule"
)

// StartDateKey is the backend key holding the program start date.
const StartDateKey = "start_date"

var (
	// ErrResetNotConfirmed guards the irreversible progress reset.
	ErrResetNotConfirmed = errors.New("progress reset requires confirmation")
	// ErrUnknownExercise is returned when toggling a name the day's plan lacks.
	ErrUnknownExercise = errors.New("exercise not in the day's workout")
)

// View is one of the three mutually exclusive screens.
type View string

const (
	ViewSchedule View = "schedule"
	ViewDaily    View = "daily"
	ViewSettings View = "settings"
)

// Observer receives notifications of progress mutations.
type Observer interface {
	ExerciseToggled(completed bool)
	ProgressReset()
}

type nopObserver struct{}

func (nopObserver) ExerciseToggled(bool) {}
func (nopObserver) ProgressReset()       {}

// Option configures an App.
type Option func(*App)

// WithClock overrides the source of "now"; the clock's location decides
// which calendar day is today.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithObserver registers an observer for progress mutations.
func WithObserver(o Observer) Option {
	return func(a *App) { a.observer = o }
}

// App holds all mutable application state.
type App struct {
	mu       sync.Mutex
	kv       progress.Backend
	resolver *schedule.Resolver
	store    *progress.Store
	log      *slog.Logger
	now      func() time.Time
	observer Observer

	startDate time.Time
	view      View
	selected  time.Time
}

// New loads persisted state from kv. A missing or unreadable start date is
// replaced by the Monday of the current week and written back.
func New(ctx context.Context, kv progress.Backend, resolver *schedule.Resolver, log *slog.Logger, opts ...Option) (*App, error) {
	a := &App{
		kv:       kv,
		resolver: resolver,
		log:      log,
		now:      time.Now,
		observer: nopObserver{},
		view:     ViewDaily,
	}
	for _, opt := range opts {
		opt(a)
	}

	start, err := a.loadStartDate(ctx)
	if err != nil {
		return nil, err
	}
	a.startDate = start

	store, err := progress.Load(ctx, kv, log)
	if err != nil {
		return nil, fmt.Errorf("loading progress: %w", err)
	}
	a.store = store
	a.selected = a.Today()
	return a, nil
}

func (a *App) loadStartDate(ctx context.Context) (time.Time, error) {
	raw, ok, err := a.kv.Get(ctx, StartDateKey)
	if err != nil {
		return time.Time{}, fmt.Errorf("reading %s: %w", StartDateKey, err)
	}
	if ok {
		d, err := models.ParseDate(raw)
		if err == nil {
			return d, nil
		}
		a.log.Warn("ignoring unreadable start date", "value", raw, "error", err)
	}

	d := schedule.DefaultStartDate(a.Today())
	if err := a.kv.Set(ctx, StartDateKey, formatStartDate(d)); err != nil {
		return time.Time{}, fmt.Errorf("writing %s: %w", StartDateKey, err)
	}
	a.log.Info("program start date defaulted", "start_date", models.DateKey(d))
	return d, nil
}

func formatStartDate(d time.Time) string {
	return models.DateOf(d).Format(time.RFC3339)
}

// Today returns the current calendar date.
func (a *App) Today() time.Time {
	return models.DateOf(a.now())
}

// Resolver returns the schedule resolver.
func (a *App) Resolver() *schedule.Resolver {
	return a.resolver
}

// Progress returns the progress store.
func (a *App) Progress() *progress.Store {
	return a.store
}

// StartDate returns the program's anchor date.
func (a *App) StartDate() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.startDate
}

// SetStartDate persists a new anchor date.
func (a *App) SetStartDate(ctx context.Context, d time.Time) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.setStartDateLocked(ctx, d)
}

func (a *App) setStartDateLocked(ctx context.Context, d time.Time) error {
	d = models.DateOf(d)
	if err := a.kv.Set(ctx, StartDateKey, formatStartDate(d)); err != nil {
		return fmt.Errorf("writing %s: %w", StartDateKey, err)
	}
	a.startDate = d
	a.log.Info("program start date changed", "start_date", models.DateKey(d))
	return nil
}

// ShiftSchedule moves the start date by days (negative moves it earlier),
// pushing every scheduled workout by the same amount.
func (a *App) ShiftSchedule(ctx context.Context, days int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.setStartDateLocked(ctx, models.AddDays(a.startDate, days))
}

// Resolve returns the workout scheduled on date.
func (a *App) Resolve(date time.Time) schedule.Assignment {
	return a.resolver.Resolve(a.StartDate(), date)
}

// ToggleExercise flips completion of exercise on date. The exercise must be
// part of the workout scheduled that day.
func (a *App) ToggleExercise(ctx context.Context, date time.Time, exercise string) (bool, error) {
	plan := a.Resolve(date).Workout
	if !hasExercise(plan, exercise) {
		return false, fmt.Errorf("%w: %q on %s", ErrUnknownExercise, exercise, models.DateKey(date))
	}

	completed, err := a.store.Toggle(ctx, models.DateKey(date), exercise)
	if err != nil {
		return completed, err
	}
	a.observer.ExerciseToggled(completed)
	a.log.Debug("exercise toggled", "date", models.DateKey(date), "exercise", exercise, "completed", completed)
	return completed, nil
}

// ToggleSelected toggles exercise on the currently selected date.
func (a *App) ToggleSelected(ctx context.Context, exercise string) (bool, error) {
	return a.ToggleExercise(ctx, a.State().Selected, exercise)
}

// ResetProgress erases all progress. It refuses unless confirmed is true.
func (a *App) ResetProgress(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrResetNotConfirmed
	}
	if err := a.store.ResetAll(ctx); err != nil {
		return err
	}
	a.observer.ProgressReset()
	a.log.Warn("all progress reset")
	return nil
}

func hasExercise(plan *models.DailyWorkoutPlan, name string) bool {
	for _, s := range plan.Sections {
		for _, e := range s.Exercises {
			if e.Name == name {
				return true
			}
		}
	}
	return false
}
