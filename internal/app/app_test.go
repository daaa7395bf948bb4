package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/meltforce/tacticalfit/internal/program"
	"github.com/meltforce/tacticalfit/internal/progress"
	"github.com/meltforce/tacticalfit/internal/schedule"
	"github.com/meltforce/tacticalfit/internal/storage"
)

// Wednesday of program week one for a 2026-01-19 start.
var wednesday = time.Date(2026, 1, 21, 9, 30, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestApp(t *testing.T, kv progress.Backend, opts ...Option) *App {
	t.Helper()
	opts = append([]Option{WithClock(fixedClock(wednesday))}, opts...)
	a, err := New(context.Background(), kv, schedule.New(program.Default()), discardLogger(), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

type countingObserver struct {
	toggles map[bool]int
	resets  int
}

func (c *countingObserver) ExerciseToggled(completed bool) { c.toggles[completed]++ }
func (c *countingObserver) ProgressReset()                 { c.resets++ }

type failingKV struct {
	*storage.Memory
	failSet bool
}

func (f *failingKV) Set(ctx context.Context, key, value string) error {
	if f.failSet {
		return errors.New("disk full")
	}
	return f.Memory.Set(ctx, key, value)
}

// TestNewDefaultsStartDate verifies a fresh backend gets the Monday of the
// current week, persisted as an RFC3339 timestamp.
func TestNewDefaultsStartDate(t *testing.T) {
	kv := storage.NewMemory()
	a := newTestApp(t, kv)

	want := time.Date(2026, 1, 19, 0, 0, 0, 0, time.UTC)
	if !a.StartDate().Equal(want) {
		t.Errorf("StartDate = %v, want %v", a.StartDate(), want)
	}
	raw, ok, _ := kv.Get(context.Background(), StartDateKey)
	if !ok || raw != "2026-01-19T00:00:00Z" {
		t.Errorf("persisted start_date = %q, %v", raw, ok)
	}
}

// TestNewReadsStartDate verifies a stored start date is used as is.
func TestNewReadsStartDate(t *testing.T) {
	tests := []struct {
		name, stored, want string
	}{
		{"rfc3339", "2025-12-01T00:00:00Z", "2025-12-01"},
		{"rfc3339 offset", "2025-12-01T00:00:00+02:00", "2025-12-01"},
		{"date only", "2025-12-01", "2025-12-01"},
		{"garbage", "next tuesday", "2026-01-19"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := storage.NewMemory()
			kv.Set(context.Background(), StartDateKey, tt.stored)
			a := newTestApp(t, kv)
			if got := a.Settings().StartDate; got != tt.want {
				t.Errorf("StartDate = %s, want %s", got, tt.want)
			}
		})
	}
}

// TestInitialState verifies the app opens on the daily screen for today.
func TestInitialState(t *testing.T) {
	a := newTestApp(t, storage.NewMemory())
	s := a.State()
	if s.View != ViewDaily || s.Date != "2026-01-21" {
		t.Errorf("State = %+v, want daily 2026-01-21", s)
	}
}

// TestViewTransitions walks the state machine through every intent.
func TestViewTransitions(t *testing.T) {
	a := newTestApp(t, storage.NewMemory())

	steps := []struct {
		name     string
		intent   func() State
		wantView View
		wantDate string
	}{
		{"back to schedule", a.Back, ViewSchedule, "2026-01-21"},
		{"back is a no-op on schedule", a.Back, ViewSchedule, "2026-01-21"},
		{"select a date", func() State { return a.SelectDate(time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)) }, ViewDaily, "2026-02-02"},
		{"next day", a.NextDay, ViewDaily, "2026-02-03"},
		{"prev day twice", func() State { a.PrevDay(); return a.PrevDay() }, ViewDaily, "2026-02-01"},
		{"open settings", a.OpenSettings, ViewSettings, "2026-02-01"},
		{"day stepping ignored in settings", a.NextDay, ViewSettings, "2026-02-01"},
		{"close settings", a.CloseSettings, ViewDaily, "2026-02-01"},
		{"close is a no-op on daily", a.CloseSettings, ViewDaily, "2026-02-01"},
		{"show schedule", a.ShowSchedule, ViewSchedule, "2026-02-01"},
		{"toggle settings from schedule", a.ToggleSettings, ViewSettings, "2026-02-01"},
		{"toggle settings closes to daily", a.ToggleSettings, ViewDaily, "2026-02-01"},
		{"select from settings", func() State {
			a.OpenSettings()
			return a.SelectDate(time.Date(2026, 1, 19, 23, 0, 0, 0, time.UTC))
		}, ViewDaily, "2026-01-19"},
	}
	for _, st := range steps {
		got := st.intent()
		if got.View != st.wantView || got.Date != st.wantDate {
			t.Fatalf("%s: got %s %s, want %s %s", st.name, got.View, got.Date, st.wantView, st.wantDate)
		}
	}
}

// TestToggleExercise verifies toggles update the daily view and reach the
// observer.
func TestToggleExercise(t *testing.T) {
	obs := &countingObserver{toggles: map[bool]int{}}
	a := newTestApp(t, storage.NewMemory(), WithObserver(obs))
	ctx := context.Background()

	// 2026-01-21 is p1_d2.
	done, err := a.ToggleSelected(ctx, "A2: Push Ups")
	if err != nil || !done {
		t.Fatalf("ToggleSelected = %v, %v", done, err)
	}

	v := a.Daily(wednesday)
	if v.PlanID != "p1_d2" || !v.IsToday {
		t.Fatalf("Daily = %s today=%v", v.PlanID, v.IsToday)
	}
	if v.Progress.Completed != 1 || v.Progress.Total != 11 {
		t.Errorf("Progress = %+v, want 1/11", v.Progress)
	}
	var found bool
	for _, s := range v.Sections {
		for _, e := range s.Exercises {
			if e.Name == "A2: Push Ups" {
				found = true
				if !e.Completed || e.Prescription == nil {
					t.Errorf("exercise view = %+v", e)
				}
			}
		}
	}
	if !found {
		t.Error("A2: Push Ups missing from daily view")
	}

	if done, _ := a.ToggleExercise(ctx, wednesday, "A2: Push Ups"); done {
		t.Error("second toggle should clear completion")
	}
	if obs.toggles[true] != 1 || obs.toggles[false] != 1 {
		t.Errorf("observer toggles = %v", obs.toggles)
	}
}

// TestToggleUnknownExercise verifies names outside the day's plan are rejected.
func TestToggleUnknownExercise(t *testing.T) {
	a := newTestApp(t, storage.NewMemory())
	_, err := a.ToggleExercise(context.Background(), wednesday, "Bench Press")
	if !errors.Is(err, ErrUnknownExercise) {
		t.Fatalf("err = %v, want ErrUnknownExercise", err)
	}
	if len(a.Progress().Snapshot()) != 0 {
		t.Error("rejected toggle was recorded")
	}
}

// TestResetProgressRequiresConfirmation verifies reset is refused until
// confirmed and then clears everything.
func TestResetProgressRequiresConfirmation(t *testing.T) {
	obs := &countingObserver{toggles: map[bool]int{}}
	kv := storage.NewMemory()
	a := newTestApp(t, kv, WithObserver(obs))
	ctx := context.Background()
	a.ToggleSelected(ctx, "A2: Push Ups")

	if err := a.ResetProgress(ctx, false); !errors.Is(err, ErrResetNotConfirmed) {
		t.Fatalf("unconfirmed reset err = %v", err)
	}
	if len(a.Progress().Snapshot()) != 1 {
		t.Fatal("unconfirmed reset cleared progress")
	}

	if err := a.ResetProgress(ctx, true); err != nil {
		t.Fatalf("ResetProgress: %v", err)
	}
	if len(a.Progress().Snapshot()) != 0 || obs.resets != 1 {
		t.Errorf("after reset: %d days, %d resets", len(a.Progress().Snapshot()), obs.resets)
	}
	if _, ok, _ := kv.Get(ctx, progress.Key); ok {
		t.Error("progress key survived reset")
	}
	if _, ok, _ := kv.Get(ctx, StartDateKey); !ok {
		t.Error("reset removed the start date")
	}
}

// TestShiftSchedule verifies shifting moves every workout by the same number
// of days.
func TestShiftSchedule(t *testing.T) {
	kv := storage.NewMemory()
	a := newTestApp(t, kv)
	ctx := context.Background()

	if got := a.Resolve(wednesday).Workout.ID; got != "p1_d2" {
		t.Fatalf("before shift = %s", got)
	}
	if err := a.ShiftSchedule(ctx, 2); err != nil {
		t.Fatal(err)
	}
	if got := a.Resolve(wednesday.AddDate(0, 0, 2)).Workout.ID; got != "p1_d2" {
		t.Errorf("after +2 shift = %s, want p1_d2", got)
	}
	if got := a.Resolve(wednesday).Workout.ID; got != "p1_d1" {
		t.Errorf("original date after +2 shift = %s, want p1_d1", got)
	}
	raw, _, _ := kv.Get(ctx, StartDateKey)
	if raw != "2026-01-21T00:00:00Z" {
		t.Errorf("persisted = %s", raw)
	}

	if err := a.ShiftSchedule(ctx, -9); err != nil {
		t.Fatal(err)
	}
	if got := a.Settings().StartDate; got != "2026-01-12" {
		t.Errorf("StartDate after -9 = %s", got)
	}
}

// TestSetStartDateFailure verifies a failed write keeps the old start date.
func TestSetStartDateFailure(t *testing.T) {
	kv := &failingKV{Memory: storage.NewMemory()}
	a := newTestApp(t, kv)
	kv.failSet = true

	err := a.SetStartDate(context.Background(), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	if err == nil {
		t.Fatal("expected error")
	}
	if got := a.Settings().StartDate; got != "2026-01-19" {
		t.Errorf("StartDate = %s after failed write", got)
	}
}

// TestDailyBeforeStart verifies dates before the start render as rest days.
func TestDailyBeforeStart(t *testing.T) {
	a := newTestApp(t, storage.NewMemory())
	v := a.Daily(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if !v.BeforeStart || !v.Rest || v.ProgramWeek != 0 || v.Progress.Total != 0 {
		t.Errorf("Daily before start = %+v", v)
	}
}

// TestSchedule verifies the schedule grid covers eight weeks, flags the
// current week and today, and rolls completions up.
func TestSchedule(t *testing.T) {
	a := newTestApp(t, storage.NewMemory())
	a.ToggleSelected(context.Background(), "A2: Push Ups")

	v := a.Schedule()
	if v.StartDate != "2026-01-19" || v.CurrentWeek != 1 || len(v.Weeks) != 8 {
		t.Fatalf("Schedule = %s week %d, %d weeks", v.StartDate, v.CurrentWeek, len(v.Weeks))
	}

	w1 := v.Weeks[0]
	if !w1.Current || w1.Phase != 1 || w1.StartDate != "2026-01-19" || w1.EndDate != "2026-01-25" {
		t.Errorf("week 1 = %+v", w1)
	}
	if w1.Progress.Total != 32 || w1.Progress.Completed != 1 {
		t.Errorf("week 1 progress = %+v", w1.Progress)
	}
	if !w1.Days[2].IsToday || w1.Days[2].Weekday != "Wed" || w1.Days[2].PlanID != "p1_d2" {
		t.Errorf("wednesday cell = %+v", w1.Days[2])
	}
	if v.Weeks[4].Phase != 2 || v.Weeks[4].Current {
		t.Errorf("week 5 = phase %d current %v", v.Weeks[4].Phase, v.Weeks[4].Current)
	}
}

// TestScheduleCurrentWeekUnclamped verifies no row is highlighted once the
// program has run past week 8.
func TestScheduleCurrentWeekUnclamped(t *testing.T) {
	later := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	kv := storage.NewMemory()
	kv.Set(context.Background(), StartDateKey, "2026-01-19T00:00:00Z")
	a := newTestApp(t, kv, WithClock(fixedClock(later)))

	v := a.Schedule()
	if v.CurrentWeek <= schedule.ProgramWeeks {
		t.Fatalf("CurrentWeek = %d, want past 8", v.CurrentWeek)
	}
	for _, w := range v.Weeks {
		if w.Current {
			t.Errorf("week %d highlighted", w.ProgramWeek)
		}
	}
}

// TestClockLocation verifies today follows the clock's location.
func TestClockLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	// 2026-01-25 20:00 UTC is already Monday 2026-01-26 at UTC+10.
	now := time.Date(2026, 1, 25, 20, 0, 0, 0, time.UTC).In(loc)
	a := newTestApp(t, storage.NewMemory(), WithClock(fixedClock(now)))

	if got := a.State().Date; got != "2026-01-26" {
		t.Errorf("today = %s, want 2026-01-26", got)
	}
	if got := a.Settings().StartDate; got != "2026-01-26" {
		t.Errorf("default start = %s, want 2026-01-26", got)
	}
}
