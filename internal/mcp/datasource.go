package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/meltforce/tacticalfit/internal/aggregate"
	"github.com/meltforce/tacticalfit/internal/app"
	"github.com/meltforce/tacticalfit/internal/models"
	"github.com/meltforce/tacticalfit/internal/schedule"
)

// ToggleResult is the outcome of a completion toggle.
type ToggleResult struct {
	Date      string          `json:"date"`
	Exercise  string          `json:"exercise"`
	Completed bool            `json:"completed"`
	Progress  aggregate.Tally `json:"progress"`
}

// ProgramCatalog lists every plan and the two day-index rotations by id.
type ProgramCatalog struct {
	Plans  []*models.DailyWorkoutPlan `json:"plans"`
	Phase1 []string                   `json:"phase1"`
	Phase2 []string                   `json:"phase2"`
}

// DataSource abstracts the tracker for MCP tools. Both Local (in-process)
// and HTTPClient (remote via REST API) satisfy this interface. An empty date
// means today.
type DataSource interface {
	Daily(ctx context.Context, date string) (*app.DailyView, error)
	ToggleExercise(ctx context.Context, date, exercise string) (*ToggleResult, error)
	Schedule(ctx context.Context) (*app.ScheduleView, error)
	Week(ctx context.Context, week int) (*app.ScheduleWeek, error)
	SetStartDate(ctx context.Context, date string) (*app.SettingsView, error)
	Program(ctx context.Context) (*ProgramCatalog, error)
}

// Local serves MCP requests straight from an in-process App.
type Local struct {
	app *app.App
}

// Compile-time check: *Local satisfies DataSource.
var _ DataSource = (*Local)(nil)

// NewLocal wraps a.
func NewLocal(a *app.App) *Local {
	return &Local{app: a}
}

func (l *Local) date(s string) (time.Time, error) {
	if s == "" {
		return l.app.Today(), nil
	}
	return models.ParseDate(s)
}

func (l *Local) Daily(_ context.Context, date string) (*app.DailyView, error) {
	d, err := l.date(date)
	if err != nil {
		return nil, err
	}
	v := l.app.Daily(d)
	return &v, nil
}

func (l *Local) ToggleExercise(ctx context.Context, date, exercise string) (*ToggleResult, error) {
	d, err := l.date(date)
	if err != nil {
		return nil, err
	}
	completed, err := l.app.ToggleExercise(ctx, d, exercise)
	if err != nil {
		return nil, err
	}
	v := l.app.Daily(d)
	return &ToggleResult{Date: v.Date, Exercise: exercise, Completed: completed, Progress: v.Progress}, nil
}

func (l *Local) Schedule(_ context.Context) (*app.ScheduleView, error) {
	v := l.app.Schedule()
	return &v, nil
}

func (l *Local) Week(_ context.Context, week int) (*app.ScheduleWeek, error) {
	if week < 1 || week > schedule.ProgramWeeks {
		return nil, fmt.Errorf("week %d out of range 1..%d", week, schedule.ProgramWeeks)
	}
	w := l.app.Week(week)
	return &w, nil
}

func (l *Local) SetStartDate(ctx context.Context, date string) (*app.SettingsView, error) {
	d, err := models.ParseDate(date)
	if err != nil {
		return nil, err
	}
	if err := l.app.SetStartDate(ctx, d); err != nil {
		return nil, err
	}
	v := l.app.Settings()
	return &v, nil
}

func (l *Local) Program(_ context.Context) (*ProgramCatalog, error) {
	return NewProgramCatalog(l.app.Resolver()), nil
}

// NewProgramCatalog lists the resolver's catalog.
func NewProgramCatalog(r *schedule.Resolver) *ProgramCatalog {
	c := r.Catalog()
	out := &ProgramCatalog{Plans: c.Plans()}
	for _, p := range c.Rotation(1) {
		out.Phase1 = append(out.Phase1, p.ID)
	}
	for _, p := range c.Rotation(2) {
		out.Phase2 = append(out.Phase2, p.ID)
	}
	return out
}
