package app

import (
	"time"

	"github.com/meltforce/tacticalfit/internal/aggregate"
	"github.com/meltforce/tacticalfit/internal/models"
	"github.com/meltforce/tacticalfit/internal/schedule"
)

// ExerciseView is one exercise as shown on the daily screen.
type ExerciseView struct {
	Name           string              `json:"name"`
	Notes          string              `json:"notes,omitempty"`
	Tempo          string              `json:"tempo,omitempty"`
	Instructions   []string            `json:"instructions,omitempty"`
	CommonMistakes []string            `json:"common_mistakes,omitempty"`
	VideoURL       string              `json:"video_url,omitempty"`
	Prescription   *models.ExerciseSet `json:"prescription,omitempty"`
	Completed      bool                `json:"completed"`
}

// SectionView is one workout section on the daily screen.
type SectionView struct {
	Type      models.SectionType `json:"type"`
	Title     string             `json:"title"`
	Notes     string             `json:"notes,omitempty"`
	Exercises []ExerciseView     `json:"exercises"`
}

// DailyView is the content of the daily screen for one date.
type DailyView struct {
	Date        string             `json:"date"`
	Weekday     string             `json:"weekday"`
	IsToday     bool               `json:"is_today"`
	PlanID      string             `json:"plan_id"`
	Title       string             `json:"title"`
	Type        models.WorkoutType `json:"type"`
	Rest        bool               `json:"rest"`
	ProgramWeek int                `json:"program_week"`
	Phase       int                `json:"phase"`
	PhaseWeek   int                `json:"phase_week"`
	DayIndex    int                `json:"day_index"`
	BeforeStart bool               `json:"before_start"`
	Sections    []SectionView      `json:"sections"`
	Progress    aggregate.Tally    `json:"progress"`
}

// Daily builds the daily screen for date.
func (a *App) Daily(date time.Time) DailyView {
	asg := a.Resolve(date)
	key := models.DateKey(date)
	done := a.store.Day(key)
	plan := asg.Workout

	v := DailyView{
		Date:        key,
		Weekday:     asg.Date.Weekday().String(),
		IsToday:     asg.Date.Equal(a.Today()),
		PlanID:      plan.ID,
		Title:       plan.Title,
		Type:        plan.Type,
		Rest:        plan.IsRest(),
		ProgramWeek: asg.ProgramWeek,
		Phase:       asg.Phase,
		PhaseWeek:   asg.PhaseWeek,
		DayIndex:    asg.DayIndex,
		BeforeStart: asg.BeforeStart,
		Sections:    make([]SectionView, 0, len(plan.Sections)),
		Progress:    aggregate.Day(plan, asg.PhaseWeek, done),
	}
	for _, s := range plan.Sections {
		sv := SectionView{
			Type:      s.Type,
			Title:     s.DisplayTitle(),
			Notes:     s.Notes,
			Exercises: make([]ExerciseView, 0, len(s.Exercises)),
		}
		for _, e := range s.Exercises {
			ev := ExerciseView{
				Name:           e.Name,
				Notes:          e.Notes,
				Tempo:          e.Tempo,
				Instructions:   e.Instructions,
				CommonMistakes: e.CommonMistakes,
				VideoURL:       e.VideoURL,
				Completed:      done[e.Name],
			}
			if set, ok := e.Prescription(asg.PhaseWeek); ok {
				ev.Prescription = &set
			}
			sv.Exercises = append(sv.Exercises, ev)
		}
		v.Sections = append(v.Sections, sv)
	}
	return v
}

// ScheduleDay is one cell of the schedule grid.
type ScheduleDay struct {
	Date     string             `json:"date"`
	Weekday  string             `json:"weekday"`
	PlanID   string             `json:"plan_id"`
	Title    string             `json:"title"`
	Type     models.WorkoutType `json:"type"`
	IsToday  bool               `json:"is_today"`
	Progress aggregate.Tally    `json:"progress"`
	Done     bool               `json:"done"`
}

// ScheduleWeek is one program week of the schedule grid.
type ScheduleWeek struct {
	ProgramWeek int             `json:"program_week"`
	Phase       int             `json:"phase"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	Current     bool            `json:"current"`
	Progress    aggregate.Tally `json:"progress"`
	Days        []ScheduleDay   `json:"days"`
}

// ScheduleView is the full eight-week program overview.
type ScheduleView struct {
	StartDate string `json:"start_date"`
	// CurrentWeek is today's unclamped program week; it matches no row
	// before the start or after week 8.
	CurrentWeek int            `json:"current_week"`
	Weeks       []ScheduleWeek `json:"weeks"`
}

// Week builds one row of the schedule grid.
func (a *App) Week(programWeek int) ScheduleWeek {
	start := a.StartDate()
	today := a.Today()
	res := aggregate.Week(a.resolver, start, programWeek, a.store)

	phase := 1
	if programWeek > schedule.PhaseWeeks {
		phase = 2
	}
	w := ScheduleWeek{
		ProgramWeek: programWeek,
		Phase:       phase,
		StartDate:   res.Days[0].DateKey,
		EndDate:     res.Days[len(res.Days)-1].DateKey,
		Current:     schedule.ProgramWeekOf(start, today) == programWeek,
		Progress:    res.Tally,
		Days:        make([]ScheduleDay, 0, len(res.Days)),
	}
	for _, d := range res.Days {
		w.Days = append(w.Days, ScheduleDay{
			Date:     d.DateKey,
			Weekday:  d.Assignment.Date.Weekday().String()[:3],
			PlanID:   d.Assignment.Workout.ID,
			Title:    d.Assignment.Workout.Title,
			Type:     d.Assignment.Workout.Type,
			IsToday:  d.Assignment.Date.Equal(today),
			Progress: d.Tally,
			Done:     d.Tally.Done(),
		})
	}
	return w
}

// Schedule builds the schedule screen.
func (a *App) Schedule() ScheduleView {
	start := a.StartDate()
	v := ScheduleView{
		StartDate:   models.DateKey(start),
		CurrentWeek: schedule.ProgramWeekOf(start, a.Today()),
		Weeks:       make([]ScheduleWeek, 0, schedule.ProgramWeeks),
	}
	for w := 1; w <= schedule.ProgramWeeks; w++ {
		v.Weeks = append(v.Weeks, a.Week(w))
	}
	return v
}

// SettingsView is the content of the settings screen.
type SettingsView struct {
	StartDate   string `json:"start_date"`
	Today       string `json:"today"`
	CurrentWeek int    `json:"current_week"`
	TrackedDays int    `json:"tracked_days"`
}

// Settings builds the settings screen.
func (a *App) Settings() SettingsView {
	start := a.StartDate()
	today := a.Today()
	return SettingsView{
		StartDate:   models.DateKey(start),
		Today:       models.DateKey(today),
		CurrentWeek: schedule.ProgramWeekOf(start, today),
		TrackedDays: len(a.store.Snapshot()),
	}
}
