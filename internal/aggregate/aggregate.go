// Package aggregate rolls per-exercise completion up into daily and weekly
// counts and percentages.
package aggregate

import (
	"time"

	"github.com/meltforce/tacticalfit/internal/models"
	"github.com/meltforce/tacticalfit/internal/program"
	"github.com/meltforce/tacticalfit/internal/schedule"
)

// Tally is a completed/total exercise count with its rounded percentage.
type Tally struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Percent   int `json:"percent"`
}

// Done reports whether every scheduled exercise was completed. Days with
// nothing scheduled are never done.
func (t Tally) Done() bool {
	return t.Total > 0 && t.Completed == t.Total
}

// NewTally computes the percentage for completed out of total, rounding half
// up and clamping to 0..100.
func NewTally(total, completed int) Tally {
	t := Tally{Total: total, Completed: completed}
	if total > 0 && completed > 0 {
		t.Percent = min((200*completed+total)/(2*total), 100)
	}
	return t
}

// Add sums two tallies and recomputes the percentage.
func (t Tally) Add(o Tally) Tally {
	return NewTally(t.Total+o.Total, t.Completed+o.Completed)
}

// Day tallies one plan for one phase week. Only exercises with a
// prescription for phaseWeek count; rest plans always tally zero.
func Day(plan *models.DailyWorkoutPlan, phaseWeek int, done map[string]bool) Tally {
	if plan == nil || plan.IsRest() {
		return Tally{}
	}
	var total, completed int
	for _, s := range plan.Sections {
		for _, e := range s.Exercises {
			if _, ok := e.Prescription(phaseWeek); !ok {
				continue
			}
			total++
			if done[e.Name] {
				completed++
			}
		}
	}
	return NewTally(total, completed)
}

// DayLookup returns the completions recorded for a date key.
type DayLookup interface {
	Day(dateKey string) map[string]bool
}

// DayLookupFunc adapts a function to DayLookup.
type DayLookupFunc func(dateKey string) map[string]bool

func (f DayLookupFunc) Day(dateKey string) map[string]bool { return f(dateKey) }

// DayResult is one day's resolved workout and its tally.
type DayResult struct {
	Assignment schedule.Assignment `json:"assignment"`
	DateKey    string              `json:"date"`
	Tally      Tally               `json:"tally"`
}

// WeekResult is a program week's seven days and their summed tally.
type WeekResult struct {
	ProgramWeek int                            `json:"program_week"`
	Days        [program.DaysPerWeek]DayResult `json:"days"`
	Tally       Tally                          `json:"tally"`
}

// Week tallies every day of a 1-based program week. The daily totals and
// completions are summed before the single weekly percentage is computed.
func Week(r *schedule.Resolver, start time.Time, programWeek int, lookup DayLookup) WeekResult {
	out := WeekResult{ProgramWeek: programWeek}
	var total, completed int
	for i, d := range schedule.WeekDates(start, programWeek) {
		a := r.Resolve(start, d)
		key := models.DateKey(d)
		t := Day(a.Workout, a.PhaseWeek, lookup.Day(key))
		out.Days[i] = DayResult{Assignment: a, DateKey: key, Tally: t}
		total += t.Total
		completed += t.Completed
	}
	out.Tally = NewTally(total, completed)
	return out
}
