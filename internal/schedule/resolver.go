// Package schedule maps calendar dates onto the 8-week program.
package schedule

import (
	"time"

	"github.com/meltforce/tacticalfit/internal/models"
	"github.com/meltforce/tacticalfit/internal/program"
)

const (
	// ProgramWeeks is the program length; later dates stay on the last week.
	ProgramWeeks = 8
	// PhaseWeeks is the length of one phase.
	PhaseWeeks = program.PhaseWeeks
)

// Assignment is the outcome of resolving one calendar date.
type Assignment struct {
	Date    time.Time                `json:"date"`
	Workout *models.DailyWorkoutPlan `json:"workout"`
	// ProgramWeek is clamped to 1..8, and 0 before the program starts.
	ProgramWeek int `json:"program_week"`
	Phase       int `json:"phase"`
	// PhaseWeek indexes exercise prescriptions, always 1..4.
	PhaseWeek   int  `json:"phase_week"`
	DayIndex    int  `json:"day_index"`
	BeforeStart bool `json:"before_start"`
}

// Resolver maps dates to workouts using a program catalog.
type Resolver struct {
	catalog *program.Catalog
}

// New creates a Resolver over the given catalog.
func New(catalog *program.Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// Catalog returns the catalog the resolver schedules from.
func (r *Resolver) Catalog() *program.Catalog {
	return r.catalog
}

// Resolve returns the workout scheduled on query for a program that began on
// start. It never fails: dates before start get the rest plan, dates past
// week 8 repeat week 8 indefinitely.
func (r *Resolver) Resolve(start, query time.Time) Assignment {
	totalDays := models.DaysBetween(start, query)
	if totalDays < 0 {
		return Assignment{
			Date:        models.DateOf(query),
			Workout:     r.catalog.Rest(),
			Phase:       1,
			PhaseWeek:   1,
			DayIndex:    1,
			BeforeStart: true,
		}
	}

	programWeek := min(totalDays/program.DaysPerWeek+1, ProgramWeeks)
	dayIndex := totalDays % program.DaysPerWeek

	phase, phaseWeek := 1, programWeek
	if programWeek > PhaseWeeks {
		phase, phaseWeek = 2, programWeek-PhaseWeeks
	}

	return Assignment{
		Date:        models.DateOf(query),
		Workout:     r.catalog.Rotation(phase)[dayIndex],
		ProgramWeek: programWeek,
		Phase:       phase,
		PhaseWeek:   phaseWeek,
		DayIndex:    dayIndex,
	}
}

// ProgramWeekOf returns the unclamped 1-based program week containing day,
// or a value below 1 before the program starts.
func ProgramWeekOf(start, day time.Time) int {
	totalDays := models.DaysBetween(start, day)
	if totalDays < 0 {
		// floor division
		return (totalDays-(program.DaysPerWeek-1))/program.DaysPerWeek + 1
	}
	return totalDays/program.DaysPerWeek + 1
}

// WeekStart returns the first calendar date of a 1-based program week.
func WeekStart(start time.Time, programWeek int) time.Time {
	return models.AddDays(start, (programWeek-1)*program.DaysPerWeek)
}

// WeekDates returns the seven calendar dates of a 1-based program week.
func WeekDates(start time.Time, programWeek int) [program.DaysPerWeek]time.Time {
	var out [program.DaysPerWeek]time.Time
	first := WeekStart(start, programWeek)
	for i := range out {
		out[i] = models.AddDays(first, i)
	}
	return out
}

// DefaultStartDate returns the Monday of the week containing today. Sunday
// belongs to the week that started six days earlier.
func DefaultStartDate(today time.Time) time.Time {
	d := models.DateOf(today)
	offset := int(d.Weekday()) - int(time.Monday)
	if d.Weekday() == time.Sunday {
		offset = 6
	}
	return models.AddDays(d, -offset)
}
