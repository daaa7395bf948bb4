package models

// WorkoutType tags what kind of session a DailyWorkoutPlan is.
type WorkoutType string

const (
	WorkoutStrength WorkoutType = "Strength"
	WorkoutRun      WorkoutType = "Run"
	WorkoutMetcon   WorkoutType = "Metcon"
	WorkoutRest     WorkoutType = "Rest"
	WorkoutAerobic  WorkoutType = "Aerobic"
)

// Valid reports whether t is one of the known workout types.
func (t WorkoutType) Valid() bool {
	switch t {
	case WorkoutStrength, WorkoutRun, WorkoutMetcon, WorkoutRest, WorkoutAerobic:
		return true
	}
	return false
}

// SectionType tags the training modality of a WorkoutSection.
type SectionType string

const (
	SectionWarmUp   SectionType = "Warm Up"
	SectionStrength SectionType = "Strength"
	SectionSuperset SectionType = "Superset"
	SectionCircuit  SectionType = "Circuit"
	SectionOptional SectionType = "Optional"
)

// Valid reports whether t is one of the known section types.
func (t SectionType) Valid() bool {
	switch t {
	case SectionWarmUp, SectionStrength, SectionSuperset, SectionCircuit, SectionOptional:
		return true
	}
	return false
}

// ExerciseSet is the prescription for one exercise in one phase week.
// Sets and Reps are display strings ("Max", "8e", "20m or 30s") and are
// never parsed.
type ExerciseSet struct {
	Sets      string `yaml:"sets" json:"sets"`
	Reps      string `yaml:"reps" json:"reps"`
	Intensity string `yaml:"intensity" json:"intensity,omitempty"`
}

// Exercise is identified by Name; completion tracking keys on it.
type Exercise struct {
	Name           string              `yaml:"name" json:"name"`
	Notes          string              `yaml:"notes" json:"notes,omitempty"`
	Tempo          string              `yaml:"tempo" json:"tempo,omitempty"`
	Instructions   []string            `yaml:"instructions" json:"instructions,omitempty"`
	CommonMistakes []string            `yaml:"common_mistakes" json:"common_mistakes,omitempty"`
	VideoURL       string              `yaml:"video_url" json:"video_url,omitempty"`
	Weeks          map[int]ExerciseSet `yaml:"weeks" json:"weeks"`
}

// Prescription returns the exercise's prescription for a phase week. ok is
// false when the exercise is not part of that week's session.
func (e Exercise) Prescription(phaseWeek int) (set ExerciseSet, ok bool) {
	set, ok = e.Weeks[phaseWeek]
	return set, ok
}

// WorkoutSection groups exercises sharing a modality.
type WorkoutSection struct {
	Type      SectionType `yaml:"type" json:"type"`
	Title     string      `yaml:"title" json:"title,omitempty"`
	Notes     string      `yaml:"notes" json:"notes,omitempty"`
	Exercises []Exercise  `yaml:"exercises" json:"exercises"`
}

// DisplayTitle falls back to the section type when no title was authored.
func (s WorkoutSection) DisplayTitle() string {
	if s.Title != "" {
		return s.Title
	}
	return string(s.Type)
}

// DailyWorkoutPlan is an immutable session template from the program catalog.
type DailyWorkoutPlan struct {
	ID       string           `yaml:"id" json:"id"`
	Title    string           `yaml:"title" json:"title"`
	Type     WorkoutType      `yaml:"type" json:"type"`
	Sections []WorkoutSection `yaml:"sections" json:"sections"`
}

// IsRest reports whether the plan is a rest day.
func (p *DailyWorkoutPlan) IsRest() bool {
	return p.Type == WorkoutRest
}
