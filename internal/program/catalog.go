// Package program holds the static 8-week program: the nine session
// templates and the day-index rotations that place them on the calendar.
package program

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/meltforce/tacticalfit/internal/models"
	"gopkg.in/yaml.v3"
)

// DaysPerWeek is the length of a rotation.
const DaysPerWeek = 7

// PhaseWeeks is the number of prescription weeks per exercise.
const PhaseWeeks = 4

//go:embed program.yaml
var embedded []byte

// Catalog is the parsed, read-only program content.
type Catalog struct {
	plans  map[string]*models.DailyWorkoutPlan
	order  []*models.DailyWorkoutPlan
	rest   *models.DailyWorkoutPlan
	phase1 [DaysPerWeek]*models.DailyWorkoutPlan
	phase2 [DaysPerWeek]*models.DailyWorkoutPlan
}

type catalogFile struct {
	RestPlan  string `yaml:"rest_plan"`
	Rotations struct {
		Phase1 []string `yaml:"phase1"`
		Phase2 []string `yaml:"phase2"`
	} `yaml:"rotations"`
	Plans []*models.DailyWorkoutPlan `yaml:"plans"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog built from the embedded program.yaml.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(embedded)
		if err != nil {
			panic(fmt.Sprintf("program: embedded catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load parses and validates a catalog document.
func Load(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	c := &Catalog{plans: make(map[string]*models.DailyWorkoutPlan, len(f.Plans))}
	for _, p := range f.Plans {
		if err := validatePlan(p); err != nil {
			return nil, err
		}
		if _, dup := c.plans[p.ID]; dup {
			return nil, fmt.Errorf("duplicate plan id %q", p.ID)
		}
		c.plans[p.ID] = p
		c.order = append(c.order, p)
	}

	rest, ok := c.plans[f.RestPlan]
	if !ok {
		return nil, fmt.Errorf("rest_plan %q not found", f.RestPlan)
	}
	if !rest.IsRest() {
		return nil, fmt.Errorf("rest_plan %q has type %q, want Rest", f.RestPlan, rest.Type)
	}
	c.rest = rest

	var err error
	if c.phase1, err = c.rotation("phase1", f.Rotations.Phase1); err != nil {
		return nil, err
	}
	if c.phase2, err = c.rotation("phase2", f.Rotations.Phase2); err != nil {
		return nil, err
	}
	return c, nil
}

func validatePlan(p *models.DailyWorkoutPlan) error {
	if p.ID == "" {
		return fmt.Errorf("plan %q: missing id", p.Title)
	}
	if !p.Type.Valid() {
		return fmt.Errorf("plan %s: unknown workout type %q", p.ID, p.Type)
	}
	for i, s := range p.Sections {
		if !s.Type.Valid() {
			return fmt.Errorf("plan %s: section %d: unknown type %q", p.ID, i, s.Type)
		}
		for _, e := range s.Exercises {
			if e.Name == "" {
				return fmt.Errorf("plan %s: section %d: exercise without name", p.ID, i)
			}
			for w := range e.Weeks {
				if w < 1 || w > PhaseWeeks {
					return fmt.Errorf("plan %s: %s: week %d out of range 1..%d", p.ID, e.Name, w, PhaseWeeks)
				}
			}
		}
	}
	return nil
}

func (c *Catalog) rotation(name string, ids []string) ([DaysPerWeek]*models.DailyWorkoutPlan, error) {
	var r [DaysPerWeek]*models.DailyWorkoutPlan
	if len(ids) != DaysPerWeek {
		return r, fmt.Errorf("rotation %s: %d entries, want %d", name, len(ids), DaysPerWeek)
	}
	for i, id := range ids {
		p, ok := c.plans[id]
		if !ok {
			return r, fmt.Errorf("rotation %s: day %d: unknown plan %q", name, i, id)
		}
		r[i] = p
	}
	return r, nil
}

// Plan looks up a plan by id.
func (c *Catalog) Plan(id string) (*models.DailyWorkoutPlan, bool) {
	p, ok := c.plans[id]
	return p, ok
}

// Plans returns every plan in authoring order.
func (c *Catalog) Plans() []*models.DailyWorkoutPlan {
	out := make([]*models.DailyWorkoutPlan, len(c.order))
	copy(out, c.order)
	return out
}

// Rest returns the rest-day plan.
func (c *Catalog) Rest() *models.DailyWorkoutPlan {
	return c.rest
}

// Rotation returns the day-index table for phase 1 or 2. Any phase other
// than 2 yields the phase 1 table.
func (c *Catalog) Rotation(phase int) [DaysPerWeek]*models.DailyWorkoutPlan {
	if phase == 2 {
		return c.phase2
	}
	return c.phase1
}
