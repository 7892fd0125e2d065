// Package program holds the fixed nine-week training block. The data ships
// embedded as YAML; a user file with the same shape can replace it.
package program

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/lowaak/upper-lower/upper-lower-app/internal/workout"
)

// CycleLength is the number of weeks before the program repeats.
const CycleLength = 9

//go:embed program.yaml
var embeddedProgram []byte

type programFile struct {
	Weeks []weekFile `yaml:"weeks"`
}

type weekFile struct {
	Week int       `yaml:"week"`
	Days []dayFile `yaml:"days"`
}

type dayFile struct {
	Name      string         `yaml:"name"`
	Exercises []exerciseFile `yaml:"exercises"`
}

type exerciseFile struct {
	Name      string   `yaml:"name"`
	Sets      int      `yaml:"sets"`
	Reps      string   `yaml:"reps"`
	Lift      string   `yaml:"lift"`
	Pct       *float64 `yaml:"pct"`
	Equipment string   `yaml:"equipment"`
	Notes     string   `yaml:"notes"`
}

// Catalog answers which days and exercises a week holds. It is immutable
// after loading and safe for concurrent use.
type Catalog struct {
	weeks [CycleLength][]workout.WorkoutDay
}

// Default loads the embedded program.
func Default() (*Catalog, error) {
	return Parse(embeddedProgram)
}

// Load reads a program file from disk.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read program %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a program document. Every week of the cycle must be present.
func Parse(data []byte) (*Catalog, error) {
	var file programFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode program: %w", err)
	}

	c := &Catalog{}
	seen := make(map[int]bool)
	for _, wf := range file.Weeks {
		if wf.Week < 1 || wf.Week > CycleLength {
			return nil, fmt.Errorf("program week %d outside 1..%d", wf.Week, CycleLength)
		}
		if seen[wf.Week] {
			return nil, fmt.Errorf("program week %d defined twice", wf.Week)
		}
		seen[wf.Week] = true

		days := make([]workout.WorkoutDay, 0, len(wf.Days))
		for _, df := range wf.Days {
			day := workout.WorkoutDay{ID: stableID(wf.Week, df.Name), Name: df.Name}
			for i, ef := range df.Exercises {
				ex, err := ef.toExercise()
				if err != nil {
					return nil, fmt.Errorf("week %d %s: %w", wf.Week, df.Name, err)
				}
				ex.ID = stableID(wf.Week, df.Name, i, ef.Name)
				day.Exercises = append(day.Exercises, ex)
			}
			days = append(days, day)
		}
		c.weeks[wf.Week-1] = days
	}
	for w := 1; w <= CycleLength; w++ {
		if !seen[w] {
			return nil, fmt.Errorf("program is missing week %d", w)
		}
	}
	return c, nil
}

func (ef exerciseFile) toExercise() (workout.Exercise, error) {
	lift, err := workout.ParseLiftType(ef.Lift)
	if err != nil {
		return workout.Exercise{}, err
	}
	eq, err := workout.ParseEquipment(ef.Equipment)
	if err != nil {
		return workout.Exercise{}, err
	}
	if ef.Sets <= 0 {
		return workout.Exercise{}, fmt.Errorf("%s: sets must be positive", ef.Name)
	}
	if ef.Pct != nil && (*ef.Pct <= 0 || *ef.Pct > 1) {
		return workout.Exercise{}, fmt.Errorf("%s: pct %v outside (0,1]", ef.Name, *ef.Pct)
	}
	return workout.NewExercise(ef.Name, ef.Sets, ef.Reps, lift, ef.Pct, ef.Notes, eq), nil
}

// stableID derives the same ID for the same catalog position on every
// run, so warm-up state keyed by exercise ID survives a restart.
func stableID(parts ...any) uuid.UUID {
	return uuid.NewSHA1(catalogNamespace, []byte(fmt.Sprintln(parts...)))
}

var catalogNamespace = uuid.MustParse("3d0b1a52-5f43-4c1e-9a7e-2f6d8c0e9b41")

// CycleWeek maps any week >= 1 onto 1..CycleLength.
func CycleWeek(week int) int {
	if week < 1 {
		week = 1
	}
	return ((week - 1) % CycleLength) + 1
}

// GetDays returns the days for week, stamped with week itself rather than
// its position in the cycle. The result is a copy.
func (c *Catalog) GetDays(week int) []workout.WorkoutDay {
	base := c.weeks[CycleWeek(week)-1]
	days := make([]workout.WorkoutDay, len(base))
	for i, d := range base {
		d = d.Clone()
		d.Week = week
		days[i] = d
	}
	return days
}

// Day looks up one day of a week by name.
func (c *Catalog) Day(week int, name string) (workout.WorkoutDay, bool) {
	for _, d := range c.GetDays(week) {
		if d.Name == name {
			return d, true
		}
	}
	return workout.WorkoutDay{}, false
}

// ExerciseNames is every distinct exercise name across the cycle, sorted.
func (c *Catalog) ExerciseNames() []string {
	set := make(map[string]struct{})
	for _, days := range c.weeks {
		for _, d := range days {
			for _, ex := range d.Exercises {
				set[ex.Name] = struct{}{}
			}
		}
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
