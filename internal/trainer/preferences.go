package trainer

import (
	"sort"

	"github.com/lowaak/upper-lower/upper-lower-app/internal/workout"
)

// Preferences is the exercise database plus the user's settings.
type Preferences struct {
	SavedWeights    map[string]float64
	CustomExercises []string
	Profile         workout.UserProfile
	Onboarded       bool
}

func NewPreferences() Preferences {
	return Preferences{SavedWeights: make(map[string]float64)}
}

func (p *Preferences) ensure() {
	if p.SavedWeights == nil {
		p.SavedWeights = make(map[string]float64)
	}
}

func (p Preferences) Weight(name string) (float64, bool) {
	w, ok := p.SavedWeights[name]
	return w, ok
}

func (p *Preferences) SaveWeight(name string, weight float64) {
	p.SavedWeights[name] = weight
}

// AddCustomExercise registers name and reports whether it was new.
func (p *Preferences) AddCustomExercise(name string) bool {
	if name == "" || containsName(p.CustomExercises, name) {
		return false
	}
	p.CustomExercises = append(p.CustomExercises, name)
	return true
}

// AllExerciseNames merges the program's names with the custom ones, sorted.
func (p Preferences) AllExerciseNames(programNames []string) []string {
	set := make(map[string]struct{}, len(programNames)+len(p.CustomExercises))
	for _, n := range programNames {
		set[n] = struct{}{}
	}
	for _, n := range p.CustomExercises {
		set[n] = struct{}{}
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// WorkingWeight is the saved weight for the name, else the percentage
// target, else 0.
func (p Preferences) WorkingWeight(ex workout.Exercise) float64 {
	if w, ok := p.SavedWeights[ex.Name]; ok {
		return w
	}
	if w, ok := ex.TargetWeight(p.Profile); ok {
		return w
	}
	return 0
}

func (p Preferences) Clone() Preferences {
	c := p
	c.SavedWeights = make(map[string]float64, len(p.SavedWeights))
	for k, v := range p.SavedWeights {
		c.SavedWeights[k] = v
	}
	c.CustomExercises = append([]string(nil), p.CustomExercises...)
	return c
}
