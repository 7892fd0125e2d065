package trainer

import (
	"sort"

	"github.com/lowaak/upper-lower/upper-lower-app/internal/workout"
)

// Superset is a set of exercise names performed back to back. It is kept
// sorted and free of duplicates so equal sets compare equal.
type Superset []string

func NewSuperset(names ...string) Superset {
	seen := make(map[string]struct{}, len(names))
	s := make(Superset, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		s = append(s, n)
	}
	sort.Strings(s)
	return s
}

func (s Superset) Contains(name string) bool {
	i := sort.SearchStrings(s, name)
	return i < len(s) && s[i] == name
}

func (s Superset) Overlaps(other Superset) bool {
	for _, n := range other {
		if s.Contains(n) {
			return true
		}
	}
	return false
}

// CreateSuperset links names for dayName. Existing supersets sharing any
// name are dropped first, so a day's supersets never overlap. Fewer than
// two distinct names is ignored.
func (o *ScheduleOverrides) CreateSuperset(dayName string, names []string) {
	set := NewSuperset(names...)
	if len(set) < 2 {
		return
	}
	kept := make([]Superset, 0, len(o.Supersets[dayName])+1)
	for _, existing := range o.Supersets[dayName] {
		if !existing.Overlaps(set) {
			kept = append(kept, existing)
		}
	}
	o.Supersets[dayName] = append(kept, set)
}

// Partners is the first superset on dayName that contains name.
func (o ScheduleOverrides) Partners(name, dayName string) (Superset, bool) {
	for _, s := range o.Supersets[dayName] {
		if s.Contains(name) {
			return s, true
		}
	}
	return nil, false
}

// RemoveSuperset drops every superset on dayName that contains name.
func (o *ScheduleOverrides) RemoveSuperset(name, dayName string) {
	sets := o.Supersets[dayName]
	kept := make([]Superset, 0, len(sets))
	for _, s := range sets {
		if !s.Contains(name) {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		delete(o.Supersets, dayName)
		return
	}
	o.Supersets[dayName] = kept
}

// Connection tells a list renderer whether entry i is linked to its
// neighbours: up when the previous entry is a partner, down for the next.
func (o ScheduleOverrides) Connection(list []workout.Exercise, i int, dayName string) (up, down bool) {
	if i < 0 || i >= len(list) {
		return false, false
	}
	partners, ok := o.Partners(list[i].Name, dayName)
	if !ok {
		return false, false
	}
	if i > 0 {
		up = partners.Contains(list[i-1].Name)
	}
	if i < len(list)-1 {
		down = partners.Contains(list[i+1].Name)
	}
	return up, down
}

// Group returns the exercises worked together with ex: its partners as
// they appear in the resolved day, or just ex when it has none.
func (o ScheduleOverrides) Group(ex workout.Exercise, dayName string, resolved []workout.Exercise) []workout.Exercise {
	partners, ok := o.Partners(ex.Name, dayName)
	if !ok {
		return []workout.Exercise{ex}
	}
	group := make([]workout.Exercise, 0, len(partners))
	for _, r := range resolved {
		if partners.Contains(r.Name) {
			group = append(group, r)
		}
	}
	if len(group) == 0 {
		return []workout.Exercise{ex}
	}
	return group
}

// SetSlot is one cell of a grouped working view: set SetIndex (0-based) of Exercise.
type SetSlot struct {
	Exercise workout.Exercise
	SetIndex int
}

// InterleaveSets orders a group round by round: set 1 of every exercise,
// then set 2, and so on. Exercises with fewer sets drop out of later rounds.
func InterleaveSets(group []workout.Exercise) []SetSlot {
	rounds := 0
	for _, ex := range group {
		if ex.Sets > rounds {
			rounds = ex.Sets
		}
	}
	var slots []SetSlot
	for round := 0; round < rounds; round++ {
		for _, ex := range group {
			if round < ex.Sets {
				slots = append(slots, SetSlot{Exercise: ex, SetIndex: round})
			}
		}
	}
	return slots
}
