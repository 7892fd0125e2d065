package trainer

import (
	"fmt"
	"sort"

	"github.com/lowaak/upper-lower/upper-lower-app/internal/workout"
)

// ScheduleOverrides layers the user's edits over the base program. Week
// scoped maps use ScheduleKey; reps and equipment are global per exercise
// name; order and supersets are per day name across all weeks.
type ScheduleOverrides struct {
	Added     map[string][]workout.Exercise
	Removed   map[string][]string
	Reps      map[string]string
	Equipment map[string]workout.Equipment
	Order     map[string][]string
	Supersets map[string][]Superset
}

func NewScheduleOverrides() ScheduleOverrides {
	o := ScheduleOverrides{}
	o.ensure()
	return o
}

// ensure replaces nil maps, which is what a missing store key decodes to.
func (o *ScheduleOverrides) ensure() {
	if o.Added == nil {
		o.Added = make(map[string][]workout.Exercise)
	}
	if o.Removed == nil {
		o.Removed = make(map[string][]string)
	}
	if o.Reps == nil {
		o.Reps = make(map[string]string)
	}
	if o.Equipment == nil {
		o.Equipment = make(map[string]workout.Equipment)
	}
	if o.Order == nil {
		o.Order = make(map[string][]string)
	}
	if o.Supersets == nil {
		o.Supersets = make(map[string][]Superset)
	}
	for day, sets := range o.Supersets {
		for i, set := range sets {
			sets[i] = NewSuperset(set...)
		}
		o.Supersets[day] = sets
	}
}

// ScheduleKey identifies one week's instance of a day.
func ScheduleKey(week int, dayName string) string {
	return fmt.Sprintf("%d-%s", week, dayName)
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// Planned is the base exercises that were not removed followed by the
// added ones, with no ordering or equipment applied. Completion and
// overload are judged against this list.
func (o ScheduleOverrides) Planned(day workout.WorkoutDay) []workout.Exercise {
	key := ScheduleKey(day.Week, day.Name)
	removed := o.Removed[key]

	planned := make([]workout.Exercise, 0, len(day.Exercises)+len(o.Added[key]))
	for _, ex := range day.Exercises {
		if !containsName(removed, ex.Name) {
			planned = append(planned, ex)
		}
	}
	return append(planned, o.Added[key]...)
}

// orderSentinel ranks names missing from an explicit order after every listed one.
const orderSentinel = int(^uint(0) >> 1)

// Resolve produces the list the user sees and logs against: Planned,
// sorted by the day's saved order, with equipment overrides applied.
func (o ScheduleOverrides) Resolve(day workout.WorkoutDay) []workout.Exercise {
	list := o.Planned(day)

	if order, ok := o.Order[day.Name]; ok {
		rank := make(map[string]int, len(order))
		for i, name := range order {
			if _, seen := rank[name]; !seen {
				rank[name] = i
			}
		}
		rankOf := func(name string) int {
			if r, ok := rank[name]; ok {
				return r
			}
			return orderSentinel
		}
		sort.SliceStable(list, func(i, j int) bool {
			return rankOf(list[i].Name) < rankOf(list[j].Name)
		})
	}

	for i := range list {
		list[i] = o.Effective(list[i])
	}
	return list
}

// Effective swaps in the overridden equipment. Reps stay untouched; use RepsFor.
func (o ScheduleOverrides) Effective(ex workout.Exercise) workout.Exercise {
	if eq, ok := o.Equipment[ex.Name]; ok {
		ex.Equipment = eq
	}
	return ex
}

// RepsFor is the overridden reps for the exercise name, else its own.
func (o ScheduleOverrides) RepsFor(ex workout.Exercise) string {
	if reps, ok := o.Reps[ex.Name]; ok {
		return reps
	}
	return ex.Reps
}

func (o *ScheduleOverrides) AddExercise(day workout.WorkoutDay, ex workout.Exercise) {
	key := ScheduleKey(day.Week, day.Name)
	o.Added[key] = append(o.Added[key], ex)
}

// RemoveExercise drops a hand-added exercise (matched by ID) or hides a
// base exercise by name for that week's day.
func (o *ScheduleOverrides) RemoveExercise(day workout.WorkoutDay, ex workout.Exercise) {
	key := ScheduleKey(day.Week, day.Name)

	added := o.Added[key]
	for i, a := range added {
		if a.ID == ex.ID {
			o.Added[key] = append(added[:i:i], added[i+1:]...)
			if len(o.Added[key]) == 0 {
				delete(o.Added, key)
			}
			return
		}
	}

	if !containsName(o.Removed[key], ex.Name) {
		o.Removed[key] = append(o.Removed[key], ex.Name)
	}
}

// SetReps overrides reps for every exercise with this name. Empty clears it.
func (o *ScheduleOverrides) SetReps(name, reps string) {
	if reps == "" {
		delete(o.Reps, name)
		return
	}
	o.Reps[name] = reps
}

func (o *ScheduleOverrides) SetEquipment(name string, eq workout.Equipment) {
	o.Equipment[name] = eq
}

// SetOrder stores the working order for a day name across all weeks.
func (o *ScheduleOverrides) SetOrder(dayName string, names []string) {
	o.Order[dayName] = append([]string(nil), names...)
}

// Clone deep-copies every map so the copy can be exported or handed out.
func (o ScheduleOverrides) Clone() ScheduleOverrides {
	c := NewScheduleOverrides()
	for k, v := range o.Added {
		c.Added[k] = append([]workout.Exercise(nil), v...)
	}
	for k, v := range o.Removed {
		c.Removed[k] = append([]string(nil), v...)
	}
	for k, v := range o.Reps {
		c.Reps[k] = v
	}
	for k, v := range o.Equipment {
		c.Equipment[k] = v
	}
	for k, v := range o.Order {
		c.Order[k] = append([]string(nil), v...)
	}
	for k, v := range o.Supersets {
		sets := make([]Superset, len(v))
		for i, s := range v {
			sets[i] = NewSuperset(s...)
		}
		c.Supersets[k] = sets
	}
	return c
}
