package workout

import (
	"time"

	"github.com/google/uuid"
)

// CompletedSet is one logged set. Reps uses the same text family as
// Exercise.Reps.
type CompletedSet struct {
	ID          uuid.UUID `json:"id"`
	SetNumber   int       `json:"setNumber"`
	Reps        string    `json:"reps"`
	Weight      float64   `json:"weight"`
	IsCompleted bool      `json:"isCompleted"`
	Timestamp   time.Time `json:"timestamp"`
}

type CompletedExercise struct {
	ID         uuid.UUID      `json:"id"`
	ExerciseID uuid.UUID      `json:"exerciseId"`
	Name       string         `json:"name"`
	Sets       []CompletedSet `json:"sets"`
}

// SetByNumber returns the logged set with the given 1-based number.
func (e CompletedExercise) SetByNumber(n int) (CompletedSet, bool) {
	for _, s := range e.Sets {
		if s.SetNumber == n {
			return s, true
		}
	}
	return CompletedSet{}, false
}

// CompletedWorkout is the in-progress session while active and a history
// entry once finalized. Duration is in seconds.
type CompletedWorkout struct {
	ID        uuid.UUID           `json:"id"`
	DayName   string              `json:"dayName"`
	Week      *int                `json:"week,omitempty"`
	StartTime time.Time           `json:"startTime"`
	EndTime   *time.Time          `json:"endTime,omitempty"`
	Exercises []CompletedExercise `json:"exercises"`
	Duration  int                 `json:"duration"`
}

// NewCompletedWorkout starts an empty workout for day.
func NewCompletedWorkout(day WorkoutDay, start time.Time) CompletedWorkout {
	week := day.Week
	return CompletedWorkout{
		ID:        uuid.New(),
		DayName:   day.Name,
		Week:      &week,
		StartTime: start,
		Exercises: []CompletedExercise{},
	}
}

// WeekOrDefault treats a workout without a recorded week as week 1.
func (w CompletedWorkout) WeekOrDefault() int {
	if w.Week == nil {
		return 1
	}
	return *w.Week
}

// ExerciseIndex finds the logged exercise by name, -1 when absent.
func (w CompletedWorkout) ExerciseIndex(name string) int {
	for i, ex := range w.Exercises {
		if ex.Name == name {
			return i
		}
	}
	return -1
}

func (w CompletedWorkout) LoggedExercise(name string) (CompletedExercise, bool) {
	if i := w.ExerciseIndex(name); i >= 0 {
		return w.Exercises[i], true
	}
	return CompletedExercise{}, false
}

// SetCount is the number of sets logged for name.
func (w CompletedWorkout) SetCount(name string) int {
	if ex, ok := w.LoggedExercise(name); ok {
		return len(ex.Sets)
	}
	return 0
}

// Clone deep-copies the slices and pointers so the copy can be handed out.
func (w CompletedWorkout) Clone() CompletedWorkout {
	if w.Week != nil {
		week := *w.Week
		w.Week = &week
	}
	if w.EndTime != nil {
		end := *w.EndTime
		w.EndTime = &end
	}
	exercises := make([]CompletedExercise, len(w.Exercises))
	for i, ex := range w.Exercises {
		ex.Sets = append([]CompletedSet(nil), ex.Sets...)
		exercises[i] = ex
	}
	w.Exercises = exercises
	return w
}
