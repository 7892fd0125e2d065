package trainer

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lowaak/upper-lower/upper-lower-app/internal/workout"
)

var ErrNoActiveSession = errors.New("no active session")

// RestTimer is the countdown between sets.
type RestTimer struct {
	Remaining int
	Active    bool
	Paused    bool
}

// SessionState is everything about the in-progress workout that has to
// survive a restart. BackgroundedAt is set while the app is away.
type SessionState struct {
	Active         bool
	Day            *workout.WorkoutDay
	Current        *workout.CompletedWorkout
	ElapsedSeconds int
	TimerPaused    bool
	Warmups        map[uuid.UUID][]int
	Rest           RestTimer
	LastSaved      time.Time
	BackgroundedAt *time.Time
}

// SetEntry is one set to log.
type SetEntry struct {
	ExerciseID   uuid.UUID
	ExerciseName string
	SetIndex     int // 0-based
	Weight       float64
	Reps         string
}

func (s *SessionState) reset() {
	*s = SessionState{Warmups: make(map[uuid.UUID][]int)}
}

func (s *SessionState) start(day workout.WorkoutDay, now time.Time) {
	d := day.Clone()
	cw := workout.NewCompletedWorkout(d, now)
	s.Active = true
	s.Day = &d
	s.Current = &cw
	s.ElapsedSeconds = 0
	s.TimerPaused = false
	s.Warmups = make(map[uuid.UUID][]int)
	s.Rest = RestTimer{}
	s.BackgroundedAt = nil
}

// logSet appends a completed set, creating the exercise entry on first use.
// A paused clock resumes.
func (s *SessionState) logSet(e SetEntry, now time.Time) {
	set := workout.CompletedSet{
		ID:          uuid.New(),
		SetNumber:   e.SetIndex + 1,
		Reps:        e.Reps,
		Weight:      e.Weight,
		IsCompleted: true,
		Timestamp:   now,
	}
	if i := s.Current.ExerciseIndex(e.ExerciseName); i >= 0 {
		s.Current.Exercises[i].Sets = append(s.Current.Exercises[i].Sets, set)
	} else {
		s.Current.Exercises = append(s.Current.Exercises, workout.CompletedExercise{
			ID:         uuid.New(),
			ExerciseID: e.ExerciseID,
			Name:       e.ExerciseName,
			Sets:       []workout.CompletedSet{set},
		})
	}
	s.TimerPaused = false
}

// clearSet removes set setIndex (0-based) of name and drops the exercise
// once it has no sets left. It reports whether anything was removed.
func (s *SessionState) clearSet(name string, setIndex int) bool {
	i := s.Current.ExerciseIndex(name)
	if i < 0 {
		return false
	}
	ex := &s.Current.Exercises[i]
	kept := make([]workout.CompletedSet, 0, len(ex.Sets))
	for _, set := range ex.Sets {
		if set.SetNumber != setIndex+1 {
			kept = append(kept, set)
		}
	}
	if len(kept) == len(ex.Sets) {
		return false
	}
	ex.Sets = kept
	if len(kept) == 0 {
		s.Current.Exercises = append(s.Current.Exercises[:i:i], s.Current.Exercises[i+1:]...)
	}
	return true
}

// toggleWarmup flips warm-up idx of an exercise and returns its new state.
func (s *SessionState) toggleWarmup(id uuid.UUID, idx int) bool {
	done := s.Warmups[id]
	for i, v := range done {
		if v == idx {
			done = append(done[:i:i], done[i+1:]...)
			if len(done) == 0 {
				delete(s.Warmups, id)
			} else {
				s.Warmups[id] = done
			}
			return false
		}
	}
	done = append(append([]int(nil), done...), idx)
	sort.Ints(done)
	s.Warmups[id] = done
	return true
}

func (s SessionState) warmupDone(id uuid.UUID, idx int) bool {
	for _, v := range s.Warmups[id] {
		if v == idx {
			return true
		}
	}
	return false
}

// loggedReps is the reps recorded for set setIndex of name, if any.
func (s SessionState) loggedReps(name string, setIndex int) (int, bool) {
	if s.Current == nil {
		return 0, false
	}
	ex, ok := s.Current.LoggedExercise(name)
	if !ok {
		return 0, false
	}
	set, ok := ex.SetByNumber(setIndex + 1)
	if !ok {
		return 0, false
	}
	return workout.PerformedReps(set.Reps), true
}

// isComplete reports whether every planned exercise has its target sets logged.
func (s SessionState) isComplete(planned []workout.Exercise) bool {
	if !s.Active || s.Current == nil {
		return false
	}
	for _, ex := range planned {
		if s.Current.SetCount(ex.Name) < ex.Sets {
			return false
		}
	}
	return true
}

func (s SessionState) clone() SessionState {
	c := s
	if s.Day != nil {
		d := s.Day.Clone()
		c.Day = &d
	}
	if s.Current != nil {
		cw := s.Current.Clone()
		c.Current = &cw
	}
	if s.BackgroundedAt != nil {
		t := *s.BackgroundedAt
		c.BackgroundedAt = &t
	}
	c.Warmups = make(map[uuid.UUID][]int, len(s.Warmups))
	for k, v := range s.Warmups {
		c.Warmups[k] = append([]int(nil), v...)
	}
	return c
}
