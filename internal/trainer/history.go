package trainer

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/lowaak/upper-lower/upper-lower-app/internal/workout"
)

var (
	ErrWorkoutNotFound     = errors.New("workout not found in history")
	ErrInvalidWorkoutTimes = errors.New("workout end time is before its start time")
)

// History is the log of finished workouts, oldest first.
type History []workout.CompletedWorkout

func (h History) index(id uuid.UUID) int {
	for i, w := range h {
		if w.ID == id {
			return i
		}
	}
	return -1
}

// Delete returns the history without the workout id.
func (h History) Delete(id uuid.UUID) (History, error) {
	i := h.index(id)
	if i < 0 {
		return h, ErrWorkoutNotFound
	}
	return append(h[:i:i], h[i+1:]...), nil
}

// UpdateTimes corrects a workout's start and end and recomputes its duration.
func (h History) UpdateTimes(id uuid.UUID, start, end time.Time) error {
	i := h.index(id)
	if i < 0 {
		return ErrWorkoutNotFound
	}
	if end.Before(start) {
		return ErrInvalidWorkoutTimes
	}
	h[i].StartTime = start
	h[i].EndTime = &end
	h[i].Duration = int(end.Sub(start) / time.Second)
	return nil
}

// LastFor is the most recent workout of dayName in week. Entries without
// a week count as week 1.
func (h History) LastFor(dayName string, week int) (workout.CompletedWorkout, bool) {
	for i := len(h) - 1; i >= 0; i-- {
		if h[i].DayName == dayName && h[i].WeekOrDefault() == week {
			return h[i], true
		}
	}
	return workout.CompletedWorkout{}, false
}

// On lists the workouts that started on the calendar day of date, in date's location.
func (h History) On(date time.Time) []workout.CompletedWorkout {
	y, m, d := date.Date()
	var out []workout.CompletedWorkout
	for _, w := range h {
		wy, wm, wd := w.StartTime.In(date.Location()).Date()
		if wy == y && wm == m && wd == d {
			out = append(out, w)
		}
	}
	return out
}

func (h History) Clone() History {
	c := make(History, len(h))
	for i, w := range h {
		c[i] = w.Clone()
	}
	return c
}
