package tui

import (
	"sort"

	"github.com/lowaak/upper-lower/upper-lower-app/internal/trainer"
	"github.com/lowaak/upper-lower/upper-lower-app/internal/workout"
)

// DayRow is one line of the program page.
type DayRow struct {
	Day      workout.WorkoutDay
	Complete bool
	InFlight bool // the active session is this day
}

// ExerciseRow is one exercise of the open day with everything needed to
// draw it.
type ExerciseRow struct {
	Exercise workout.Exercise
	Reps     string
	Weight   float64
	// Logged holds the reps logged per set, nil where nothing is logged.
	Logged      []*int
	LinkUp      bool
	LinkDown    bool
	Warmups     []workout.WarmupSet
	WarmupsDone []bool
}

// Screen is everything the view draws, built fresh on every change.
type Screen struct {
	UI          UIState
	Snapshot    trainer.Snapshot
	CurrentWeek int
	Days        []DayRow
	Day         *workout.WorkoutDay
	Exercises   []ExerciseRow
	LastTime    *workout.CompletedWorkout
	History     []workout.CompletedWorkout // newest first
	Profile     workout.UserProfile
}

func (c *Controller) Screen() Screen {
	state := c.model.UIState()
	snap := c.wm.Snapshot()
	s := Screen{
		UI:          state,
		Snapshot:    snap,
		CurrentWeek: snap.CurrentWeek,
		Profile:     c.wm.Profile(),
	}

	for _, d := range c.wm.DaysForWeek(state.Week) {
		s.Days = append(s.Days, DayRow{
			Day:      d,
			Complete: c.wm.IsDayComplete(d),
			InFlight: activeFor(snap, d),
		})
	}

	if day, ok := c.SelectedDay(); ok {
		s.Day = &day
		s.Exercises = c.exerciseRows(day, snap)
		if last, ok := c.wm.LastWorkoutFor(day); ok {
			s.LastTime = &last
		}
	}

	if state.Mode == ModeHistory {
		s.History = newestFirst(c.wm.History())
	}
	return s
}

func (c *Controller) exerciseRows(day workout.WorkoutDay, snap trainer.Snapshot) []ExerciseRow {
	inFlight := activeFor(snap, day)
	list := c.wm.ResolvedExercises(day)
	rows := make([]ExerciseRow, 0, len(list))
	for i, planned := range list {
		ex := c.wm.EffectiveExercise(planned)
		row := ExerciseRow{
			Exercise: ex,
			Reps:     c.wm.Reps(ex),
			Weight:   c.wm.WorkingWeight(ex),
			Logged:   make([]*int, ex.Sets),
			Warmups:  c.wm.Warmups(ex),
		}
		row.LinkUp, row.LinkDown = c.wm.SupersetConnection(list, i, day.Name)
		if inFlight {
			for set := range row.Logged {
				if n, ok := c.wm.LoggedReps(ex.Name, set); ok {
					row.Logged[set] = &n
				}
			}
		}
		row.WarmupsDone = make([]bool, len(row.Warmups))
		for w := range row.Warmups {
			row.WarmupsDone[w] = inFlight && c.wm.IsWarmupCompleted(ex.ID, w)
		}
		rows = append(rows, row)
	}
	return rows
}

func activeFor(snap trainer.Snapshot, day workout.WorkoutDay) bool {
	return snap.Status == trainer.SessionStatusActive && snap.Day != nil &&
		snap.Day.Name == day.Name && snap.Day.Week == day.Week
}

func newestFirst(h trainer.History) []workout.CompletedWorkout {
	out := append([]workout.CompletedWorkout(nil), h...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.After(out[j].StartTime)
	})
	return out
}
