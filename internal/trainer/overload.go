package trainer

import (
	"github.com/lowaak/upper-lower/upper-lower-app/internal/workout"
)

// ProgressiveOverload works out the saved weights a finished session earns.
// An accessory qualifies when every planned set was logged and every logged
// set reached the target reps; its new weight is the last set's weight plus
// OverloadIncrement. Main lifts follow their one-rep max and never qualify.
func ProgressiveOverload(planned []workout.Exercise, session workout.CompletedWorkout, repsFor func(workout.Exercise) string) map[string]float64 {
	raised := make(map[string]float64)
	for _, ex := range planned {
		if ex.LiftType != workout.LiftAccessory {
			continue
		}
		logged, ok := session.LoggedExercise(ex.Name)
		if !ok || len(logged.Sets) == 0 || len(logged.Sets) < ex.Sets {
			continue
		}
		target := workout.TargetReps(repsFor(ex))
		if target <= 0 {
			continue
		}
		if !allSetsReach(logged.Sets, target) {
			continue
		}
		raised[ex.Name] = logged.Sets[len(logged.Sets)-1].Weight + OverloadIncrement
	}
	return raised
}

func allSetsReach(sets []workout.CompletedSet, target int) bool {
	for _, s := range sets {
		if workout.PerformedReps(s.Reps) < target {
			return false
		}
	}
	return true
}
