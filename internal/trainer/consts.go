package trainer

import "time"

const (
	// DefaultRestSeconds is the rest period started after a superset round.
	DefaultRestSeconds = 120

	// DaysPerWeek completed days advance the current week.
	DaysPerWeek = 4

	// OverloadIncrement is added to an accessory's weight after a session
	// where every set hit the target.
	OverloadIncrement = 5.0

	// StaleGap is the longest time away that still counts toward the
	// session clock. Anything longer pauses the session instead.
	StaleGap = 24 * time.Hour

	// CustomAddedNote marks exercises the user put on a day by hand.
	CustomAddedNote = "Custom Added"

	// DefaultAddedSets is the set count offered for a hand-added exercise.
	DefaultAddedSets = 3
)

// Rest notification delivered by the Notifier.
const (
	RestNotificationID    = "rest_timer_done"
	RestNotificationTitle = "Rest Complete"
	RestNotificationBody  = "Time to get back to work!"
)

// Store keys. Session keys are cleared when a session ends.
const (
	keySessionActive   = "wm_session_active"
	keyActiveDay       = "wm_active_day"
	keyCurrentSession  = "wm_current_session"
	keyElapsedSeconds  = "wm_elapsed_seconds"
	keyTimerPaused     = "wm_is_timer_paused"
	keyLastSavedDate   = "wm_last_saved_date"
	keyBackgroundDate  = "wm_background_date"
	keyWarmups         = "wm_completed_warmups"
	keyRestRemaining   = "wm_rest_time_remaining"
	keyRestActive      = "wm_is_rest_timer_active"
	keyRestPaused      = "wm_is_rest_timer_paused"
	keyHistory         = "workout_history"
	keyCurrentWeek     = "current_week"
	keyCompletedDays   = "completed_days_by_week_dict"
	keyAddedExercises  = "added_exercises_schedule"
	keyRemovedDefaults = "removed_exercises_schedule"
	keyOverriddenReps  = "overridden_reps_schedule"
	keyOverriddenEquip = "overridden_equipment_schedule"
	keyExerciseOrder   = "workout_exercise_order"
	keySupersets       = "workout_supersets_v2"
	keySavedWeights    = "exercise_database_weights"
	keyCustomExercises = "exercise_database_custom"
	keySquatMax        = "squatMax"
	keyBenchMax        = "benchMax"
	keyDeadliftMax     = "deadliftMax"
	keyOnboarded       = "hasOnboarded"
)

var sessionKeys = []string{
	keySessionActive,
	keyActiveDay,
	keyCurrentSession,
	keyElapsedSeconds,
	keyTimerPaused,
	keyLastSavedDate,
	keyBackgroundDate,
	keyWarmups,
	keyRestRemaining,
	keyRestActive,
	keyRestPaused,
}

// SessionStatus is the state of the session engine.
type SessionStatus int

const (
	SessionStatusIdle SessionStatus = iota
	SessionStatusActive
)

func (s SessionStatus) String() string {
	switch s {
	case SessionStatusIdle:
		return "Idle"
	case SessionStatusActive:
		return "Active"
	default:
		return "Unknown"
	}
}
