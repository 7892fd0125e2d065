package trainer

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/lowaak/upper-lower/upper-lower-app/internal/store"
	"github.com/lowaak/upper-lower/upper-lower-app/internal/workout"
)

// Persistence helpers. Writes are best-effort: a failure is logged and the
// in-memory state stays authoritative. Reads that fail leave the zero value.
// All of them expect wm.mu to be held.

func (wm *WorkoutManager) saveValue(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		wm.logger.Printf("WorkoutManager: encode %s failed: %v", key, err)
		return
	}
	if err := wm.store.Set(key, raw); err != nil {
		wm.logger.Printf("WorkoutManager: save %s failed: %v", key, err)
	}
}

func (wm *WorkoutManager) loadValue(key string, v any) bool {
	raw, err := wm.store.Get(key)
	if errors.Is(err, store.ErrNotFound) {
		return false
	}
	if err != nil {
		wm.logger.Printf("WorkoutManager: load %s failed: %v", key, err)
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		wm.logger.Printf("WorkoutManager: load %s failed to parse: %v", key, err)
		return false
	}
	return true
}

func (wm *WorkoutManager) saveHistory() {
	wm.saveValue(keyHistory, wm.history)
}

func (wm *WorkoutManager) saveProgression() {
	wm.saveValue(keyCurrentWeek, wm.progression.CurrentWeek)
	wm.saveValue(keyCompletedDays, wm.progression.CompletedDaysByWeek)
}

func (wm *WorkoutManager) saveOverrides() {
	wm.saveValue(keyAddedExercises, wm.overrides.Added)
	wm.saveValue(keyRemovedDefaults, wm.overrides.Removed)
	wm.saveValue(keyOverriddenReps, wm.overrides.Reps)
	wm.saveValue(keyOverriddenEquip, wm.overrides.Equipment)
	wm.saveValue(keyExerciseOrder, wm.overrides.Order)
	wm.saveValue(keySupersets, wm.overrides.Supersets)
}

func (wm *WorkoutManager) saveWeights() {
	wm.saveValue(keySavedWeights, wm.prefs.SavedWeights)
}

func (wm *WorkoutManager) saveCustomExercises() {
	wm.saveValue(keyCustomExercises, wm.prefs.CustomExercises)
}

func (wm *WorkoutManager) saveProfile() {
	wm.saveValue(keySquatMax, wm.prefs.Profile.SquatMax)
	wm.saveValue(keyBenchMax, wm.prefs.Profile.BenchMax)
	wm.saveValue(keyDeadliftMax, wm.prefs.Profile.DeadliftMax)
	wm.saveValue(keyOnboarded, wm.prefs.Onboarded)
}

func (wm *WorkoutManager) saveAll() {
	wm.saveHistory()
	wm.saveProgression()
	wm.saveOverrides()
	wm.saveWeights()
	wm.saveCustomExercises()
	wm.saveProfile()
}

// saveSessionState mirrors the active session and stamps the save instant.
func (wm *WorkoutManager) saveSessionState() {
	if !wm.session.Active {
		return
	}
	wm.session.LastSaved = wm.clock()

	wm.saveValue(keySessionActive, true)
	wm.saveValue(keyActiveDay, wm.session.Day)
	wm.saveValue(keyCurrentSession, wm.session.Current)
	wm.saveValue(keyElapsedSeconds, wm.session.ElapsedSeconds)
	wm.saveValue(keyTimerPaused, wm.session.TimerPaused)
	wm.saveValue(keyLastSavedDate, wm.session.LastSaved)
	wm.saveValue(keyWarmups, wm.session.Warmups)
	wm.saveValue(keyRestRemaining, wm.session.Rest.Remaining)
	wm.saveValue(keyRestActive, wm.session.Rest.Active)
	wm.saveValue(keyRestPaused, wm.session.Rest.Paused)
	if wm.session.BackgroundedAt != nil {
		wm.saveValue(keyBackgroundDate, *wm.session.BackgroundedAt)
	} else if err := wm.store.Delete(keyBackgroundDate); err != nil {
		wm.logger.Printf("WorkoutManager: clear %s failed: %v", keyBackgroundDate, err)
	}
}

func (wm *WorkoutManager) clearSessionState() {
	if err := wm.store.Delete(sessionKeys...); err != nil {
		wm.logger.Printf("WorkoutManager: clear session state failed: %v", err)
	}
}

// loadPersisted replaces all long-lived state with what the store holds.
func (wm *WorkoutManager) loadPersisted() {
	wm.history = nil
	wm.loadValue(keyHistory, &wm.history)

	wm.progression = NewProgression()
	wm.loadValue(keyCurrentWeek, &wm.progression.CurrentWeek)
	wm.loadValue(keyCompletedDays, &wm.progression.CompletedDaysByWeek)
	wm.progression.ensure()

	wm.overrides = ScheduleOverrides{}
	wm.loadValue(keyAddedExercises, &wm.overrides.Added)
	wm.loadValue(keyRemovedDefaults, &wm.overrides.Removed)
	wm.loadValue(keyOverriddenReps, &wm.overrides.Reps)
	wm.loadValue(keyOverriddenEquip, &wm.overrides.Equipment)
	wm.loadValue(keyExerciseOrder, &wm.overrides.Order)
	wm.loadValue(keySupersets, &wm.overrides.Supersets)
	wm.overrides.ensure()

	wm.prefs = NewPreferences()
	wm.loadValue(keySavedWeights, &wm.prefs.SavedWeights)
	wm.loadValue(keyCustomExercises, &wm.prefs.CustomExercises)
	wm.loadValue(keySquatMax, &wm.prefs.Profile.SquatMax)
	wm.loadValue(keyBenchMax, &wm.prefs.Profile.BenchMax)
	wm.loadValue(keyDeadliftMax, &wm.prefs.Profile.DeadliftMax)
	wm.loadValue(keyOnboarded, &wm.prefs.Onboarded)
	wm.prefs.ensure()
}

// loadSessionState reads the session mirror. A session whose day or
// workout cannot be read is dropped.
func (wm *WorkoutManager) loadSessionState() {
	wm.session.reset()

	var active bool
	if !wm.loadValue(keySessionActive, &active) || !active {
		return
	}
	var day workout.WorkoutDay
	var current workout.CompletedWorkout
	if !wm.loadValue(keyActiveDay, &day) || !wm.loadValue(keyCurrentSession, &current) {
		wm.logger.Printf("WorkoutManager: session state incomplete, discarding")
		wm.clearSessionState()
		return
	}

	s := &wm.session
	s.Active = true
	s.Day = &day
	s.Current = &current
	wm.loadValue(keyElapsedSeconds, &s.ElapsedSeconds)
	wm.loadValue(keyTimerPaused, &s.TimerPaused)
	wm.loadValue(keyLastSavedDate, &s.LastSaved)
	var warmups map[uuid.UUID][]int
	if wm.loadValue(keyWarmups, &warmups) && warmups != nil {
		s.Warmups = warmups
	}
	wm.loadValue(keyRestRemaining, &s.Rest.Remaining)
	wm.loadValue(keyRestActive, &s.Rest.Active)
	wm.loadValue(keyRestPaused, &s.Rest.Paused)
	var backgrounded time.Time
	if wm.loadValue(keyBackgroundDate, &backgrounded) {
		s.BackgroundedAt = &backgrounded
	}
}
