package trainer

import (
	"time"

	"github.com/google/uuid"

	"github.com/lowaak/upper-lower/upper-lower-app/internal/workout"
)

// --- Schedule ---

// DaysForWeek returns the program's days for week.
func (wm *WorkoutManager) DaysForWeek(week int) []workout.WorkoutDay {
	return wm.catalog.GetDays(week)
}

// ResolvedExercises is the ordered, override-applied plan for day.
func (wm *WorkoutManager) ResolvedExercises(day workout.WorkoutDay) []workout.Exercise {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	return wm.overrides.Resolve(day)
}

// EffectiveExercise applies the equipment override for ex's name.
func (wm *WorkoutManager) EffectiveExercise(ex workout.Exercise) workout.Exercise {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	return wm.overrides.Effective(ex)
}

// Reps is the reps target for ex after overrides.
func (wm *WorkoutManager) Reps(ex workout.Exercise) string {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	return wm.overrides.RepsFor(ex)
}

// AddExerciseToSchedule puts a new accessory on this week's day and
// registers the name as custom when the program does not know it.
func (wm *WorkoutManager) AddExerciseToSchedule(day workout.WorkoutDay, name string, sets int, reps string, eq workout.Equipment) workout.Exercise {
	if sets <= 0 {
		sets = DefaultAddedSets
	}
	ex := workout.NewExercise(name, sets, reps, workout.LiftAccessory, nil, CustomAddedNote, eq)

	known := containsName(wm.catalog.ExerciseNames(), name)

	wm.mu.Lock()
	wm.overrides.AddExercise(day, ex)
	wm.saveValue(keyAddedExercises, wm.overrides.Added)
	if !known && wm.prefs.AddCustomExercise(name) {
		wm.saveCustomExercises()
	}
	snap := wm.buildSnapshot()
	wm.mu.Unlock()

	wm.logger.Printf("WorkoutManager: Added %s to %s", name, ScheduleKey(day.Week, day.Name))
	wm.snapshots.Publish(snap)
	return ex
}

// RemoveExerciseFromSchedule takes ex off this week's day.
func (wm *WorkoutManager) RemoveExerciseFromSchedule(day workout.WorkoutDay, ex workout.Exercise) {
	wm.mu.Lock()
	wm.overrides.RemoveExercise(day, ex)
	wm.saveValue(keyAddedExercises, wm.overrides.Added)
	wm.saveValue(keyRemovedDefaults, wm.overrides.Removed)
	snap := wm.buildSnapshot()
	wm.mu.Unlock()

	wm.logger.Printf("WorkoutManager: Removed %s from %s", ex.Name, ScheduleKey(day.Week, day.Name))
	wm.snapshots.Publish(snap)
}

// UpdateReps overrides the reps target everywhere name appears.
func (wm *WorkoutManager) UpdateReps(name, reps string) {
	wm.mu.Lock()
	wm.overrides.SetReps(name, reps)
	wm.saveValue(keyOverriddenReps, wm.overrides.Reps)
	snap := wm.buildSnapshot()
	wm.mu.Unlock()

	wm.snapshots.Publish(snap)
}

// UpdateEquipment overrides the equipment everywhere name appears.
func (wm *WorkoutManager) UpdateEquipment(name string, eq workout.Equipment) {
	wm.mu.Lock()
	wm.overrides.SetEquipment(name, eq)
	wm.saveValue(keyOverriddenEquip, wm.overrides.Equipment)
	snap := wm.buildSnapshot()
	wm.mu.Unlock()

	wm.snapshots.Publish(snap)
}

// SaveNewOrder stores the working order of a day across all weeks.
func (wm *WorkoutManager) SaveNewOrder(dayName string, names []string) {
	wm.mu.Lock()
	wm.overrides.SetOrder(dayName, names)
	wm.saveValue(keyExerciseOrder, wm.overrides.Order)
	snap := wm.buildSnapshot()
	wm.mu.Unlock()

	wm.snapshots.Publish(snap)
}

// MoveExercise shifts the exercise at index from of the resolved day by
// delta places and saves the result as the day's order.
func (wm *WorkoutManager) MoveExercise(day workout.WorkoutDay, from, delta int) bool {
	wm.mu.Lock()
	list := wm.overrides.Resolve(day)
	to := from + delta
	if from < 0 || from >= len(list) || to < 0 || to >= len(list) {
		wm.mu.Unlock()
		return false
	}
	list[from], list[to] = list[to], list[from]
	names := make([]string, len(list))
	for i, ex := range list {
		names[i] = ex.Name
	}
	wm.overrides.SetOrder(day.Name, names)
	wm.saveValue(keyExerciseOrder, wm.overrides.Order)
	snap := wm.buildSnapshot()
	wm.mu.Unlock()

	wm.snapshots.Publish(snap)
	return true
}

// --- Supersets ---

func (wm *WorkoutManager) CreateSuperset(dayName string, names []string) {
	wm.mu.Lock()
	wm.overrides.CreateSuperset(dayName, names)
	wm.saveValue(keySupersets, wm.overrides.Supersets)
	snap := wm.buildSnapshot()
	wm.mu.Unlock()

	wm.snapshots.Publish(snap)
}

func (wm *WorkoutManager) Partners(name, dayName string) (Superset, bool) {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	s, ok := wm.overrides.Partners(name, dayName)
	return append(Superset(nil), s...), ok
}

func (wm *WorkoutManager) RemoveSuperset(name, dayName string) {
	wm.mu.Lock()
	wm.overrides.RemoveSuperset(name, dayName)
	wm.saveValue(keySupersets, wm.overrides.Supersets)
	snap := wm.buildSnapshot()
	wm.mu.Unlock()

	wm.snapshots.Publish(snap)
}

// SupersetConnection reports whether list[i] links to its neighbours.
func (wm *WorkoutManager) SupersetConnection(list []workout.Exercise, i int, dayName string) (up, down bool) {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	return wm.overrides.Connection(list, i, dayName)
}

// SupersetGroup is the resolved exercises worked together with ex on day.
func (wm *WorkoutManager) SupersetGroup(ex workout.Exercise, day workout.WorkoutDay) []workout.Exercise {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	return wm.overrides.Group(ex, day.Name, wm.overrides.Resolve(day))
}

// --- Progression ---

func (wm *WorkoutManager) CurrentWeek() int {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	return wm.progression.CurrentWeek
}

func (wm *WorkoutManager) IsDayComplete(day workout.WorkoutDay) bool {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	return wm.progression.IsDayComplete(day.Week, day.Name)
}

// ToggleDayCompletion marks or unmarks day by hand.
func (wm *WorkoutManager) ToggleDayCompletion(day workout.WorkoutDay) {
	wm.mu.Lock()
	_, advanced := wm.progression.ToggleDay(day.Week, day.Name)
	if advanced {
		wm.logger.Printf("WorkoutManager: Week %d complete, advancing to week %d", day.Week, wm.progression.CurrentWeek)
	}
	wm.saveProgression()
	snap := wm.buildSnapshot()
	wm.mu.Unlock()

	wm.snapshots.Publish(snap)
}

// ResetProgram goes back to week 1 with nothing complete. History stays.
func (wm *WorkoutManager) ResetProgram() {
	wm.mu.Lock()
	wm.progression.Reset()
	wm.saveProgression()
	snap := wm.buildSnapshot()
	wm.mu.Unlock()

	wm.logger.Printf("WorkoutManager: Program reset")
	wm.snapshots.Publish(snap)
}

func (wm *WorkoutManager) JumpToWeek(week int) {
	wm.mu.Lock()
	wm.progression.JumpToWeek(week)
	wm.saveProgression()
	snap := wm.buildSnapshot()
	wm.mu.Unlock()

	wm.snapshots.Publish(snap)
}

// --- Exercise database ---

func (wm *WorkoutManager) Weight(name string) (float64, bool) {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	return wm.prefs.Weight(name)
}

func (wm *WorkoutManager) SaveWeight(name string, weight float64) {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	wm.prefs.SaveWeight(name, weight)
	wm.saveWeights()
}

// WorkingWeight is the saved weight, else the percentage target, else 0.
func (wm *WorkoutManager) WorkingWeight(ex workout.Exercise) float64 {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	return wm.prefs.WorkingWeight(ex)
}

// Warmups is the warm-up ladder for ex at its working weight.
func (wm *WorkoutManager) Warmups(ex workout.Exercise) []workout.WarmupSet {
	return workout.Warmups(ex, wm.WorkingWeight(ex))
}

func (wm *WorkoutManager) AddCustomExercise(name string) bool {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	if !wm.prefs.AddCustomExercise(name) {
		return false
	}
	wm.saveCustomExercises()
	return true
}

// AllExerciseNames is every program and custom exercise name, sorted.
func (wm *WorkoutManager) AllExerciseNames() []string {
	programNames := wm.catalog.ExerciseNames()
	wm.mu.Lock()
	defer wm.mu.Unlock()
	return wm.prefs.AllExerciseNames(programNames)
}

// --- Profile ---

func (wm *WorkoutManager) Profile() workout.UserProfile {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	return wm.prefs.Profile
}

func (wm *WorkoutManager) SetProfile(p workout.UserProfile) {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	wm.prefs.Profile = p
	wm.saveProfile()
}

func (wm *WorkoutManager) HasOnboarded() bool {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	return wm.prefs.Onboarded
}

func (wm *WorkoutManager) CompleteOnboarding() {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	wm.prefs.Onboarded = true
	wm.saveValue(keyOnboarded, true)
}

// --- History ---

// History returns a copy of every finished workout, oldest first.
func (wm *WorkoutManager) History() History {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	return wm.history.Clone()
}

// LastWorkoutFor is the latest finished workout of day in its week.
func (wm *WorkoutManager) LastWorkoutFor(day workout.WorkoutDay) (workout.CompletedWorkout, bool) {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	w, ok := wm.history.LastFor(day.Name, day.Week)
	return w.Clone(), ok
}

// WorkoutsOn lists the workouts started on date's calendar day.
func (wm *WorkoutManager) WorkoutsOn(date time.Time) []workout.CompletedWorkout {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	found := wm.history.On(date)
	for i := range found {
		found[i] = found[i].Clone()
	}
	return found
}

func (wm *WorkoutManager) DeleteWorkout(id uuid.UUID) error {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	h, err := wm.history.Delete(id)
	if err != nil {
		return err
	}
	wm.history = h
	wm.saveHistory()
	return nil
}

func (wm *WorkoutManager) UpdateWorkoutTimes(id uuid.UUID, start, end time.Time) error {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	if err := wm.history.UpdateTimes(id, start, end); err != nil {
		return err
	}
	wm.saveHistory()
	return nil
}
