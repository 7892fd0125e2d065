package tui

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/lowaak/upper-lower/upper-lower-app/internal/trainer"
	"github.com/lowaak/upper-lower/upper-lower-app/internal/workout"
)

var (
	ErrNoDaySelected  = errors.New("no day selected")
	ErrOtherDayActive = errors.New("another day's workout is in progress")
	ErrInvalidNumber  = errors.New("enter a positive number")
)

// Controller turns key presses into WorkoutManager calls and keeps the
// Model's selection in range.
type Controller struct {
	model  *Model
	wm     *trainer.WorkoutManager
	logger *log.Logger
}

func NewController(model *Model, wm *trainer.WorkoutManager, logger *log.Logger) *Controller {
	if model == nil {
		panic("Controller: model cannot be nil")
	}
	if wm == nil {
		panic("Controller: workoutManager cannot be nil")
	}
	if logger == nil {
		panic("Controller: logger cannot be nil")
	}
	return &Controller{model: model, wm: wm, logger: logger}
}

// --- Navigation ---

func (c *Controller) OnModeChange(mode Mode) {
	if info, ok := GetModeInfo(mode); ok {
		c.logger.Printf("Controller: Switching to %s mode", info.DisplayName)
	}
	c.model.SetMode(mode)
}

func (c *Controller) OnEscapeKey() {
	c.model.RequestClose()
}

// SelectWeek moves the browsed week by delta.
func (c *Controller) SelectWeek(delta int) {
	c.model.SetWeek(c.model.UIState().Week + delta)
}

// ShowCurrentWeek jumps the browser back to the program's current week.
func (c *Controller) ShowCurrentWeek() {
	c.model.SetWeek(c.wm.CurrentWeek())
}

// OnDaySelected opens day index of the browsed week in the workout page.
func (c *Controller) OnDaySelected(index int) {
	days := c.wm.DaysForWeek(c.model.UIState().Week)
	if index < 0 || index >= len(days) {
		c.logger.Printf("Controller: Invalid day index %d", index)
		return
	}
	c.model.SetDay(days[index].Name)
	c.model.SetMode(ModeSession)
}

// OpenActiveSession points the workout page at the day being trained.
func (c *Controller) OpenActiveSession() {
	snap := c.wm.Snapshot()
	if snap.Status != trainer.SessionStatusActive || snap.Day == nil {
		return
	}
	c.model.SetWeek(snap.Day.Week)
	c.model.SetDay(snap.Day.Name)
	c.model.SetMode(ModeSession)
}

// MoveSelection moves the cursor by exercise rows and set columns,
// clamped to the open day.
func (c *Controller) MoveSelection(dExercise, dSet int) {
	day, ok := c.SelectedDay()
	if !ok {
		return
	}
	list := c.wm.ResolvedExercises(day)
	if len(list) == 0 {
		c.model.SetSelection(0, 0)
		return
	}
	state := c.model.UIState()
	ex := clamp(state.SelectedExercise+dExercise, 0, len(list)-1)
	set := clamp(state.SelectedSet+dSet, 0, max(list[ex].Sets-1, 0))
	c.model.SetSelection(ex, set)
}

// SelectedDay is the open day of the browsed week.
func (c *Controller) SelectedDay() (workout.WorkoutDay, bool) {
	state := c.model.UIState()
	if state.DayName == "" {
		return workout.WorkoutDay{}, false
	}
	for _, d := range c.wm.DaysForWeek(state.Week) {
		if d.Name == state.DayName {
			return d, true
		}
	}
	return workout.WorkoutDay{}, false
}

func (c *Controller) selectedExercise() (workout.WorkoutDay, workout.Exercise, int, bool) {
	day, ok := c.SelectedDay()
	if !ok {
		return day, workout.Exercise{}, 0, false
	}
	list := c.wm.ResolvedExercises(day)
	state := c.model.UIState()
	if state.SelectedExercise >= len(list) {
		return day, workout.Exercise{}, 0, false
	}
	ex := c.wm.EffectiveExercise(list[state.SelectedExercise])
	return day, ex, state.SelectedSet, true
}

// --- Session ---

// StartSession begins the open day. A session for another day is left alone.
func (c *Controller) StartSession() error {
	day, ok := c.SelectedDay()
	if !ok {
		return ErrNoDaySelected
	}
	if err := c.checkSameDay(day); err != nil {
		return err
	}
	c.wm.StartSession(day)
	return nil
}

// checkSameDay refuses to log against day while another day is active.
func (c *Controller) checkSameDay(day workout.WorkoutDay) error {
	snap := c.wm.Snapshot()
	if snap.Status != trainer.SessionStatusActive || snap.Day == nil {
		return nil
	}
	if snap.Day.Name != day.Name || snap.Day.Week != day.Week {
		c.logger.Printf("Controller: %s week %d is in progress, finish it before logging %s week %d",
			snap.Day.Name, snap.Day.Week, day.Name, day.Week)
		return ErrOtherDayActive
	}
	return nil
}

// TapSet cycles the selected set's reps. needsInput is true for AMRAP
// sets, which take their count from EnterReps.
func (c *Controller) TapSet() (needsInput bool, err error) {
	day, ex, set, ok := c.selectedExercise()
	if !ok {
		return false, ErrNoDaySelected
	}
	if set >= ex.Sets {
		return false, nil
	}
	if err := c.checkSameDay(day); err != nil {
		return false, err
	}

	var current *int
	if n, logged := c.wm.LoggedReps(ex.Name, set); logged {
		current = &n
	}
	tap := workout.NextTapReps(c.wm.Reps(ex), current)
	if tap.NeedsInput {
		return true, nil
	}
	c.wm.UpdateSetLog(day, ex, set, tap.Reps, tap.Reps != nil && c.endsRound(ex, day, set))
	if current == nil && tap.Reps != nil {
		c.advance(day, ex, set)
	}
	return false, nil
}

// EnterReps logs a typed rep count for the selected set.
func (c *Controller) EnterReps(text string) error {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n <= 0 {
		return ErrInvalidNumber
	}
	day, ex, set, ok := c.selectedExercise()
	if !ok {
		return ErrNoDaySelected
	}
	if err := c.checkSameDay(day); err != nil {
		return err
	}
	_, logged := c.wm.LoggedReps(ex.Name, set)
	c.wm.UpdateSetLog(day, ex, set, &n, c.endsRound(ex, day, set))
	if !logged {
		c.advance(day, ex, set)
	}
	return nil
}

// ClearSelectedSet removes whatever is logged for the selected set.
func (c *Controller) ClearSelectedSet() {
	day, ex, set, ok := c.selectedExercise()
	if !ok || !activeFor(c.wm.Snapshot(), day) {
		return
	}
	if err := c.wm.ClearSet(ex.Name, set); err != nil {
		c.logger.Printf("Controller: Clear set failed: %v", err)
	}
}

// nextSlot is the set worked after set of ex: the next exercise of its
// superset in the same round, else the first of the next round.
func (c *Controller) nextSlot(ex workout.Exercise, day workout.WorkoutDay, set int) (trainer.SetSlot, bool) {
	slots := trainer.InterleaveSets(c.wm.SupersetGroup(ex, day))
	for i, slot := range slots {
		if slot.Exercise.Name == ex.Name && slot.SetIndex == set && i+1 < len(slots) {
			return slots[i+1], true
		}
	}
	return trainer.SetSlot{}, false
}

// endsRound reports whether set of ex closes a round, after which the
// group rests. Every set of a lone exercise is its own round.
func (c *Controller) endsRound(ex workout.Exercise, day workout.WorkoutDay, set int) bool {
	next, ok := c.nextSlot(ex, day, set)
	return !ok || next.SetIndex != set
}

// advance moves the cursor to the set worked after a newly logged one.
func (c *Controller) advance(day workout.WorkoutDay, ex workout.Exercise, set int) {
	next, ok := c.nextSlot(ex, day, set)
	if !ok {
		return
	}
	for i, planned := range c.wm.ResolvedExercises(day) {
		if planned.Name == next.Exercise.Name {
			c.model.SetSelection(i, next.SetIndex)
			return
		}
	}
}

func (c *Controller) TogglePause() {
	c.wm.TogglePause()
}

func (c *Controller) StartRest() {
	c.logger.Printf("Controller: Resting %ds", c.wm.RestSeconds())
	c.wm.StartRestTimer(0)
}

// AdjustRest adds steps of restAdjustSeconds to a running rest, or
// starts one when none is running.
func (c *Controller) AdjustRest(steps int) {
	if !c.wm.Snapshot().Rest.Active {
		if steps > 0 {
			c.wm.StartRestTimer(0)
		}
		return
	}
	c.wm.AddRestTime(steps * restAdjustSeconds)
}

func (c *Controller) ToggleRestPause() {
	c.wm.ToggleRestTimerPause()
}

func (c *Controller) SkipRest() {
	c.wm.SkipRestTimer()
}

// EndSession saves or discards the active workout.
func (c *Controller) EndSession(save bool) {
	done, err := c.wm.EndSession(save)
	if err != nil {
		c.logger.Printf("Controller: End session failed: %v", err)
		return
	}
	if done != nil {
		c.logger.Printf("Controller: Saved %s (%s)", done.DayName, workout.FormatDuration(done.Duration))
		c.model.SetWeek(c.wm.CurrentWeek())
	}
	c.model.Refresh()
}

// ToggleWarmup flips warm-up rung idx of the selected exercise.
func (c *Controller) ToggleWarmup(idx int) {
	_, ex, _, ok := c.selectedExercise()
	if !ok {
		return
	}
	if idx < 0 || idx >= len(c.wm.Warmups(ex)) {
		return
	}
	c.wm.ToggleWarmup(ex.ID, idx)
}

// --- Program ---

func (c *Controller) ToggleDayCompletion(index int) {
	days := c.wm.DaysForWeek(c.model.UIState().Week)
	if index < 0 || index >= len(days) {
		return
	}
	c.wm.ToggleDayCompletion(days[index])
	c.model.Refresh()
}

func (c *Controller) JumpToBrowsedWeek() {
	c.wm.JumpToWeek(c.model.UIState().Week)
	c.logger.Printf("Controller: Current week set to %d", c.wm.CurrentWeek())
	c.model.Refresh()
}

func (c *Controller) ResetProgram() {
	c.wm.ResetProgram()
	c.model.SetWeek(1)
	c.model.Refresh()
}

// SetProfile stores the three one-rep maxes typed by the user.
func (c *Controller) SetProfile(squat, bench, deadlift string) error {
	var maxes [3]float64
	for i, text := range []string{squat, bench, deadlift} {
		v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil || v < 0 {
			return fmt.Errorf("%w: %q", ErrInvalidNumber, text)
		}
		maxes[i] = v
	}
	c.wm.SetProfile(workout.UserProfile{SquatMax: maxes[0], BenchMax: maxes[1], DeadliftMax: maxes[2]})
	c.wm.CompleteOnboarding()
	c.model.Refresh()
	return nil
}

func (c *Controller) Profile() workout.UserProfile {
	return c.wm.Profile()
}

// NeedsOnboarding is true until the one-rep maxes have been entered once.
func (c *Controller) NeedsOnboarding() bool {
	return !c.wm.HasOnboarded()
}

// --- Schedule editing ---

// SetWeight saves the working weight for the selected exercise.
func (c *Controller) SetWeight(text string) error {
	w, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || w < 0 {
		return ErrInvalidNumber
	}
	_, ex, _, ok := c.selectedExercise()
	if !ok {
		return ErrNoDaySelected
	}
	c.wm.SaveWeight(ex.Name, w)
	c.model.Refresh()
	return nil
}

// SetReps overrides the selected exercise's reps. Empty clears the override.
func (c *Controller) SetReps(text string) error {
	_, ex, _, ok := c.selectedExercise()
	if !ok {
		return ErrNoDaySelected
	}
	c.wm.UpdateReps(ex.Name, strings.TrimSpace(text))
	c.model.Refresh()
	return nil
}

// CycleEquipment switches the selected exercise to the next equipment kind.
func (c *Controller) CycleEquipment() {
	_, ex, _, ok := c.selectedExercise()
	if !ok {
		return
	}
	next := workout.AllEquipment[0]
	for i, eq := range workout.AllEquipment {
		if eq == ex.Equipment {
			next = workout.AllEquipment[(i+1)%len(workout.AllEquipment)]
			break
		}
	}
	c.wm.UpdateEquipment(ex.Name, next)
	c.logger.Printf("Controller: %s now on %s", ex.Name, next.DisplayName())
	c.model.Refresh()
}

// AddExercise appends an accessory to the open day.
func (c *Controller) AddExercise(name, sets, reps string, eq workout.Equipment) error {
	day, ok := c.SelectedDay()
	if !ok {
		return ErrNoDaySelected
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("exercise name is required")
	}
	n, err := strconv.Atoi(strings.TrimSpace(sets))
	if err != nil || n <= 0 {
		return fmt.Errorf("sets: %w", ErrInvalidNumber)
	}
	reps = strings.TrimSpace(reps)
	if reps == "" {
		return errors.New("reps are required")
	}
	c.wm.AddExerciseToSchedule(day, name, n, reps, eq)
	c.model.Refresh()
	return nil
}

// ExerciseNames lists every known exercise whose name contains prefix,
// case-insensitively.
func (c *Controller) ExerciseNames(prefix string) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return nil
	}
	var out []string
	for _, name := range c.wm.AllExerciseNames() {
		if strings.Contains(strings.ToLower(name), prefix) {
			out = append(out, name)
		}
	}
	return out
}

// RemoveSelectedExercise drops the selected exercise from the open day.
func (c *Controller) RemoveSelectedExercise() {
	day, ex, _, ok := c.selectedExercise()
	if !ok {
		return
	}
	c.wm.RemoveExerciseFromSchedule(day, ex)
	c.MoveSelection(0, 0)
	c.model.Refresh()
}

// MoveExercise shifts the selected exercise up or down and follows it.
func (c *Controller) MoveExercise(delta int) {
	day, ok := c.SelectedDay()
	if !ok {
		return
	}
	state := c.model.UIState()
	if c.wm.MoveExercise(day, state.SelectedExercise, delta) {
		c.model.SetSelection(state.SelectedExercise+delta, state.SelectedSet)
		c.model.Refresh()
	}
}

// LinkWithNext puts the selected exercise and the one below it in a superset.
func (c *Controller) LinkWithNext() {
	day, ok := c.SelectedDay()
	if !ok {
		return
	}
	list := c.wm.ResolvedExercises(day)
	i := c.model.UIState().SelectedExercise
	if i+1 >= len(list) {
		return
	}
	names := []string{list[i].Name, list[i+1].Name}
	if partners, ok := c.wm.Partners(list[i].Name, day.Name); ok {
		names = append(names, partners...)
	}
	c.wm.CreateSuperset(day.Name, names)
	c.model.Refresh()
}

func (c *Controller) Unlink() {
	day, ex, _, ok := c.selectedExercise()
	if !ok {
		return
	}
	c.wm.RemoveSuperset(ex.Name, day.Name)
	c.model.Refresh()
}

// --- History ---

// DeleteWorkout removes entry index of the newest-first history list.
func (c *Controller) DeleteWorkout(index int) error {
	h := newestFirst(c.wm.History())
	if index < 0 || index >= len(h) {
		return trainer.ErrWorkoutNotFound
	}
	if err := c.wm.DeleteWorkout(h[index].ID); err != nil {
		return err
	}
	c.logger.Printf("Controller: Deleted %s from %s", h[index].DayName, h[index].StartTime.Format("2006-01-02"))
	c.model.Refresh()
	return nil
}

// --- Lifecycle ---

// Suspend backgrounds the engine around park, which returns once the user
// brings the app back.
func (c *Controller) Suspend(park func()) {
	c.wm.Background()
	park()
	r := c.wm.Foreground()
	if r.RestExpired {
		c.model.PushAlert(Alert{Title: trainer.RestNotificationTitle, Body: trainer.RestNotificationBody})
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
