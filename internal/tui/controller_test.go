package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/upper-lower/upper-lower-app/internal/trainer"
	"github.com/lowaak/upper-lower/upper-lower-app/internal/workout"
)

func TestNewController_PanicsOnNilDependencies(t *testing.T) {
	h := newHarness(t)
	assert.Panics(t, func() { NewController(nil, h.wm, testLogger()) })
	assert.Panics(t, func() { NewController(h.model, nil, testLogger()) })
	assert.Panics(t, func() { NewController(h.model, h.wm, nil) })
}

func TestOnDaySelected_OpensWorkoutPage(t *testing.T) {
	h := newHarness(t)
	h.openDay(1, 1)

	state := h.model.UIState()
	assert.Equal(t, ModeSession, state.Mode)
	assert.Equal(t, "Day 2", state.DayName)

	day, ok := h.ctrl.SelectedDay()
	require.True(t, ok)
	assert.Equal(t, 1, day.Week)

	h.ctrl.OnDaySelected(99)
	assert.Equal(t, "Day 2", h.model.UIState().DayName)
}

func TestSelectWeek_ClampsAtOne(t *testing.T) {
	h := newHarness(t)
	h.ctrl.SelectWeek(-3)
	assert.Equal(t, 1, h.model.UIState().Week)
	h.ctrl.SelectWeek(2)
	assert.Equal(t, 3, h.model.UIState().Week)

	h.ctrl.ShowCurrentWeek()
	assert.Equal(t, 1, h.model.UIState().Week)
}

func TestMoveSelection_ClampsToDay(t *testing.T) {
	h := newHarness(t)
	h.openDay(1, 0)

	h.ctrl.MoveSelection(0, 10)
	assert.Equal(t, 3, h.model.UIState().SelectedSet, "Back Squat has four sets")

	h.ctrl.MoveSelection(1, 0)
	assert.Equal(t, 1, h.model.UIState().SelectedExercise)
	assert.Equal(t, 2, h.model.UIState().SelectedSet, "Stiff-Leg Deadlift has three sets")

	h.ctrl.MoveSelection(-5, -5)
	assert.Equal(t, 0, h.model.UIState().SelectedExercise)
	assert.Equal(t, 0, h.model.UIState().SelectedSet)

	h.ctrl.MoveSelection(50, 0)
	assert.Equal(t, len(h.wm.ResolvedExercises(mustDay(t, h)))-1, h.model.UIState().SelectedExercise)
}

func mustDay(t *testing.T, h *harness) workout.WorkoutDay {
	t.Helper()
	day, ok := h.ctrl.SelectedDay()
	require.True(t, ok)
	return day
}

func TestTapSet_CyclesRepsAndStartsRest(t *testing.T) {
	h := newHarness(t)
	h.openDay(1, 0)

	needsInput, err := h.ctrl.TapSet()
	require.NoError(t, err)
	assert.False(t, needsInput)

	snap := h.wm.Snapshot()
	require.Equal(t, trainer.SessionStatusActive, snap.Status)
	assert.Equal(t, "Day 1", snap.Day.Name)
	assert.True(t, snap.Rest.Active, "a lone exercise rests after every set")

	reps, ok := h.wm.LoggedReps("Back Squat", 0)
	require.True(t, ok)
	assert.Equal(t, 4, reps)
	assert.Equal(t, 1, h.model.UIState().SelectedSet, "a new log moves on to the next set")

	h.model.SetSelection(0, 0)
	for _, want := range []int{3, 2, 1} {
		_, err = h.ctrl.TapSet()
		require.NoError(t, err)
		reps, ok = h.wm.LoggedReps("Back Squat", 0)
		require.True(t, ok)
		assert.Equal(t, want, reps)
	}

	_, err = h.ctrl.TapSet()
	require.NoError(t, err)
	_, ok = h.wm.LoggedReps("Back Squat", 0)
	assert.False(t, ok, "tapping at 1 clears the set")
}

func TestTapSet_SupersetRestsAfterLastMember(t *testing.T) {
	h := newHarness(t)
	h.openDay(1, 0)
	h.ctrl.LinkWithNext()

	_, err := h.ctrl.TapSet()
	require.NoError(t, err)
	assert.False(t, h.wm.Snapshot().Rest.Active, "first member goes straight to its partner")
	state := h.model.UIState()
	assert.Equal(t, []int{1, 0}, []int{state.SelectedExercise, state.SelectedSet})

	_, err = h.ctrl.TapSet()
	require.NoError(t, err)
	assert.True(t, h.wm.Snapshot().Rest.Active)
	state = h.model.UIState()
	assert.Equal(t, []int{0, 1}, []int{state.SelectedExercise, state.SelectedSet}, "next round starts at the first member")

	h.ctrl.Unlink()
	_, ok := h.wm.Partners("Back Squat", "Day 1")
	assert.False(t, ok)
}

func TestTapSet_UnevenSupersetLastRound(t *testing.T) {
	h := newHarness(t)
	h.openDay(1, 0)
	h.ctrl.LinkWithNext()

	// Back Squat has four sets and its partner three, so the fourth round
	// is Back Squat alone.
	h.model.SetSelection(0, 3)
	_, err := h.ctrl.TapSet()
	require.NoError(t, err)
	assert.True(t, h.wm.Snapshot().Rest.Active)
	state := h.model.UIState()
	assert.Equal(t, []int{0, 3}, []int{state.SelectedExercise, state.SelectedSet}, "nothing follows the last round")

	h.model.SetSelection(0, 2)
	h.wm.SkipRestTimer()
	_, err = h.ctrl.TapSet()
	require.NoError(t, err)
	assert.False(t, h.wm.Snapshot().Rest.Active)
	state = h.model.UIState()
	assert.Equal(t, []int{1, 2}, []int{state.SelectedExercise, state.SelectedSet})
}

func TestTapSet_RefusesAnotherDay(t *testing.T) {
	h := newHarness(t)
	h.openDay(1, 0)
	require.NoError(t, h.ctrl.StartSession())

	h.openDay(1, 1)
	_, err := h.ctrl.TapSet()
	assert.ErrorIs(t, err, ErrOtherDayActive)
	assert.ErrorIs(t, h.ctrl.StartSession(), ErrOtherDayActive)
	assert.Equal(t, 0, h.wm.Snapshot().Session.SetCount("Barbell Bench Press"))

	h.ctrl.OpenActiveSession()
	assert.Equal(t, "Day 1", h.model.UIState().DayName)
}

func TestTapSet_WithoutDay(t *testing.T) {
	h := newHarness(t)
	_, err := h.ctrl.TapSet()
	assert.ErrorIs(t, err, ErrNoDaySelected)
	assert.ErrorIs(t, h.ctrl.StartSession(), ErrNoDaySelected)
}

func TestTapSet_AMRAPAsksForInput(t *testing.T) {
	h := newHarness(t)
	h.openDay(7, 1)
	h.ctrl.MoveSelection(4, 0)

	_, ex, _, ok := h.ctrl.selectedExercise()
	require.True(t, ok)
	require.Equal(t, "Push-Up", ex.Name)

	needsInput, err := h.ctrl.TapSet()
	require.NoError(t, err)
	assert.True(t, needsInput)
	assert.Equal(t, trainer.SessionStatusIdle, h.wm.Snapshot().Status)

	assert.ErrorIs(t, h.ctrl.EnterReps("lots"), ErrInvalidNumber)
	assert.ErrorIs(t, h.ctrl.EnterReps("0"), ErrInvalidNumber)
	require.NoError(t, h.ctrl.EnterReps(" 17 "))

	reps, ok := h.wm.LoggedReps("Push-Up", 0)
	require.True(t, ok)
	assert.Equal(t, 17, reps)
	assert.Equal(t, 1, h.model.UIState().SelectedSet)

	h.model.SetSelection(4, 0)
	require.NoError(t, h.ctrl.EnterReps("15"))
	assert.Equal(t, 0, h.model.UIState().SelectedSet, "correcting a logged set keeps the cursor")
	h.ctrl.ClearSelectedSet()
	_, ok = h.wm.LoggedReps("Push-Up", 0)
	assert.False(t, ok)
}

func TestRestControls(t *testing.T) {
	h := newHarness(t)
	h.openDay(1, 0)

	h.ctrl.AdjustRest(-1)
	assert.False(t, h.wm.Snapshot().Rest.Active)

	require.NoError(t, h.ctrl.StartSession())
	h.ctrl.StartRest()
	rest := h.wm.Snapshot().Rest
	require.True(t, rest.Active)
	assert.Equal(t, trainer.DefaultRestSeconds, rest.Remaining)

	h.ctrl.AdjustRest(2)
	assert.Equal(t, trainer.DefaultRestSeconds+2*restAdjustSeconds, h.wm.Snapshot().Rest.Remaining)

	h.ctrl.ToggleRestPause()
	assert.True(t, h.wm.Snapshot().Rest.Paused)

	h.ctrl.SkipRest()
	assert.False(t, h.wm.Snapshot().Rest.Active)

	h.ctrl.TogglePause()
	assert.True(t, h.wm.Snapshot().TimerPaused)
}

func TestEndSession_SavesAndDeletesFromHistory(t *testing.T) {
	h := newHarness(t)
	h.openDay(1, 0)
	_, err := h.ctrl.TapSet()
	require.NoError(t, err)

	h.ctrl.EndSession(true)
	assert.Equal(t, trainer.SessionStatusIdle, h.wm.Snapshot().Status)
	require.Len(t, h.wm.History(), 1)
	assert.True(t, h.wm.IsDayComplete(mustDay(t, h)))

	h.model.SetMode(ModeHistory)
	screen := h.ctrl.Screen()
	require.Len(t, screen.History, 1)
	assert.Equal(t, "Day 1", screen.History[0].DayName)

	assert.ErrorIs(t, h.ctrl.DeleteWorkout(3), trainer.ErrWorkoutNotFound)
	require.NoError(t, h.ctrl.DeleteWorkout(0))
	assert.Empty(t, h.wm.History())

	h.ctrl.EndSession(false)
	assert.Equal(t, trainer.SessionStatusIdle, h.wm.Snapshot().Status)
}

func TestToggleDayCompletionAndReset(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 4; i++ {
		h.ctrl.ToggleDayCompletion(i)
	}
	assert.Equal(t, 2, h.wm.CurrentWeek(), "finishing every day advances the week")

	h.ctrl.SelectWeek(3)
	h.ctrl.JumpToBrowsedWeek()
	assert.Equal(t, 4, h.wm.CurrentWeek())

	h.ctrl.ResetProgram()
	assert.Equal(t, 1, h.wm.CurrentWeek())
	assert.Equal(t, 1, h.model.UIState().Week)
}

func TestSetProfile(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.ctrl.NeedsOnboarding())

	assert.ErrorIs(t, h.ctrl.SetProfile("300", "heavy", "400"), ErrInvalidNumber)
	require.NoError(t, h.ctrl.SetProfile("300", "225", "405.5"))

	assert.False(t, h.ctrl.NeedsOnboarding())
	assert.Equal(t, workout.UserProfile{SquatMax: 300, BenchMax: 225, DeadliftMax: 405.5}, h.ctrl.Profile())
}

func TestScheduleEditing(t *testing.T) {
	h := newHarness(t)
	h.openDay(1, 0)

	require.NoError(t, h.ctrl.SetWeight("185"))
	w, ok := h.wm.Weight("Back Squat")
	require.True(t, ok)
	assert.Equal(t, 185.0, w)
	assert.ErrorIs(t, h.ctrl.SetWeight("-5"), ErrInvalidNumber)

	require.NoError(t, h.ctrl.SetReps("5"))
	day := mustDay(t, h)
	assert.Equal(t, "5", h.wm.Reps(day.Exercises[0]))
	require.NoError(t, h.ctrl.SetReps(""))
	assert.Equal(t, "4", h.wm.Reps(day.Exercises[0]))

	h.ctrl.CycleEquipment()
	assert.Equal(t, workout.EquipmentBarbell25, h.wm.EffectiveExercise(day.Exercises[0]).Equipment)

	h.ctrl.MoveExercise(1)
	assert.Equal(t, "Back Squat", h.wm.ResolvedExercises(day)[1].Name)
	assert.Equal(t, 1, h.model.UIState().SelectedExercise, "selection follows the moved exercise")
	h.ctrl.MoveExercise(-1)
	assert.Equal(t, "Back Squat", h.wm.ResolvedExercises(day)[0].Name)
}

func TestAddAndRemoveExercise(t *testing.T) {
	h := newHarness(t)
	h.openDay(1, 0)
	day := mustDay(t, h)
	before := len(h.wm.ResolvedExercises(day))

	assert.Error(t, h.ctrl.AddExercise(" ", "3", "10", workout.EquipmentCable))
	assert.ErrorIs(t, h.ctrl.AddExercise("Hip Abduction", "zero", "10", workout.EquipmentCable), ErrInvalidNumber)
	assert.Error(t, h.ctrl.AddExercise("Hip Abduction", "3", "", workout.EquipmentCable))
	require.NoError(t, h.ctrl.AddExercise("Hip Abduction", "3", "15", workout.EquipmentMachine))

	list := h.wm.ResolvedExercises(day)
	require.Len(t, list, before+1)
	assert.Equal(t, "Hip Abduction", list[before].Name)
	assert.Contains(t, h.wm.AllExerciseNames(), "Hip Abduction")
	matches := h.ctrl.ExerciseNames("ABDUC")
	assert.Contains(t, matches, "Hip Abduction")
	assert.NotContains(t, matches, "Back Squat")
	assert.Contains(t, h.ctrl.ExerciseNames("squat"), "Back Squat")
	assert.Empty(t, h.ctrl.ExerciseNames(" "))

	h.ctrl.MoveSelection(before, 0)
	h.ctrl.RemoveSelectedExercise()
	assert.Len(t, h.wm.ResolvedExercises(day), before)
	assert.Equal(t, before-1, h.model.UIState().SelectedExercise)
}

func TestToggleWarmup(t *testing.T) {
	h := newHarness(t)
	h.openDay(1, 0)
	require.NoError(t, h.ctrl.StartSession())

	h.ctrl.ToggleWarmup(1)
	screen := h.ctrl.Screen()
	require.NotEmpty(t, screen.Exercises)
	assert.Equal(t, []bool{false, true, false, false}, screen.Exercises[0].WarmupsDone)

	h.ctrl.ToggleWarmup(9)
	assert.Equal(t, []bool{false, true, false, false}, h.ctrl.Screen().Exercises[0].WarmupsDone)
}

func TestScreen_ShowsLoggedSetsOnlyForTheActiveDay(t *testing.T) {
	h := newHarness(t)
	h.openDay(1, 0)
	_, err := h.ctrl.TapSet()
	require.NoError(t, err)

	screen := h.ctrl.Screen()
	require.Len(t, screen.Days, 4)
	assert.True(t, screen.Days[0].InFlight)
	assert.False(t, screen.Days[1].InFlight)
	require.NotNil(t, screen.Exercises[0].Logged[0])
	assert.Equal(t, 4, *screen.Exercises[0].Logged[0])
	assert.Nil(t, screen.Exercises[0].Logged[1])
	assert.Nil(t, screen.LastTime)

	h.openDay(2, 0)
	screen = h.ctrl.Screen()
	assert.Nil(t, screen.Exercises[0].Logged[0], "week 2 Day 1 is not the session in progress")
}

func TestSuspend_BackgroundsAroundPark(t *testing.T) {
	h := newHarness(t)
	h.openDay(1, 0)
	require.NoError(t, h.ctrl.StartSession())

	parked := 0
	h.ctrl.Suspend(func() {
		parked++
		assert.Equal(t, trainer.SessionStatusActive, h.wm.Snapshot().Status)
	})
	assert.Equal(t, 1, parked)
	assert.Equal(t, trainer.SessionStatusActive, h.wm.Snapshot().Status)
}

func TestOnEscapeKey_RequestsClose(t *testing.T) {
	h := newHarness(t)
	ch := make(chan struct{}, 1)
	unsubscribe := h.model.CloseFeed().Subscribe(ch)
	defer unsubscribe()

	h.ctrl.OnEscapeKey()
	select {
	case <-ch:
	default:
		t.Fatal("close was not requested")
	}
}
