package workout

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pct(v float64) *float64 { return &v }

func TestTargetWeight_RoundsDownToFive(t *testing.T) {
	squat := NewExercise("Back Squat", 4, "4", LiftSquat, pct(0.75), "", EquipmentBarbell)
	w, ok := squat.TargetWeight(UserProfile{SquatMax: 300})
	require.True(t, ok)
	assert.Equal(t, 225.0, w)

	bench := NewExercise("Barbell Bench Press", 4, "6", LiftBench, pct(0.725), "", EquipmentBarbell)
	w, ok = bench.TargetWeight(UserProfile{BenchMax: 230})
	require.True(t, ok)
	// 166.75 floors to 165
	assert.Equal(t, 165.0, w)
}

func TestTargetWeight_NoPercentage(t *testing.T) {
	incline := NewExercise("Barbell Incline Press", 4, "8", LiftBench, nil, "", EquipmentBarbell)
	_, ok := incline.TargetWeight(UserProfile{BenchMax: 200})
	assert.False(t, ok)
}

func TestNewExercise_DropsPercentageForAccessory(t *testing.T) {
	ex := NewExercise("Lat Pulldown", 3, "10", LiftAccessory, pct(0.5), "", "")
	assert.Nil(t, ex.PercentageOf1RM)
	assert.Equal(t, EquipmentOther, ex.Equipment)
	assert.NotEqual(t, ex.ID, NewExercise("Lat Pulldown", 3, "10", LiftAccessory, nil, "", "").ID)
}

func TestParseEquipment(t *testing.T) {
	tests := []struct {
		in   string
		want Equipment
	}{
		{"barbell-45", EquipmentBarbell},
		{"Barbell (25 lbs)", EquipmentBarbell25},
		{"smith machine (15 lbs)", EquipmentSmith},
		{"", EquipmentOther},
		{"Cable", EquipmentCable},
	}
	for _, tt := range tests {
		got, err := ParseEquipment(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseEquipment("kettlebell")
	assert.Error(t, err)
}

func TestExercise_JSONAcceptsDisplayNames(t *testing.T) {
	raw := `{"id":"6f1c1a8e-0b0e-4b8f-9b7a-0c8f7d1d2e3f","name":"Deadlift","sets":2,"reps":"5",
		"liftType":"Deadlift","percentageOf1RM":0.8,"rpeOrNotes":"","equipment":"Barbell (45 lbs)"}`
	var ex Exercise
	require.NoError(t, json.Unmarshal([]byte(raw), &ex))
	assert.Equal(t, LiftDeadlift, ex.LiftType)
	assert.Equal(t, EquipmentBarbell, ex.Equipment)

	out, err := json.Marshal(ex)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"liftType":"deadlift"`)
	assert.Contains(t, string(out), `"equipment":"barbell-45"`)
}

func TestTargetReps(t *testing.T) {
	assert.Equal(t, 10, TargetReps("10"))
	assert.Equal(t, 12, TargetReps("8-12"))
	assert.Equal(t, 12, TargetReps("8 - 12 each"))
	assert.Equal(t, 30, TargetReps(":30"))
	assert.Equal(t, 0, TargetReps("AMRAP"))
	assert.Equal(t, 0, TargetReps(""))
}

func TestPerformedReps(t *testing.T) {
	assert.Equal(t, 11, PerformedReps("11"))
	assert.Equal(t, 8, PerformedReps("8 reps"))
	assert.Equal(t, 0, PerformedReps("failed"))
}

func TestNextTapReps_CyclesDownThenClears(t *testing.T) {
	tap := NextTapReps("3", nil)
	require.NotNil(t, tap.Reps)
	assert.Equal(t, 3, *tap.Reps)

	tap = NextTapReps("3", tap.Reps)
	require.NotNil(t, tap.Reps)
	assert.Equal(t, 2, *tap.Reps)

	tap = NextTapReps("3", tap.Reps)
	require.NotNil(t, tap.Reps)
	assert.Equal(t, 1, *tap.Reps)

	tap = NextTapReps("3", tap.Reps)
	assert.Nil(t, tap.Reps)
	assert.False(t, tap.NeedsInput)
}

func TestNextTapReps_AMRAPAndTimed(t *testing.T) {
	tap := NextTapReps("AMRAP", nil)
	assert.True(t, tap.NeedsInput)
	assert.Nil(t, tap.Reps)

	logged := 14
	assert.Equal(t, RepTap{}, NextTapReps("AMRAP", &logged))

	tap = NextTapReps(":30", nil)
	require.NotNil(t, tap.Reps)
	assert.Equal(t, 30, *tap.Reps)
	assert.Equal(t, RepTap{}, NextTapReps(":30", tap.Reps))
}

func TestWarmups(t *testing.T) {
	squat := NewExercise("Back Squat", 4, "4", LiftSquat, pct(0.75), "", EquipmentBarbell)
	got := Warmups(squat, 225)
	assert.Equal(t, []WarmupSet{
		{Weight: 45, Reps: 10},
		{Weight: 110, Reps: 5},
		{Weight: 145, Reps: 5},
		{Weight: 180, Reps: 5},
	}, got)

	curl := NewExercise("Hammer Curl", 3, "10", LiftAccessory, nil, "", EquipmentDumbbell)
	assert.Empty(t, Warmups(curl, 40))
}

func TestPlateBreakdown(t *testing.T) {
	assert.Equal(t, "Empty Bar", PlateBreakdown(45, EquipmentBarbell))
	assert.Equal(t, "2x45", PlateBreakdown(225, EquipmentBarbell))
	assert.Equal(t, "2x45, 1x2.5", PlateBreakdown(230, EquipmentBarbell))
	assert.Equal(t, "1x45, 1x35", PlateBreakdown(185, EquipmentBarbell25))
	assert.Equal(t, "1x35", PlateBreakdown(85, EquipmentSmith))
	assert.Equal(t, "", PlateBreakdown(100, EquipmentDumbbell))
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "00:00", FormatElapsed(0))
	assert.Equal(t, "01:30", FormatElapsed(90))
	assert.Equal(t, "01:00:05", FormatElapsed(3605))
	assert.Equal(t, "42m", FormatDuration(42*60+10))
	assert.Equal(t, "1h 05m", FormatDuration(3900))
}

func TestCompletedWorkout_CloneIsDeep(t *testing.T) {
	day := WorkoutDay{Name: "Day 1", Week: 3}
	w := NewCompletedWorkout(day, time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC))
	w.Exercises = append(w.Exercises, CompletedExercise{Name: "Deadlift", Sets: []CompletedSet{{SetNumber: 1}}})

	c := w.Clone()
	c.Exercises[0].Sets[0].Reps = "5"
	*c.Week = 4

	assert.Equal(t, "", w.Exercises[0].Sets[0].Reps)
	assert.Equal(t, 3, w.WeekOrDefault())
	assert.Equal(t, 1, w.SetCount("Deadlift"))
	assert.Equal(t, 0, w.SetCount("Squat"))
}
