package trainer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/lowaak/upper-lower/upper-lower-app/internal/store"
	"github.com/lowaak/upper-lower/upper-lower-app/internal/workout"
)

// populate gives h one of everything a backup carries.
func populate(t *testing.T, h *harness) {
	t.Helper()
	h.wm.SetProfile(workout.UserProfile{SquatMax: 300, BenchMax: 215, DeadliftMax: 405})
	h.wm.CompleteOnboarding()

	day := h.catalog.day(1, "Day 1")
	h.wm.StartSession(day)
	h.logSets(day.Exercises[2], []string{"15", "15", "15"}, []float64{60, 60, 60})
	h.clock.Advance(time.Minute)
	_, err := h.wm.EndSession(true)
	require.NoError(t, err)

	week2 := h.catalog.day(2, "Day 2")
	h.wm.AddExerciseToSchedule(week2, "Face Pull", 3, "15", workout.EquipmentCable)
	h.wm.RemoveExerciseFromSchedule(week2, week2.Exercises[1])
	h.wm.UpdateReps("Barbell Bench Press", "5")
	h.wm.UpdateEquipment("Seated Leg Curl", workout.EquipmentOther)
	h.wm.SaveNewOrder("Day 1", []string{"Cable Crunch", "Back Squat"})
	h.wm.CreateSuperset("Day 1", []string{"Seated Leg Curl", "Cable Crunch"})
	h.wm.SaveWeight("Lat Pulldown", 120)
	h.wm.ToggleDayCompletion(h.catalog.day(1, "Day 3"))
}

func encoded(t *testing.T, doc BackupDocument) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, EncodeBackup(&buf, doc))
	return buf.String()
}

func TestBackup_RoundTrip(t *testing.T) {
	src := newHarness(t)
	populate(t, src)
	exported := src.wm.ExportBackup()
	require.NoError(t, exported.Validate())

	var buf bytes.Buffer
	require.NoError(t, EncodeBackup(&buf, exported))
	decoded, err := DecodeBackup(&buf)
	require.NoError(t, err)

	dst := newHarness(t)
	require.NoError(t, dst.wm.ImportBackup(decoded))

	assert.Equal(t, encoded(t, exported), encoded(t, dst.wm.ExportBackup()))
	assert.Equal(t, src.wm.History(), dst.wm.History())
	assert.Equal(t, src.wm.CurrentWeek(), dst.wm.CurrentWeek())
	assert.Equal(t, src.wm.Profile(), dst.wm.Profile())
	assert.True(t, dst.wm.HasOnboarded())
	assert.Equal(t, names(src.wm.ResolvedExercises(src.catalog.day(2, "Day 2"))),
		names(dst.wm.ResolvedExercises(dst.catalog.day(2, "Day 2"))))
}

func TestBackup_ImportPersists(t *testing.T) {
	src := newHarness(t)
	populate(t, src)
	doc := src.wm.ExportBackup()

	s := store.NewMemoryStore()
	clock := newFakeClock()
	dst := newHarnessWithStore(t, s, clock)
	require.NoError(t, dst.wm.ImportBackup(doc))

	reloaded := newHarnessWithStore(t, s, clock)
	assert.Equal(t, encoded(t, doc), encoded(t, reloaded.wm.ExportBackup()))
}

func TestBackup_ImportLeavesActiveSession(t *testing.T) {
	src := newHarness(t)
	populate(t, src)

	dst := newHarness(t)
	dst.wm.StartSession(dst.catalog.day(1, "Day 4"))
	require.NoError(t, dst.wm.ImportBackup(src.wm.ExportBackup()))

	snap := dst.wm.Snapshot()
	assert.Equal(t, SessionStatusActive, snap.Status)
	assert.Equal(t, "Day 4", snap.Day.Name)
}

func TestBackup_InvalidImportChangesNothing(t *testing.T) {
	h := newHarness(t)
	populate(t, h)
	before := encoded(t, h.wm.ExportBackup())

	bad := h.wm.ExportBackup()
	bad.CurrentWeek = 0
	bad.History = append(bad.History, bad.History[0])
	bad.Supersets = map[string][]Superset{"Day 1": {{"Only One"}}}
	bad.SavedWeights["Dip"] = -10

	err := h.wm.ImportBackup(bad)
	require.ErrorIs(t, err, ErrInvalidBackup)
	assert.Len(t, multierr.Errors(bad.Validate()), 4)
	assert.Equal(t, before, encoded(t, h.wm.ExportBackup()))
}

func TestDecodeBackup_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "backup"},
		{"wrong type", `{"currentWeek": "three"}`},
		{"unknown equipment", `{"currentWeek": 1, "overriddenEquipment": {"Curl": "kettlebell"}}`},
		{"missing week", `{"history": []}`},
		{"history without id", `{"currentWeek": 1, "history": [{"dayName": "Day 1"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBackup(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, ErrInvalidBackup)
		})
	}
}

func TestDecodeBackup_AcceptsDisplayNames(t *testing.T) {
	input := `{
		"currentWeek": 2,
		"overriddenEquipment": {"Hack Squat": "smith machine (15 lbs)"},
		"history": [{"id": "` + uuid.NewString() + `", "dayName": "Day 1", "startTime": "2026-03-02T18:00:00Z", "exercises": []}]
	}`
	doc, err := DecodeBackup(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, workout.EquipmentSmith, doc.OverriddenEquipment["Hack Squat"])
	require.Len(t, doc.History, 1)
	assert.Nil(t, doc.History[0].Week)
	assert.Equal(t, 1, doc.History[0].WeekOrDefault())
}
