package trainer

import (
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/goleak"

	"github.com/lowaak/upper-lower/upper-lower-app/internal/store"
	"github.com/lowaak/upper-lower/upper-lower-app/internal/workout"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) ScheduleOneShot(id string, after time.Duration, title, body string) {
	m.Called(id, after, title, body)
}

func (m *mockNotifier) Cancel(id string) {
	m.Called(id)
}

// newPermissiveNotifier accepts any call and records it.
func newPermissiveNotifier() *mockNotifier {
	n := &mockNotifier{}
	n.On("ScheduleOneShot", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()
	n.On("Cancel", mock.Anything).Maybe()
	return n
}

func pct(v float64) *float64 { return &v }

func ex(name string, sets int, reps string) workout.Exercise {
	return workout.NewExercise(name, sets, reps, workout.LiftAccessory, nil, "", workout.EquipmentMachine)
}

// testCatalog is a four-day program whose Day 1 has a squat and three accessories.
type testCatalog struct {
	days []workout.WorkoutDay
}

func newTestCatalog() *testCatalog {
	day1 := workout.WorkoutDay{Name: "Day 1", Exercises: []workout.Exercise{
		workout.NewExercise("Back Squat", 4, "4", workout.LiftSquat, pct(0.75), "", workout.EquipmentBarbell),
		ex("Stiff-Leg Deadlift", 3, "10"),
		ex("Seated Leg Curl", 3, "15"),
		ex("Cable Crunch", 2, "8-12"),
	}}
	day2 := workout.WorkoutDay{Name: "Day 2", Exercises: []workout.Exercise{
		workout.NewExercise("Barbell Bench Press", 4, "6", workout.LiftBench, pct(0.7), "", workout.EquipmentBarbell),
		ex("Lat Pulldown", 3, "10"),
	}}
	day3 := workout.WorkoutDay{Name: "Day 3", Exercises: []workout.Exercise{
		workout.NewExercise("Deadlift", 2, "5", workout.LiftDeadlift, pct(0.8), "", workout.EquipmentBarbell),
	}}
	day4 := workout.WorkoutDay{Name: "Day 4", Exercises: []workout.Exercise{
		ex("Push-Up", 3, "AMRAP"),
	}}
	return &testCatalog{days: []workout.WorkoutDay{day1, day2, day3, day4}}
}

func (c *testCatalog) GetDays(week int) []workout.WorkoutDay {
	out := make([]workout.WorkoutDay, len(c.days))
	for i, d := range c.days {
		d = d.Clone()
		d.Week = week
		out[i] = d
	}
	return out
}

func (c *testCatalog) ExerciseNames() []string {
	var names []string
	for _, d := range c.days {
		for _, e := range d.Exercises {
			names = append(names, e.Name)
		}
	}
	return names
}

func (c *testCatalog) day(week int, name string) workout.WorkoutDay {
	for _, d := range c.GetDays(week) {
		if d.Name == name {
			return d
		}
	}
	panic("no day " + name)
}

type harness struct {
	wm       *WorkoutManager
	store    *store.MemoryStore
	catalog  *testCatalog
	clock    *fakeClock
	notifier *mockNotifier
}

func newHarnessWithStore(t *testing.T, s *store.MemoryStore, clock *fakeClock) *harness {
	t.Helper()
	h := &harness{
		store:    s,
		catalog:  newTestCatalog(),
		clock:    clock,
		notifier: newPermissiveNotifier(),
	}
	h.wm = NewWorkoutManager(NewWorkoutManagerArg{
		Store:        s,
		Catalog:      h.catalog,
		Notifier:     h.notifier,
		Logger:       testLogger(),
		Clock:        clock.Now,
		TickInterval: time.Hour, // ticks are driven by hand
	})
	t.Cleanup(h.wm.Shutdown)
	h.wm.Restore()
	return h
}

func newHarness(t *testing.T) *harness {
	return newHarnessWithStore(t, store.NewMemoryStore(), newFakeClock())
}

// tickElapsed and tickRest stand in for one second of the ticking processes.
func (h *harness) tickElapsed(n int) {
	for i := 0; i < n; i++ {
		h.wm.mu.Lock()
		task := h.wm.elapsedTask
		h.wm.mu.Unlock()
		h.wm.handleElapsedTick(task)
	}
}

func (h *harness) tickRest(n int) {
	for i := 0; i < n; i++ {
		h.wm.mu.Lock()
		task := h.wm.restTask
		h.wm.mu.Unlock()
		h.wm.handleRestTick(task)
	}
}

func (h *harness) logSets(e workout.Exercise, reps []string, weights []float64) {
	for i := range reps {
		if err := h.wm.LogSet(SetEntry{
			ExerciseID:   e.ID,
			ExerciseName: e.Name,
			SetIndex:     i,
			Weight:       weights[i],
			Reps:         reps[i],
		}); err != nil {
			panic(err)
		}
	}
}
