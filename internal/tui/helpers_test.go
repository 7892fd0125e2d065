package tui

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/lowaak/upper-lower/upper-lower-app/internal/program"
	"github.com/lowaak/upper-lower/upper-lower-app/internal/store"
	"github.com/lowaak/upper-lower/upper-lower-app/internal/trainer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type harness struct {
	wm    *trainer.WorkoutManager
	model *Model
	ctrl  *Controller
	logs  chan string
}

// newHarness wires a controller to a real engine on the embedded program.
// Ticks are an hour apart so no timer fires during a test.
func newHarness(t *testing.T) *harness {
	t.Helper()
	catalog, err := program.Default()
	require.NoError(t, err)

	logger := testLogger()
	wm := trainer.NewWorkoutManager(trainer.NewWorkoutManagerArg{
		Store:        store.NewMemoryStore(),
		Catalog:      catalog,
		Notifier:     trainer.NewLogNotifier(logger),
		Logger:       logger,
		TickInterval: time.Hour,
	})
	wm.Restore()
	t.Cleanup(wm.Shutdown)

	logs := make(chan string, 16)
	model := NewModel(logger, logs, wm.CurrentWeek())
	t.Cleanup(model.Shutdown)

	return &harness{wm: wm, model: model, ctrl: NewController(model, wm, logger), logs: logs}
}

// openDay shows day index (0-based) of week in the workout page.
func (h *harness) openDay(week, index int) {
	h.model.SetWeek(week)
	h.ctrl.OnDaySelected(index)
}
