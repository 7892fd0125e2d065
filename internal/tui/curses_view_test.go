package tui

import (
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCursesView starts a real CursesView on a simulation screen and waits
// for its first frame.
func runCursesView(t *testing.T, h *harness) (*CursesView, *BaseView, <-chan error) {
	t.Helper()
	app := tview.NewApplication().SetScreen(tcell.NewSimulationScreen("UTF-8"))
	drawn := make(chan struct{})
	var once sync.Once
	app.SetAfterDrawFunc(func(tcell.Screen) { once.Do(func() { close(drawn) }) })

	view := NewCursesView(testLogger(), app)
	base := NewBaseView(NewBaseViewArg{
		View:       view,
		Model:      h.model,
		Controller: h.ctrl,
		Snapshots:  h.wm.Snapshots(),
		Logger:     testLogger(),
	})

	done := make(chan error, 1)
	go func() { done <- base.Run() }()
	select {
	case <-drawn:
	case <-time.After(3 * time.Second):
		t.Fatal("view never drew")
	}
	return view, base, done
}

func TestCursesView_ShutdownAfterStopWithLateLogLines(t *testing.T) {
	h := newHarness(t)
	view, base, done := runCursesView(t, h)

	h.model.RequestClose()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after close")
	}

	// Lines logged while the app winds down still reach the log listener.
	h.logs <- "WorkoutManager: Shutting down\n"
	require.NoError(t, view.Draw())

	shut := make(chan struct{})
	go func() {
		base.Shutdown()
		close(shut)
	}()
	select {
	case <-shut:
	case <-time.After(3 * time.Second):
		t.Fatal("BaseView.Shutdown blocked after the view stopped")
	}
}

func TestCursesView_KeysDriveController(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.ctrl.SetProfile("300", "200", "400"))
	view, base, done := runCursesView(t, h)
	t.Cleanup(func() {
		view.Stop()
		<-done
		base.Shutdown()
	})

	h.model.SetWeek(1)
	h.ctrl.OnDaySelected(0)
	require.Eventually(t, func() bool { return view.lastScreen().Day != nil }, time.Second, 10*time.Millisecond)

	view.app.QueueEvent(tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone))
	require.Eventually(t, func() bool { return h.wm.Snapshot().Day != nil }, time.Second, 10*time.Millisecond)

	view.app.QueueEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	require.Eventually(t, func() bool {
		n, ok := h.wm.LoggedReps("Back Squat", 0)
		return ok && n == 4
	}, time.Second, 10*time.Millisecond)
}
