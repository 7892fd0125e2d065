package tui

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, week int) (*Model, chan string) {
	t.Helper()
	logs := make(chan string, 16)
	m := NewModel(testLogger(), logs, week)
	t.Cleanup(m.Shutdown)
	return m, logs
}

func TestNewModel_PanicsOnNilDependencies(t *testing.T) {
	assert.Panics(t, func() { NewModel(nil, make(chan string), 1) })
	assert.Panics(t, func() { NewModel(testLogger(), nil, 1) })
}

func TestModel_InitialState(t *testing.T) {
	m, _ := newTestModel(t, 0)
	assert.Equal(t, UIState{Mode: ModeProgram, Week: 1}, m.UIState())

	latest, ok := m.UIStateFeed().Latest()
	require.True(t, ok)
	assert.Equal(t, m.UIState(), latest)
}

func TestModel_SetWeekDropsDay(t *testing.T) {
	m, _ := newTestModel(t, 3)
	m.SetDay("Day 2")
	m.SetSelection(2, 1)

	m.SetWeek(3)
	assert.Equal(t, "Day 2", m.UIState().DayName, "same week keeps the day")

	m.SetWeek(-4)
	assert.Equal(t, UIState{Mode: ModeProgram, Week: 1}, m.UIState())
}

func TestModel_SetDayResetsSelection(t *testing.T) {
	m, _ := newTestModel(t, 1)
	m.SetDay("Day 1")
	m.SetSelection(3, -2)
	assert.Equal(t, 3, m.UIState().SelectedExercise)
	assert.Equal(t, 0, m.UIState().SelectedSet)

	m.SetDay("Day 2")
	assert.Equal(t, 0, m.UIState().SelectedExercise)
}

func TestModel_PublishesOnlyChanges(t *testing.T) {
	m, _ := newTestModel(t, 1)
	ch := make(chan UIState, 4)
	unsubscribe := m.UIStateFeed().Subscribe(ch)
	defer unsubscribe()
	<-ch // replayed

	m.SetMode(ModeProgram)
	m.SetMode(ModeHistory)

	select {
	case s := <-ch:
		assert.Equal(t, ModeHistory, s.Mode)
	case <-time.After(time.Second):
		t.Fatal("no state published")
	}
	assert.Empty(t, ch)
}

func TestModel_LogTailKeepsNewestLines(t *testing.T) {
	m, logs := newTestModel(t, 1)
	published := make(chan string, maxLogLines+10)
	unsubscribe := m.LogFeed().Subscribe(published)
	defer unsubscribe()

	total := maxLogLines + 5
	for i := 0; i < total; i++ {
		logs <- fmt.Sprintf("line %d\n", i)
	}
	require.Eventually(t, func() bool {
		tail := m.LogTail(1)
		return len(tail) == 1 && tail[0] == fmt.Sprintf("line %d\n", total-1)
	}, time.Second, 5*time.Millisecond)

	all := m.LogTail(total)
	require.Len(t, all, maxLogLines)
	assert.Equal(t, "line 5\n", all[0])
	assert.Equal(t, []string{"line 1003\n", "line 1004\n"}, m.LogTail(2))
	assert.Empty(t, m.LogTail(0))
	assert.NotEmpty(t, published)
}

func TestModel_AlertsAndRefresh(t *testing.T) {
	m, _ := newTestModel(t, 1)
	alerts := make(chan Alert, 1)
	defer m.AlertFeed().Subscribe(alerts)()
	refresh := make(chan struct{}, 1)
	defer m.RefreshFeed().Subscribe(refresh)()

	m.Notify("Rest Complete", "Time to get back to work!")
	assert.Equal(t, Alert{Title: "Rest Complete", Body: "Time to get back to work!"}, <-alerts)

	m.Refresh()
	select {
	case <-refresh:
	default:
		t.Fatal("refresh not published")
	}
}
