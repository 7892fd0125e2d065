package tui

import (
	"context"
	"log"
	"sync"

	"github.com/lowaak/upper-lower/upper-lower-app/internal/events"
	"github.com/lowaak/upper-lower/upper-lower-app/internal/go_func_utils"
)

// UIState is what the screen is pointed at. The workout data itself comes
// from the manager's snapshots.
type UIState struct {
	Mode Mode
	// Week is the program week being browsed, not necessarily the current one.
	Week             int
	DayName          string
	SelectedExercise int
	SelectedSet      int
}

// Alert is a message that should interrupt the user, like the end of rest.
type Alert struct {
	Title string
	Body  string
}

type Model struct {
	logFeed     *events.Feed[string]
	uiStateFeed *events.Feed[UIState]
	alertFeed   *events.Feed[Alert]
	closeFeed   *events.Feed[struct{}]
	refreshFeed *events.Feed[struct{}]

	mu      sync.RWMutex
	uiState UIState

	logMu    sync.RWMutex
	logLines []string

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger *log.Logger
}

func NewModel(logger *log.Logger, logLines <-chan string, week int) *Model {
	if logger == nil {
		panic("Model: logger cannot be nil")
	}
	if logLines == nil {
		panic("Model: logLines cannot be nil")
	}
	if week < 1 {
		week = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		logFeed:     events.NewFeed[string](false),
		uiStateFeed: events.NewFeed[UIState](true),
		alertFeed:   events.NewFeed[Alert](false),
		closeFeed:   events.NewFeed[struct{}](true),
		refreshFeed: events.NewFeed[struct{}](false),
		uiState:     UIState{Mode: ModeProgram, Week: week},
		logLines:    make([]string, 0, maxLogLines),
		ctx:         ctx,
		cancel:      cancel,
		logger:      logger,
	}
	m.uiStateFeed.Publish(m.uiState)

	go_func_utils.SafeGoGroup(&m.wg, logger, "Model.readFromLogChannel", func() { m.readFromLogChannel(ctx, logLines) })
	return m
}

func (m *Model) Shutdown() {
	m.logger.Println("Model: Shutting down")
	m.cancel()
	m.wg.Wait()
	m.logger.Println("Model: Shutdown complete")
}

func (m *Model) LogFeed() *events.Feed[string] { return m.logFeed }
func (m *Model) UIStateFeed() *events.Feed[UIState] { return m.uiStateFeed }
func (m *Model) AlertFeed() *events.Feed[Alert] { return m.alertFeed }
func (m *Model) CloseFeed() *events.Feed[struct{}] { return m.closeFeed }
func (m *Model) RefreshFeed() *events.Feed[struct{}] { return m.refreshFeed }

func (m *Model) RequestClose() {
	m.closeFeed.Publish(struct{}{})
}

func (m *Model) PushAlert(a Alert) {
	m.alertFeed.Publish(a)
}

// Notify has the shape of a notifier's deliver func.
func (m *Model) Notify(title, body string) {
	m.PushAlert(Alert{Title: title, Body: body})
}

// Refresh asks views to redraw after a change that publishes no snapshot,
// such as a schedule edit.
func (m *Model) Refresh() {
	m.refreshFeed.Publish(struct{}{})
}

func (m *Model) UIState() UIState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.uiState
}

// update applies fn to the state and publishes the result when it changed.
func (m *Model) update(fn func(s *UIState)) {
	m.mu.Lock()
	before := m.uiState
	fn(&m.uiState)
	after := m.uiState
	m.mu.Unlock()

	if after != before {
		m.uiStateFeed.Publish(after)
	}
}

func (m *Model) SetMode(mode Mode) {
	m.update(func(s *UIState) { s.Mode = mode })
}

// SetWeek changes the browsed week and drops the day selection.
func (m *Model) SetWeek(week int) {
	if week < 1 {
		week = 1
	}
	m.update(func(s *UIState) {
		if s.Week != week {
			s.Week = week
			s.DayName = ""
			s.SelectedExercise, s.SelectedSet = 0, 0
		}
	})
}

func (m *Model) SetDay(name string) {
	m.update(func(s *UIState) {
		if s.DayName != name {
			s.DayName = name
			s.SelectedExercise, s.SelectedSet = 0, 0
		}
	})
}

func (m *Model) SetSelection(exercise, set int) {
	if exercise < 0 {
		exercise = 0
	}
	if set < 0 {
		set = 0
	}
	m.update(func(s *UIState) {
		s.SelectedExercise = exercise
		s.SelectedSet = set
	})
}

func (m *Model) readFromLogChannel(ctx context.Context, logLines <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-logLines:
			if !ok {
				return
			}

			m.logMu.Lock()
			m.logLines = append(m.logLines, line)
			if len(m.logLines) > maxLogLines {
				m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
			}
			m.logMu.Unlock()

			m.logFeed.Publish(line)
		}
	}
}

// LogTail returns up to the last n log lines.
func (m *Model) LogTail(n int) []string {
	m.logMu.RLock()
	defer m.logMu.RUnlock()

	if n <= 0 {
		return []string{}
	}
	if n > len(m.logLines) {
		n = len(m.logLines)
	}
	result := make([]string, n)
	copy(result, m.logLines[len(m.logLines)-n:])
	return result
}
