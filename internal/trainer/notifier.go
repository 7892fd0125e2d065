package trainer

import (
	"log"
	"sync"
	"time"

	"github.com/lowaak/upper-lower/upper-lower-app/internal/go_func_utils"
)

// Notifier delivers a one-shot alert after a delay. Scheduling an id that
// is already pending replaces it. Calls must not block.
type Notifier interface {
	ScheduleOneShot(id string, after time.Duration, title, body string)
	Cancel(id string)
}

// TimerNotifier fires alerts from in-process timers and hands them to deliver.
type TimerNotifier struct {
	mu      sync.Mutex
	timers  map[string]*time.Timer
	deliver func(title, body string)
	logger  *log.Logger
}

func NewTimerNotifier(logger *log.Logger, deliver func(title, body string)) *TimerNotifier {
	if logger == nil {
		panic("TimerNotifier: logger cannot be nil")
	}
	if deliver == nil {
		panic("TimerNotifier: deliver cannot be nil")
	}
	return &TimerNotifier{
		timers:  make(map[string]*time.Timer),
		deliver: deliver,
		logger:  logger,
	}
}

func (n *TimerNotifier) ScheduleOneShot(id string, after time.Duration, title, body string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if t, ok := n.timers[id]; ok {
		t.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(after, func() {
		n.mu.Lock()
		current := n.timers[id] == timer
		if current {
			delete(n.timers, id)
		}
		n.mu.Unlock()
		if !current {
			return
		}
		n.logger.Printf("TimerNotifier: firing %s", id)
		go_func_utils.SafeGo(n.logger, "notifier delivery", func() { n.deliver(title, body) })
	})
	n.timers[id] = timer
	n.logger.Printf("TimerNotifier: scheduled %s in %v", id, after)
}

func (n *TimerNotifier) Cancel(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if t, ok := n.timers[id]; ok {
		t.Stop()
		delete(n.timers, id)
		n.logger.Printf("TimerNotifier: cancelled %s", id)
	}
}

// Pending reports whether id is scheduled and has not fired.
func (n *TimerNotifier) Pending(id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, ok := n.timers[id]
	return ok
}

// CancelAll stops every pending alert.
func (n *TimerNotifier) CancelAll() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for id, t := range n.timers {
		t.Stop()
		delete(n.timers, id)
	}
}

// LogNotifier only records what would have been delivered. Used when
// nothing can show an alert, such as the backup commands.
type LogNotifier struct {
	logger *log.Logger
}

func NewLogNotifier(logger *log.Logger) *LogNotifier {
	if logger == nil {
		panic("LogNotifier: logger cannot be nil")
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) ScheduleOneShot(id string, after time.Duration, title, body string) {
	n.logger.Printf("LogNotifier: %s %q in %v", id, title, after)
}

func (n *LogNotifier) Cancel(id string) {
	n.logger.Printf("LogNotifier: cancel %s", id)
}
