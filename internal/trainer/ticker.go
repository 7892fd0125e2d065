package trainer

import (
	"log"
	"sync"
	"time"

	"github.com/lowaak/upper-lower/upper-lower-app/internal/go_func_utils"
)

// repeatingTask calls fn every interval on its own goroutine until cancelled.
// fn receives the task so it can tell whether it is still the current one.
type repeatingTask struct {
	stop     chan struct{}
	stopOnce sync.Once
}

func startRepeatingTask(wg *sync.WaitGroup, logger *log.Logger, name string, interval time.Duration, fn func(*repeatingTask)) *repeatingTask {
	t := &repeatingTask{stop: make(chan struct{})}
	go_func_utils.SafeGoGroup(wg, logger, name, func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
				fn(t)
			}
		}
	})
	return t
}

// Cancel stops the task. Safe to call more than once and on nil.
// It does not wait for a tick in flight; fn must check it is still current.
func (t *repeatingTask) Cancel() {
	if t == nil {
		return
	}
	t.stopOnce.Do(func() { close(t.stop) })
}
