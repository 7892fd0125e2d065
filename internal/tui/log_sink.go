package tui

import (
	"bytes"
	"sync"
)

// LogSink is an io.Writer that turns log output into lines for the log
// pane. Lines are dropped when the pane falls behind; the log file keeps
// everything.
type LogSink struct {
	mu      sync.Mutex
	partial []byte
	lines   chan string
}

func NewLogSink() *LogSink {
	return &LogSink{lines: make(chan string, logSinkBuffer)}
}

func (s *LogSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.partial = append(s.partial, p...)
	for {
		i := bytes.IndexByte(s.partial, '\n')
		if i < 0 {
			break
		}
		line := string(s.partial[:i+1])
		s.partial = s.partial[i+1:]
		select {
		case s.lines <- line:
		default:
		}
	}
	return len(p), nil
}

// Lines delivers complete lines, newline included.
func (s *LogSink) Lines() <-chan string {
	return s.lines
}
