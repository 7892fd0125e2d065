// Package logging builds the *log.Logger handed to every component.
package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lowaak/upper-lower/upper-lower-app/internal/config"
)

const flags = log.LstdFlags | log.Lmicroseconds

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger writing to a rotating file, or to stderr when the
// configured file is "-". The returned closer releases the file.
func New(cfg config.Config) (*log.Logger, io.Closer, error) {
	if cfg.LogFile == config.StderrLogFile {
		return log.New(os.Stderr, "", flags), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, nil, err
	}
	out := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSizeMB, // megabytes
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAgeDays, // days
		LocalTime:  true,
		Compress:   true,
	}
	return log.New(out, "", flags), out, nil
}
