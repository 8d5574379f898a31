// Package logging routes structured logs to a file so the terminal UI is
// never written over. Until Setup is called all entries are discarded.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/tilawa/internal/config"
)

var (
	mu     sync.Mutex
	logger = newDiscardLogger()
	file   *os.File
)

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Setup opens the log file and applies level and format from cfg.
func Setup(cfg config.LogConfig) error {
	path := cfg.File
	if path == "" {
		var err error
		path, err = xdg.StateFile(filepath.Join("tilawa", "logs", time.Now().Format("2006-01-02")+".log"))
		if err != nil {
			return fmt.Errorf("resolve log path: %w", err)
		}
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if file != nil {
		_ = file.Close()
	}
	file = f
	configure(logger, f, cfg)
	return nil
}

func configure(l *logrus.Logger, w io.Writer, cfg config.LogConfig) {
	l.SetOutput(w)
	if cfg.JSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
}

// SetOutput redirects logs to w, e.g. stderr for CLI subcommands.
func SetOutput(w io.Writer, cfg config.LogConfig) {
	mu.Lock()
	defer mu.Unlock()
	configure(logger, w, cfg)
}

// For returns a logger tagged with the given component name.
func For(component string) *logrus.Entry {
	return logger.WithField("component", component)
}

// Close releases the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	logger.SetOutput(io.Discard)
	return err
}
