// Package logging sets up the file-backed application logger. The TUI owns
// stdout, so log output goes to a file under the state directory.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing to the given file path. If the file cannot be
// opened the logger discards output rather than failing startup.
func New(path, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		logger.SetOutput(io.Discard)
		return logger
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		logger.SetOutput(io.Discard)
		return logger
	}
	logger.SetOutput(f)
	return logger
}
