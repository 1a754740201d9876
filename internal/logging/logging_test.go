package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workd.log")
	log := New(path, "debug")
	if log.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", log.GetLevel())
	}

	log.WithField("job_id", "j1").Info("payment recorded")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "payment recorded") {
		t.Errorf("log file missing entry: %q", string(data))
	}
}

func TestNewBadLevelFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workd.log")
	log := New(path, "shouty")
	if log.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %v, want info fallback", log.GetLevel())
	}
}

func TestNewUnwritablePathStillLogs(t *testing.T) {
	// The TUI owns stdout; a bad log path must not panic or print.
	log := New("/proc/definitely/not/writable/x.log", "info")
	log.Info("dropped")
}
