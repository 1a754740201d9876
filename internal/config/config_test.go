package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.URL != "https://api.workd.dev" {
		t.Errorf("API.URL = %q", cfg.API.URL)
	}
	if cfg.StateDir == "" || !strings.HasSuffix(cfg.StateDir, ".workd") {
		t.Errorf("StateDir = %q", cfg.StateDir)
	}
	if cfg.Log.File != filepath.Join(cfg.StateDir, "workd.log") {
		t.Errorf("Log.File = %q", cfg.Log.File)
	}
	if cfg.API.Timeout <= 0 {
		t.Errorf("API.Timeout = %v", cfg.API.Timeout)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("WORKD_API_URL", "http://localhost:9000")
	t.Setenv("WORKD_LOG_LEVEL", "debug")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.URL != "http://localhost:9000" {
		t.Errorf("API.URL = %q, want the env override", cfg.API.URL)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}
