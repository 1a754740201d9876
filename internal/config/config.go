// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env and the
// optional ~/.workd/config.yaml file.
type Config struct {
	API struct {
		URL     string
		Timeout time.Duration
	}
	Checkout struct {
		URL string
	}
	Log struct {
		File  string
		Level string
	}
	// StateDir is where the session and log files live. Defaults to ~/.workd.
	StateDir string
}

// Load reads configuration from environment variables and the optional
// config file under the state directory.
func Load() (Config, error) {
	stateDir, err := defaultStateDir()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetEnvPrefix("WORKD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("statedir", stateDir)
	v.SetDefault("api.url", "https://api.workd.dev")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("checkout.url", "https://pay.workd.dev/checkout")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")

	v.SetConfigName("config")
	v.AddConfigPath(stateDir)
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.StateDir == "" {
		cfg.StateDir = stateDir
	}
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(cfg.StateDir, "workd.log")
	}
	return cfg, nil
}

func defaultStateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".workd"), nil
}
