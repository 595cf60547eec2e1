// Package config loads tada settings from defaults, TOML files, the
// environment and root flags, in that order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/Makepad-fr/tada/internal/store/jsonstore"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"

	DefaultKey     = "todos"
	DefaultTheme   = "classic"
	DefaultBackend = BackendJSON
	DefaultLevel   = "warn"

	// ProjectFileName is looked up in the working directory.
	ProjectFileName = ".tada.toml"
	// UserFileName is looked up in <user config dir>/tada.
	UserFileName = "config.toml"
)

// Config is the resolved configuration.
type Config struct {
	Backend string    `toml:"backend"`
	DataDir string    `toml:"data_dir"`
	Key     string    `toml:"key"`
	Theme   string    `toml:"theme"`
	FullIDs bool      `toml:"full_ids"`
	Log     LogConfig `toml:"log"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
	JSON  bool   `toml:"json"`
}

func setDefaults(cfg *Config) {
	cfg.Backend = DefaultBackend
	cfg.Key = DefaultKey
	cfg.Theme = DefaultTheme
	cfg.Log.Level = DefaultLevel
}

// Validate rejects values no component can act on.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendJSON, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q (want json, sqlite or memory)", c.Backend)
	}
	switch strings.ToLower(c.Theme) {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("unknown theme %q (want classic, neon or mono)", c.Theme)
	}
	if strings.TrimSpace(c.Key) == "" {
		return fmt.Errorf("storage key is empty")
	}
	if c.Backend == BackendJSON && !jsonstore.ValidKey(c.Key) {
		return fmt.Errorf("storage key %q is not usable as a file name (use letters, digits, '.', '_' or '-')", c.Key)
	}
	return nil
}
