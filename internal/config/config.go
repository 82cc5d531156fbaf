// Package config provides the TOML configuration file and XDG path
// helpers.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Drill DrillConfig `toml:"drill"`
}

// DrillConfig maps drill-related settings. Pointer fields distinguish
// "unset" from an explicit zero value.
type DrillConfig struct {
	Theme  *string `toml:"theme"`
	DBPath *string `toml:"db"`
}

// Load reads a TOML config from the given path. A missing file is not
// an error.
func Load(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "factdrill", "config.toml")
}
