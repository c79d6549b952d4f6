package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandHomeDir replaces a leading "~" with the user's home directory.
func ExpandHomeDir(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// LogPath returns the expanded log file path.
func (c *Config) LogPath() string { return ExpandHomeDir(c.Logging.Path) }

// SettingsPath returns the expanded settings file path.
func (c *Config) SettingsPath() string { return ExpandHomeDir(c.Settings.Path) }

// TracePath returns the expanded trace output path.
func (c *Config) TracePath() string { return ExpandHomeDir(c.Tracing.Path) }
