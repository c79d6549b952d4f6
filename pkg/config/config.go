// Package config loads the application configuration: built-in
// defaults, then the user file, then the project file, then WNDKIT_*
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	wkerrors "github.com/odvcencio/wndkit/pkg/errors"
	"github.com/odvcencio/wndkit/pkg/ui/terminal"
)

// Config is the full application configuration.
type Config struct {
	UI       UIConfig       `yaml:"ui"`
	Keys     KeysConfig     `yaml:"keys"`
	Logging  LoggingConfig  `yaml:"logging"`
	Settings SettingsConfig `yaml:"settings"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Tracing  TracingConfig  `yaml:"tracing"`
}

// UIConfig controls the window system itself.
type UIConfig struct {
	// QueueCapacity bounds the message queue. Zero means unbounded.
	QueueCapacity     int  `yaml:"queue_capacity"`
	MaxWindows        int  `yaml:"max_windows"`
	DoubleClickMillis int  `yaml:"double_click_ms"`
	WindowBar         bool `yaml:"window_bar"`
	Mouse             bool `yaml:"mouse"`
}

// DoubleClick returns the double-click interval.
func (u UIConfig) DoubleClick() time.Duration {
	return time.Duration(u.DoubleClickMillis) * time.Millisecond
}

// KeysConfig holds the global key bindings, written like "alt+p".
type KeysConfig struct {
	Reposition string `yaml:"reposition"`
	Resize     string `yaml:"resize"`
	Maximize   string `yaml:"maximize"`
	Close      string `yaml:"close"`
	NextFocus  string `yaml:"next_focus"`
	PrevFocus  string `yaml:"prev_focus"`
	Redisplay  string `yaml:"redisplay"`
	Quit       string `yaml:"quit"`
}

// Bindings returns the configured bindings keyed by action name.
func (k KeysConfig) Bindings() map[string]string {
	return map[string]string{
		"reposition": k.Reposition,
		"resize":     k.Resize,
		"maximize":   k.Maximize,
		"close":      k.Close,
		"next_focus": k.NextFocus,
		"prev_focus": k.PrevFocus,
		"redisplay":  k.Redisplay,
		"quit":       k.Quit,
	}
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// SettingsConfig points at the settings (styles) file.
type SettingsConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type TracingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			QueueCapacity:     0,
			MaxWindows:        1024,
			DoubleClickMillis: 400,
			WindowBar:         true,
			Mouse:             true,
		},
		Keys: KeysConfig{
			Reposition: "alt+p",
			Resize:     "alt+s",
			Maximize:   "alt+m",
			Close:      "alt+c",
			NextFocus:  "tab",
			PrevFocus:  "shift+tab",
			Redisplay:  "ctrl+l",
			Quit:       "ctrl+q",
		},
		Logging: LoggingConfig{
			Level: "info",
			Path:  "~/.wndkit/logs/wndkit.log",
		},
		Settings: SettingsConfig{
			Path:  "~/.wndkit/settings.yaml",
			Watch: true,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    "127.0.0.1:9464",
		},
		Tracing: TracingConfig{
			Enabled: false,
			Path:    "~/.wndkit/logs/traces.json",
		},
	}
}

// Load loads configuration from default locations with proper precedence
func Load() (*Config, error) {
	cfg := DefaultConfig()

	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	if home != "" {
		userConfigPath := filepath.Join(home, ".wndkit", "config.yaml")
		if err := loadAndMerge(cfg, userConfigPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, wkerrors.Wrap(err, wkerrors.ErrCodeConfigLoad, "loading user config")
		}
	}

	projectConfigPath := filepath.Join(".", ".wndkit", "config.yaml")
	if err := loadAndMerge(cfg, projectConfigPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, wkerrors.Wrap(err, wkerrors.ErrCodeConfigLoad, "loading project config")
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := loadAndMerge(cfg, path); err != nil {
		return nil, wkerrors.Wrap(err, wkerrors.ErrCodeConfigLoad, "loading config").
			WithContext("path", path)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WNDKIT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("WNDKIT_LOG_PATH"); v != "" {
		cfg.Logging.Path = v
	}
	if v := os.Getenv("WNDKIT_SETTINGS"); v != "" {
		cfg.Settings.Path = v
	}
	if val, ok := envBool("WNDKIT_SETTINGS_WATCH"); ok {
		cfg.Settings.Watch = val
	}
	if v := os.Getenv("WNDKIT_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
		cfg.Metrics.Enabled = true
	}
	if val, ok := envBool("WNDKIT_TRACING"); ok {
		cfg.Tracing.Enabled = val
	}
	if val, ok := envBool("WNDKIT_MOUSE"); ok {
		cfg.UI.Mouse = val
	}
	if val, ok := envBool("WNDKIT_WINDOW_BAR"); ok {
		cfg.UI.WindowBar = val
	}
	if n, ok := envInt("WNDKIT_MAX_WINDOWS"); ok {
		cfg.UI.MaxWindows = n
	}
	if n, ok := envInt("WNDKIT_QUEUE_CAPACITY"); ok {
		cfg.UI.QueueCapacity = n
	}
	if n, ok := envInt("WNDKIT_DOUBLE_CLICK_MS"); ok {
		cfg.UI.DoubleClickMillis = n
	}
}

func envBool(key string) (bool, bool) {
	val := os.Getenv(key)
	if val == "" {
		return false, false
	}
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	default:
		return false, false
	}
}

func envInt(key string) (int, bool) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return 0, false
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Validate checks the configuration for values the window system
// cannot run with.
func (c *Config) Validate() error {
	var problems []string

	if c.UI.MaxWindows <= 0 {
		problems = append(problems, fmt.Sprintf("ui.max_windows must be positive, got %d", c.UI.MaxWindows))
	}
	if c.UI.QueueCapacity < 0 {
		problems = append(problems, fmt.Sprintf("ui.queue_capacity must not be negative, got %d", c.UI.QueueCapacity))
	}
	if c.UI.DoubleClickMillis < 0 {
		problems = append(problems, fmt.Sprintf("ui.double_click_ms must not be negative, got %d", c.UI.DoubleClickMillis))
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "debug", "info", "warn", "warning", "error":
	default:
		problems = append(problems, fmt.Sprintf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}
	if c.Metrics.Enabled && strings.TrimSpace(c.Metrics.Addr) == "" {
		problems = append(problems, "metrics.addr is required when metrics are enabled")
	}

	for action, binding := range c.Keys.Bindings() {
		if strings.TrimSpace(binding) == "" {
			continue
		}
		if _, err := terminal.ParseBinding(binding); err != nil {
			problems = append(problems, fmt.Sprintf("keys.%s: %v", action, err))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	return wkerrors.New(wkerrors.ErrCodeConfigInvalid, "config validation: "+strings.Join(problems, "; "))
}
