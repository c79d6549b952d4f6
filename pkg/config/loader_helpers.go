package config

import (
	"os"

	"gopkg.in/yaml.v3"

	wkerrors "github.com/odvcencio/wndkit/pkg/errors"
)

// loadAndMerge loads a YAML file and merges it into the config.
func loadAndMerge(cfg *Config, path string) error {
	data, err := os.ReadFile(ExpandHomeDir(path))
	if err != nil {
		return err
	}

	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return wkerrors.Wrap(err, wkerrors.ErrCodeConfigParse, "parsing YAML").WithContext("path", path)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return wkerrors.Wrap(err, wkerrors.ErrCodeConfigParse, "parsing YAML").WithContext("path", path)
	}

	mergeConfigs(cfg, &override, raw)
	return nil
}

// mergeConfigs merges override into base. Booleans and numbers are only
// taken when the key is present in the raw document so that an explicit
// false or zero is distinguishable from an omitted field.
func mergeConfigs(base, override *Config, raw map[string]any) {
	if override == nil {
		return
	}

	if fieldSet(raw, "ui", "queue_capacity") {
		base.UI.QueueCapacity = override.UI.QueueCapacity
	}
	if fieldSet(raw, "ui", "max_windows") {
		base.UI.MaxWindows = override.UI.MaxWindows
	}
	if fieldSet(raw, "ui", "double_click_ms") {
		base.UI.DoubleClickMillis = override.UI.DoubleClickMillis
	}
	if fieldSet(raw, "ui", "window_bar") {
		base.UI.WindowBar = override.UI.WindowBar
	}
	if fieldSet(raw, "ui", "mouse") {
		base.UI.Mouse = override.UI.Mouse
	}

	mergeString(&base.Keys.Reposition, override.Keys.Reposition)
	mergeString(&base.Keys.Resize, override.Keys.Resize)
	mergeString(&base.Keys.Maximize, override.Keys.Maximize)
	mergeString(&base.Keys.Close, override.Keys.Close)
	mergeString(&base.Keys.NextFocus, override.Keys.NextFocus)
	mergeString(&base.Keys.PrevFocus, override.Keys.PrevFocus)
	mergeString(&base.Keys.Redisplay, override.Keys.Redisplay)
	mergeString(&base.Keys.Quit, override.Keys.Quit)

	mergeString(&base.Logging.Level, override.Logging.Level)
	mergeString(&base.Logging.Path, override.Logging.Path)

	mergeString(&base.Settings.Path, override.Settings.Path)
	if fieldSet(raw, "settings", "watch") {
		base.Settings.Watch = override.Settings.Watch
	}

	if fieldSet(raw, "metrics", "enabled") {
		base.Metrics.Enabled = override.Metrics.Enabled
	}
	mergeString(&base.Metrics.Addr, override.Metrics.Addr)

	if fieldSet(raw, "tracing", "enabled") {
		base.Tracing.Enabled = override.Tracing.Enabled
	}
	mergeString(&base.Tracing.Path, override.Tracing.Path)
}

func mergeString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func fieldSet(raw map[string]any, path ...string) bool {
	if len(path) == 0 || raw == nil {
		return false
	}
	current := any(raw)
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return false
		}
		val, ok := m[key]
		if !ok {
			return false
		}
		current = val
	}
	return true
}
