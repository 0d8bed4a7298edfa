package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/odvcencio/cellkit/pkg/errors"
)

// loadOptional merges path into cfg if the file exists.
func loadOptional(cfg *Config, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return loadAndMerge(cfg, path)
}

// loadAndMerge loads a YAML file and merges the keys it sets into cfg.
func loadAndMerge(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigLoad, "reading config file").WithContext("path", path)
	}

	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigParse, "parsing YAML").WithContext("path", path)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigParse, "parsing YAML").WithContext("path", path)
	}

	mergeConfigs(cfg, &override, raw)
	return nil
}

// mergeConfigs copies the fields set in override into base. Strings and
// numbers count as set when non-zero; booleans when the key is present.
func mergeConfigs(base, override *Config, raw map[string]any) {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}
	if fieldSet(raw, "logging", "file") {
		base.Logging.File = override.Logging.File
	}

	if fieldSet(raw, "metrics", "enabled") {
		base.Metrics.Enabled = override.Metrics.Enabled
	}
	if override.Metrics.Addr != "" {
		base.Metrics.Addr = override.Metrics.Addr
	}

	if fieldSet(raw, "tracing", "enabled") {
		base.Tracing.Enabled = override.Tracing.Enabled
	}
	if override.Tracing.File != "" {
		base.Tracing.File = override.Tracing.File
	}

	if override.Playback.Script != "" {
		base.Playback.Script = override.Playback.Script
	}
	if fieldSet(raw, "playback", "speed") {
		base.Playback.Speed = override.Playback.Speed
	}

	if fieldSet(raw, "render", "cursor") {
		base.Render.Cursor = override.Render.Cursor
	}

	if override.Theme.Profile != "" {
		base.Theme.Profile = override.Theme.Profile
	}
}

// fieldSet reports whether the nested key path is present in raw.
func fieldSet(raw map[string]any, path ...string) bool {
	if len(raw) == 0 || len(path) == 0 {
		return false
	}
	current := raw
	for i, key := range path {
		val, ok := current[key]
		if !ok {
			return false
		}
		if i == len(path)-1 {
			return true
		}
		next, ok := val.(map[string]any)
		if !ok {
			return false
		}
		current = next
	}
	return false
}
