// Package config loads cellkit settings from YAML files and CELLKIT_*
// environment variables.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/odvcencio/cellkit/pkg/errors"
	"github.com/odvcencio/cellkit/pkg/logging"
	"github.com/odvcencio/cellkit/pkg/ui/theme"
)

// Config is the complete configuration.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Tracing  TracingConfig  `yaml:"tracing"`
	Playback PlaybackConfig `yaml:"playback"`
	Render   RenderConfig   `yaml:"render"`
	Theme    ThemeConfig    `yaml:"theme"`
}

// LoggingConfig controls the structured log output. Logs go to a file since
// the terminal belongs to the UI.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// MetricsConfig controls the debug inspector, which also serves /metrics.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// TracingConfig controls span export. Spans are written as JSON lines to File.
type TracingConfig struct {
	Enabled bool   `yaml:"enabled"`
	File    string `yaml:"file"`
}

// PlaybackConfig configures an optional input script.
type PlaybackConfig struct {
	Script string  `yaml:"script"`
	Speed  float64 `yaml:"speed"`
}

// RenderConfig controls the render differencer.
type RenderConfig struct {
	Cursor bool `yaml:"cursor"`
}

// ThemeConfig selects the color profile.
type ThemeConfig struct {
	Profile string `yaml:"profile"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  string(logging.LevelInfo),
			Format: string(logging.FormatJSON),
			File:   "~/.cellkit/cellkit.log",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    "127.0.0.1:6060",
		},
		Tracing: TracingConfig{
			Enabled: false,
			File:    "~/.cellkit/trace.jsonl",
		},
		Playback: PlaybackConfig{
			Speed: 1,
		},
		Render: RenderConfig{
			Cursor: true,
		},
		Theme: ThemeConfig{
			Profile: string(theme.ProfileAuto),
		},
	}
}

// Load reads the user file (~/.cellkit/config.yaml), then the project file
// (./.cellkit/config.yaml), then environment overrides, and validates.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	if home != "" {
		userConfigPath := filepath.Join(home, ".cellkit", "config.yaml")
		if err := loadOptional(cfg, userConfigPath); err != nil {
			return nil, err
		}
	}

	projectConfigPath := ProjectConfigPath()
	if err := loadOptional(cfg, projectConfigPath); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath reads defaults, then path, then environment overrides. The
// file must exist.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := loadAndMerge(cfg, path); err != nil {
		return nil, err
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ProjectConfigPath returns ./.cellkit/config.yaml.
func ProjectConfigPath() string {
	return filepath.Join(".", ".cellkit", "config.yaml")
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("CELLKIT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("CELLKIT_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("CELLKIT_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
	if val, ok := envBool("CELLKIT_METRICS_ENABLED"); ok {
		cfg.Metrics.Enabled = val
	}
	if v := os.Getenv("CELLKIT_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	if val, ok := envBool("CELLKIT_TRACING_ENABLED"); ok {
		cfg.Tracing.Enabled = val
	}
	if v := os.Getenv("CELLKIT_TRACING_FILE"); v != "" {
		cfg.Tracing.File = v
	}
	if v := os.Getenv("CELLKIT_PLAYBACK_SCRIPT"); v != "" {
		cfg.Playback.Script = v
	}
	if v := os.Getenv("CELLKIT_PLAYBACK_SPEED"); v != "" {
		speed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeConfigInvalid, "CELLKIT_PLAYBACK_SPEED is not a number")
		}
		cfg.Playback.Speed = speed
	}
	if val, ok := envBool("CELLKIT_RENDER_CURSOR"); ok {
		cfg.Render.Cursor = val
	}
	if v := os.Getenv("CELLKIT_THEME_PROFILE"); v != "" {
		cfg.Theme.Profile = v
	}
	return nil
}

func envBool(key string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return false, false
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}

// Validate checks every enumerated and numeric setting.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return invalid("logging.level", c.Logging.Level, err)
	}
	switch logging.Format(strings.ToLower(c.Logging.Format)) {
	case logging.FormatJSON, logging.FormatText:
	default:
		return invalid("logging.format", c.Logging.Format, nil)
	}
	if c.Metrics.Enabled && strings.TrimSpace(c.Metrics.Addr) == "" {
		return invalid("metrics.addr", c.Metrics.Addr, nil)
	}
	if c.Tracing.Enabled && strings.TrimSpace(c.Tracing.File) == "" {
		return invalid("tracing.file", c.Tracing.File, nil)
	}
	if c.Playback.Speed <= 0 {
		return invalid("playback.speed", strconv.FormatFloat(c.Playback.Speed, 'g', -1, 64), nil)
	}
	if _, err := theme.ParseProfile(c.Theme.Profile); err != nil {
		return invalid("theme.profile", c.Theme.Profile, err)
	}
	return nil
}

func invalid(field, value string, cause error) error {
	msg := "invalid " + field + " " + strconv.Quote(value)
	var e *errors.Error
	if cause != nil {
		e = errors.Wrap(cause, errors.ErrCodeConfigInvalid, msg)
	} else {
		e = errors.New(errors.ErrCodeConfigInvalid, msg)
	}
	return e.WithContext("field", field)
}

// LogLevel returns the parsed log level. Call after Validate.
func (c *Config) LogLevel() logging.Level {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return logging.LevelInfo
	}
	return level
}

// LogFormat returns the parsed log format.
func (c *Config) LogFormat() logging.Format {
	return logging.Format(strings.ToLower(c.Logging.Format))
}

// ThemeProfile returns the parsed color profile.
func (c *Config) ThemeProfile() theme.Profile {
	p, err := theme.ParseProfile(c.Theme.Profile)
	if err != nil {
		return theme.ProfileAuto
	}
	return p
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
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
