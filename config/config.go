package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jongio/smith-core/browser"
	"github.com/jongio/smith-core/cliout"
	"github.com/jongio/smith-core/logutil"
	"github.com/jongio/smith-core/progress"
	"github.com/jongio/smith-core/smitherr"
	"github.com/jongio/smith-core/termprobe"
)

// Environment variables read by ApplyEnvironment.
const (
	EnvFormat           = "SMITH_FORMAT"
	EnvForceFormat      = "SMITH_FORCE_FORMAT"
	EnvColor            = "SMITH_COLOR"
	EnvProgressStyle    = "SMITH_PROGRESS_STYLE"
	EnvProgressInterval = "SMITH_PROGRESS_INTERVAL"
	EnvBrowser          = "SMITH_BROWSER"
	EnvNotify           = "SMITH_NOTIFY"
)

// Config is the full smith configuration.
type Config struct {
	Output   OutputConfig   `yaml:"output"`
	Progress ProgressConfig `yaml:"progress"`
	Logging  LoggingConfig  `yaml:"logging"`
	Notify   NotifyConfig   `yaml:"notify"`
	Browser  string         `yaml:"browser"`
}

// OutputConfig controls structured output.
type OutputConfig struct {
	Format      string `yaml:"format"`
	ForceFormat string `yaml:"forceFormat"`
	Color       string `yaml:"color"`
}

// ProgressConfig controls progress trackers.
type ProgressConfig struct {
	Style       string        `yaml:"style"`
	Interval    time.Duration `yaml:"interval"`
	BarWidth    int           `yaml:"barWidth"`
	ShowETA     bool          `yaml:"showETA"`
	ShowElapsed bool          `yaml:"showElapsed"`
	ShowPhase   bool          `yaml:"showPhase"`
	Template    string        `yaml:"template"`
}

// LoggingConfig controls the global logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// NotifyConfig controls desktop notifications for finished operations.
type NotifyConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MinDuration time.Duration `yaml:"minDuration"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format: string(cliout.FormatAuto),
			Color:  termprobe.ColorAuto.String(),
		},
		Progress: ProgressConfig{
			Style:       string(progress.StyleBar),
			Interval:    progress.DefaultMinInterval,
			BarWidth:    progress.DefaultBarWidth,
			ShowETA:     true,
			ShowElapsed: true,
			ShowPhase:   true,
		},
		Logging: LoggingConfig{
			Level:  logutil.LevelInfo.String(),
			Format: "text",
		},
		Notify: NotifyConfig{
			MinDuration: 10 * time.Second,
		},
		Browser: string(browser.TargetDefault),
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, "smith", "config.yaml"), nil
}

// Load reads path over the defaults. An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logutil.NewLogger("config").Debug("config file not found, using defaults", "path", path)
			return cfg, nil
		}
		return nil, smitherr.NewConfiguration("Failed to read configuration file",
			smitherr.WithDetails("%s: %v", path, err),
			smitherr.WithCause(err))
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, smitherr.NewConfiguration("Failed to parse configuration file",
			smitherr.WithDetails("%s: %v", path, err),
			smitherr.WithSuggestions(
				"Check the file is valid YAML",
				"Compare it with the example in the documentation",
			),
			smitherr.WithCause(err))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse reads YAML from r over the defaults.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, smitherr.NewConfiguration("Failed to parse configuration",
			smitherr.WithDetails("%v", err),
			smitherr.WithCause(err))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every enumerated setting.
func (c *Config) Validate() error {
	checks := []struct {
		key   string
		value string
		parse func(string) error
	}{
		{"output.format", c.Output.Format, func(s string) error { _, err := cliout.ParseFormat(s); return err }},
		{"output.forceFormat", c.Output.ForceFormat, func(s string) error {
			if s == "" {
				return nil
			}
			_, err := cliout.ParseFormat(s)
			return err
		}},
		{"output.color", c.Output.Color, func(s string) error { _, err := termprobe.ParseColorMode(s); return err }},
		{"progress.style", c.Progress.Style, func(s string) error { _, err := progress.ParseStyle(s); return err }},
		{"browser", c.Browser, func(s string) error { _, err := browser.ParseTarget(s); return err }},
	}
	for _, check := range checks {
		if err := check.parse(check.value); err != nil {
			return invalid(check.key, err)
		}
	}

	if c.Progress.Interval < 0 {
		return invalid("progress.interval", fmt.Errorf("must not be negative: %s", c.Progress.Interval))
	}
	if c.Progress.BarWidth < 0 {
		return invalid("progress.barWidth", fmt.Errorf("must not be negative: %d", c.Progress.BarWidth))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return invalid("logging.format", fmt.Errorf("invalid log format: %s (valid options: text, json)", c.Logging.Format))
	}
	return nil
}

func invalid(key string, err error) error {
	return smitherr.NewConfiguration(fmt.Sprintf("Invalid configuration value for %s", key),
		smitherr.WithDetails("%v", err),
		smitherr.WithSuggestions(fmt.Sprintf("Fix %s in the configuration file or environment", key)),
		smitherr.WithCause(err))
}

// ApplyEnvironment overrides settings from SMITH_* variables read through p.
func (c *Config) ApplyEnvironment(p termprobe.Platform) error {
	get := func(key string) (string, bool) {
		v, ok := p.LookupEnv(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvFormat); ok {
		c.Output.Format = v
	}
	if v, ok := get(EnvForceFormat); ok {
		c.Output.ForceFormat = v
	}
	if v, ok := get(EnvColor); ok {
		c.Output.Color = v
	}
	if v, ok := get(EnvProgressStyle); ok {
		c.Progress.Style = v
	}
	if v, ok := get(EnvProgressInterval); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return invalid(EnvProgressInterval, err)
		}
		c.Progress.Interval = d
	}
	if v, ok := get(EnvBrowser); ok {
		c.Browser = v
	}
	if v, ok := get(EnvNotify); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return invalid(EnvNotify, err)
		}
		c.Notify.Enabled = enabled
	}
	if v, ok := get(logutil.EnvLevel); ok {
		c.Logging.Level = v
	}
	if v, ok := get(logutil.EnvDebug); ok && (strings.EqualFold(v, "true") || v == "1") {
		c.Logging.Level = logutil.LevelDebug.String()
	}
	if v, ok := get(logutil.EnvFormat); ok {
		c.Logging.Format = v
	}

	return c.Validate()
}

// Format returns the requested output format, auto when unset or invalid.
func (c *Config) Format() cliout.Format {
	f, err := cliout.ParseFormat(c.Output.Format)
	if err != nil {
		return cliout.FormatAuto
	}
	return f
}

// ForcedFormat returns the forced output format, or "" when unset.
func (c *Config) ForcedFormat() cliout.Format {
	if c.Output.ForceFormat == "" {
		return ""
	}
	f, err := cliout.ParseFormat(c.Output.ForceFormat)
	if err != nil {
		return ""
	}
	return f
}

// ColorMode returns the configured color mode, auto when invalid.
func (c *Config) ColorMode() termprobe.ColorMode {
	m, err := termprobe.ParseColorMode(c.Output.Color)
	if err != nil {
		return termprobe.ColorAuto
	}
	return m
}

// ProgressStyle returns the configured style, bar when invalid.
func (c *Config) ProgressStyle() progress.Style {
	s, err := progress.ParseStyle(c.Progress.Style)
	if err != nil {
		return progress.StyleBar
	}
	return s
}

// BrowserTarget returns the configured browser target.
func (c *Config) BrowserTarget() browser.Target {
	t, err := browser.ParseTarget(c.Browser)
	if err != nil {
		return browser.TargetDefault
	}
	return t
}

// FormatterOptions builds cliout options writing to w through platform p.
func (c *Config) FormatterOptions(w io.Writer, p termprobe.Platform) cliout.Options {
	return cliout.Options{
		Writer:       w,
		Platform:     p,
		Color:        c.ColorMode(),
		ForcedFormat: c.ForcedFormat(),
	}
}

// ProgressOptions builds tracker options writing to w through platform p.
func (c *Config) ProgressOptions(w io.Writer, p termprobe.Platform) progress.Options {
	return progress.Options{
		Output:      w,
		Platform:    p,
		Color:       c.ColorMode(),
		MinInterval: c.Progress.Interval,
		BarWidth:    c.Progress.BarWidth,
		ShowETA:     c.Progress.ShowETA,
		ShowElapsed: c.Progress.ShowElapsed,
		ShowPhase:   c.Progress.ShowPhase,
		Template:    c.Progress.Template,
	}
}

// LogConfig builds the logutil configuration writing to w.
func (c *Config) LogConfig(w io.Writer) logutil.Config {
	return logutil.Config{
		Level:      logutil.ParseLevel(c.Logging.Level),
		Structured: strings.EqualFold(c.Logging.Format, "json"),
		Writer:     w,
	}
}
