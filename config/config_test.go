package config

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jongio/smith-core/browser"
	"github.com/jongio/smith-core/cliout"
	"github.com/jongio/smith-core/logutil"
	"github.com/jongio/smith-core/progress"
	"github.com/jongio/smith-core/smitherr"
	"github.com/jongio/smith-core/termprobe"
	"github.com/jongio/smith-core/testutil"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, cliout.FormatAuto, cfg.Format())
	assert.Equal(t, cliout.Format(""), cfg.ForcedFormat())
	assert.Equal(t, termprobe.ColorAuto, cfg.ColorMode())
	assert.Equal(t, progress.StyleBar, cfg.ProgressStyle())
	assert.Equal(t, progress.DefaultMinInterval, cfg.Progress.Interval)
	assert.Equal(t, browser.TargetDefault, cfg.BrowserTarget())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(testutil.TempDir(t), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := testutil.WriteFile(t, testutil.TempDir(t), "config.yaml", `
output:
  format: compact
  color: never
progress:
  style: spinner
  interval: 250ms
  showETA: false
notify:
  enabled: true
  minDuration: 1m
browser: none
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cliout.FormatCompact, cfg.Format())
	assert.Equal(t, termprobe.ColorNever, cfg.ColorMode())
	assert.Equal(t, progress.StyleSpinner, cfg.ProgressStyle())
	assert.Equal(t, 250*time.Millisecond, cfg.Progress.Interval)
	assert.False(t, cfg.Progress.ShowETA)
	assert.True(t, cfg.Progress.ShowElapsed, "unset keys keep their default")
	assert.Equal(t, progress.DefaultBarWidth, cfg.Progress.BarWidth)
	assert.True(t, cfg.Notify.Enabled)
	assert.Equal(t, time.Minute, cfg.Notify.MinDuration)
	assert.Equal(t, browser.TargetNone, cfg.BrowserTarget())
}

func TestLoadInvalidYAML(t *testing.T) {
	path := testutil.WriteFile(t, testutil.TempDir(t), "config.yaml", "output: [unclosed")

	_, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, smitherr.CodeConfiguration, smitherr.Code(err))
	assert.Equal(t, smitherr.SeverityHigh, smitherr.SeverityOf(err))
}

func TestLoadInvalidValue(t *testing.T) {
	path := testutil.WriteFile(t, testutil.TempDir(t), "config.yaml", "output:\n  format: xml\n")

	_, err := Load(path)
	require.Error(t, err)

	var se *smitherr.Error
	require.True(t, errors.As(err, &se))
	assert.Contains(t, se.UserMessage, "output.format")
	assert.Contains(t, se.TechnicalDetails, "xml")
	assert.NotEmpty(t, se.SuggestedActions)
}

func TestParse(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Parse(strings.NewReader("output:\n  forceFormat: detailed\n"))
	require.NoError(t, err)
	assert.Equal(t, cliout.FormatDetailed, cfg.ForcedFormat())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"color", func(c *Config) { c.Output.Color = "sometimes" }},
		{"force format", func(c *Config) { c.Output.ForceFormat = "xml" }},
		{"style", func(c *Config) { c.Progress.Style = "neon" }},
		{"interval", func(c *Config) { c.Progress.Interval = -time.Second }},
		{"bar width", func(c *Config) { c.Progress.BarWidth = -1 }},
		{"browser", func(c *Config) { c.Browser = "lynx" }},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestApplyEnvironment(t *testing.T) {
	cfg := Default()
	env := termprobe.Static{Env: map[string]string{
		EnvFormat:           "minimal",
		EnvForceFormat:      "json",
		EnvColor:            "always",
		EnvProgressStyle:    "dots",
		EnvProgressInterval: "50ms",
		EnvBrowser:          "none",
		EnvNotify:           "true",
		logutil.EnvDebug:    "1",
		logutil.EnvFormat:   "json",
	}}

	require.NoError(t, cfg.ApplyEnvironment(env))

	assert.Equal(t, cliout.FormatMinimal, cfg.Format())
	assert.Equal(t, cliout.FormatJSON, cfg.ForcedFormat())
	assert.Equal(t, termprobe.ColorAlways, cfg.ColorMode())
	assert.Equal(t, progress.StyleDots, cfg.ProgressStyle())
	assert.Equal(t, 50*time.Millisecond, cfg.Progress.Interval)
	assert.Equal(t, browser.TargetNone, cfg.BrowserTarget())
	assert.True(t, cfg.Notify.Enabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestApplyEnvironmentIgnoresEmptyValues(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.ApplyEnvironment(termprobe.Static{Env: map[string]string{EnvFormat: "  "}}))
	assert.Equal(t, cliout.FormatAuto, cfg.Format())
}

func TestApplyEnvironmentErrors(t *testing.T) {
	tests := map[string]string{
		EnvProgressInterval: "soon",
		EnvNotify:           "maybe",
		EnvColor:            "rainbow",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			cfg := Default()
			err := cfg.ApplyEnvironment(termprobe.Static{Env: map[string]string{key: value}})
			require.Error(t, err)
			assert.Equal(t, smitherr.CodeConfiguration, smitherr.Code(err))
		})
	}
}

func TestConversions(t *testing.T) {
	cfg := Default()
	cfg.Output.Color = "never"
	cfg.Output.ForceFormat = "compact"
	cfg.Progress.Template = "{message}"
	cfg.Logging.Level = "warn"
	cfg.Logging.Format = "json"

	var buf bytes.Buffer
	platform := termprobe.Static{}

	fo := cfg.FormatterOptions(&buf, platform)
	assert.Equal(t, termprobe.ColorNever, fo.Color)
	assert.Equal(t, cliout.FormatCompact, fo.ForcedFormat)
	assert.Same(t, &buf, fo.Writer)

	po := cfg.ProgressOptions(&buf, platform)
	assert.Equal(t, progress.DefaultMinInterval, po.MinInterval)
	assert.Equal(t, progress.DefaultBarWidth, po.BarWidth)
	assert.Equal(t, "{message}", po.Template)
	assert.True(t, po.ShowETA)

	lc := cfg.LogConfig(&buf)
	assert.Equal(t, logutil.LevelWarn, lc.Level)
	assert.True(t, lc.Structured)
}
