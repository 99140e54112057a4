// Package config turns raw settings from flags, environment and the config
// file into a validated runtime configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Dicklesworthstone/progress_curve/pkg/export"
	"github.com/Dicklesworthstone/progress_curve/pkg/loader"
	"github.com/Dicklesworthstone/progress_curve/pkg/render"
	"github.com/Dicklesworthstone/progress_curve/pkg/watcher"
)

// Defaults.
const (
	DefaultWidth    = render.DefaultSnapshotWidth
	DefaultOutput   = "progress-curve.svg"
	DefaultLogLevel = "warn"
	MaxWidth        = export.MaxChartWidth
	MaxDebounce     = 5 * time.Second
)

// RawInput holds unvalidated settings as viper unmarshals them.
type RawInput struct {
	Dataset       string        `mapstructure:"dataset"`
	DatasetFormat string        `mapstructure:"dataset-format"`
	Width         float64       `mapstructure:"width"`
	Output        string        `mapstructure:"output"`
	Format        string        `mapstructure:"format"`
	Hover         string        `mapstructure:"hover"`
	Port          int           `mapstructure:"port"`
	Open          bool          `mapstructure:"open"`
	Watch         bool          `mapstructure:"watch"`
	Poll          bool          `mapstructure:"poll"`
	PollInterval  time.Duration `mapstructure:"poll-interval"`
	Debounce      time.Duration `mapstructure:"debounce"`
	LogLevel      string        `mapstructure:"log-level"`
	Quiet         bool          `mapstructure:"quiet"`
}

// Config is the validated runtime configuration.
type Config struct {
	// Dataset is the dataset path; empty means the built-in portfolio.
	Dataset       string
	DatasetFormat loader.Format

	Width  float64
	Output string
	Format string
	Hover  string

	Port         int
	OpenBrowser  bool
	Watch        bool
	Poll         bool
	PollInterval time.Duration
	Debounce     time.Duration

	LogLevel slog.Level
	Quiet    bool
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Width:        DefaultWidth,
		Output:       DefaultOutput,
		PollInterval: watcher.DefaultPollInterval,
		Debounce:     watcher.DefaultDebounceDuration,
		LogLevel:     slog.LevelWarn,
		OpenBrowser:  true,
		Watch:        true,
	}
}

// Process validates raw input and fills cfg. Every problem is reported.
func Process(cfg *Config, raw *RawInput) error {
	*cfg = Default()
	var errs []error

	cfg.Dataset = strings.TrimSpace(raw.Dataset)
	if raw.DatasetFormat != "" {
		f, err := loader.ParseFormat(raw.DatasetFormat)
		if err != nil {
			errs = append(errs, err)
		}
		cfg.DatasetFormat = f
	}

	if raw.Width != 0 {
		cfg.Width = raw.Width
	}
	if raw.Output != "" {
		cfg.Output = raw.Output
	}
	cfg.Format = strings.ToLower(strings.TrimSpace(raw.Format))
	cfg.Hover = raw.Hover
	cfg.Port = raw.Port
	cfg.OpenBrowser = raw.Open
	cfg.Watch = raw.Watch
	cfg.Poll = raw.Poll
	if raw.PollInterval != 0 {
		cfg.PollInterval = raw.PollInterval
	}
	if raw.Debounce != 0 {
		cfg.Debounce = raw.Debounce
	}
	cfg.Quiet = raw.Quiet

	level := raw.LogLevel
	if level == "" {
		level = DefaultLogLevel
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
		errs = append(errs, fmt.Errorf("invalid log-level %q: use debug, info, warn or error", level))
	}

	if err := cfg.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Width > MaxWidth {
		errs = append(errs, fmt.Errorf("width must be in (0, %g], got %g", MaxWidth, c.Width))
	}
	switch c.Format {
	case "", render.FormatSVG, render.FormatPNG, render.FormatAll:
	default:
		errs = append(errs, fmt.Errorf("format must be svg, png or all, got %q", c.Format))
	}
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port must be in [0, 65535], got %d", c.Port))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("poll-interval must be positive, got %s", c.PollInterval))
	}
	if c.Debounce < 0 {
		errs = append(errs, fmt.Errorf("debounce must not be negative, got %s", c.Debounce))
	}
	if c.Debounce > MaxDebounce {
		errs = append(errs, fmt.Errorf("debounce must be at most 5s, got %s", c.Debounce))
	}
	return errors.Join(errs...)
}

// NewLogger returns a text logger on w at the configured level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: c.LogLevel,
	}))
}
