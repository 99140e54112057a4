package config

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dicklesworthstone/progress_curve/pkg/loader"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1200.0, cfg.Width)
	assert.Equal(t, 200*time.Millisecond, cfg.Debounce)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
}

func TestProcessAppliesRawInput(t *testing.T) {
	var cfg Config
	err := Process(&cfg, &RawInput{
		Dataset:       " data/projects.csv ",
		DatasetFormat: "csv",
		Width:         800,
		Format:        "PNG",
		Hover:         "Leadership",
		Port:          9001,
		Open:          true,
		PollInterval:  time.Second,
		LogLevel:      "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, "data/projects.csv", cfg.Dataset)
	assert.Equal(t, loader.FormatCSV, cfg.DatasetFormat)
	assert.Equal(t, 800.0, cfg.Width)
	assert.Equal(t, "png", cfg.Format)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, 9001, cfg.Port)
	assert.True(t, cfg.OpenBrowser)
	assert.Equal(t, time.Second, cfg.PollInterval)
	assert.Equal(t, 200*time.Millisecond, cfg.Debounce)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestProcessReportsEveryProblem(t *testing.T) {
	var cfg Config
	err := Process(&cfg, &RawInput{
		DatasetFormat: "xml",
		Width:         -5,
		Format:        "gif",
		Port:          70000,
		Debounce:      time.Minute,
		LogLevel:      "loud",
	})
	require.Error(t, err)

	msg := err.Error()
	for _, want := range []string{"xml", "width", "format", "port", "debounce", "log-level"} {
		assert.Contains(t, msg, want)
	}
}

func TestValidateWidthBounds(t *testing.T) {
	cfg := Default()
	cfg.Width = MaxWidth
	assert.NoError(t, cfg.Validate())
	cfg.Width = MaxWidth + 1
	assert.Error(t, cfg.Validate())
	cfg.Width = 0
	assert.Error(t, cfg.Validate())
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	log := cfg.NewLogger(&buf)

	log.Info("hidden")
	log.Warn("shown", "tier", "base")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "tier=base")
}
