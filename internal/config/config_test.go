package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 4, 9, 12, 0, 0, 0, time.UTC)

func TestLoadDefaults(t *testing.T) {
	c, err := Load(New(), "", now)
	require.NoError(t, err)

	assert.Equal(t, now, c.Start)
	assert.Equal(t, 24*time.Hour, c.Span)
	assert.Equal(t, 10*time.Minute, c.Step)
	assert.Equal(t, runtime.NumCPU(), c.Workers)
	assert.Equal(t, "csv", c.Format)
	assert.Equal(t, "km", c.Units)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
	assert.Empty(t, c.MetricsAddr)
	assert.Len(t, c.Times(), 24*6+1)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("SGP4PROP_STEP", "1m")
	t.Setenv("SGP4PROP_SPAN", "1h")
	t.Setenv("SGP4PROP_LOG_LEVEL", "DEBUG")
	t.Setenv("SGP4PROP_METRICS_ADDR", ":9090")
	t.Setenv("SGP4PROP_START", "2024-04-09T14:00:00+02:00")

	c, err := Load(New(), "", time.Now())
	require.NoError(t, err)

	assert.Equal(t, time.Minute, c.Step)
	assert.Equal(t, time.Hour, c.Span)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, ":9090", c.MetricsAddr)
	assert.Equal(t, now, c.Start)
	assert.Len(t, c.Times(), 61)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sgp4prop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
catalog: stations.txt
start: "2024-04-09T12:00:00Z"
span: 2h
step: 30m
workers: 3
format: table
units: er
log:
  level: warn
  format: json
`), 0o644))

	c, err := Load(New(), path, time.Now())
	require.NoError(t, err)

	assert.Equal(t, "stations.txt", c.Catalog)
	assert.Equal(t, now, c.Start)
	assert.Equal(t, 3, c.Workers)
	assert.Equal(t, "table", c.Format)
	assert.Equal(t, "er", c.Units)
	assert.Equal(t, "warn", c.LogLevel)
	assert.Equal(t, "json", c.LogFormat)

	times := c.Times()
	require.Len(t, times, 5)
	assert.Equal(t, now, times[0])
	assert.Equal(t, now.Add(2*time.Hour), times[4])
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"), now)
	assert.ErrorContains(t, err, "reading config")

	v := New()
	v.Set("start", "yesterday")
	_, err = Load(v, "", now)
	assert.ErrorContains(t, err, "parsing start")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Span:      time.Hour,
			Step:      time.Minute,
			Workers:   1,
			Format:    "csv",
			Units:     "km",
			LogLevel:  "info",
			LogFormat: "text",
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"zero span", func(c *Config) { c.Span = 0 }, "span must be positive"},
		{"negative step", func(c *Config) { c.Step = -time.Minute }, "step must be positive"},
		{"no workers", func(c *Config) { c.Workers = 0 }, "workers must be positive"},
		{"bad format", func(c *Config) { c.Format = "xml" }, "unknown format"},
		{"bad units", func(c *Config) { c.Units = "mi" }, "unknown units"},
		{"bad log format", func(c *Config) { c.LogFormat = "logfmt" }, "unknown log format"},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, "unknown log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestTimesUneven(t *testing.T) {
	c := Config{Start: now, Span: 25 * time.Minute, Step: 10 * time.Minute}
	times := c.Times()
	require.Len(t, times, 3)
	assert.Equal(t, now.Add(20*time.Minute), times[2])
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for name, want := range tests {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	c := &Config{LogLevel: "warn", LogFormat: "json"}
	logger := c.NewLogger(&buf)

	logger.Info("hidden")
	logger.Warn("shown", "norad_id", 25544)

	out := strings.TrimSpace(buf.String())
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.HasPrefix(out, "{"), out)
	assert.Contains(t, out, `"norad_id":25544`)

	buf.Reset()
	c = &Config{LogLevel: "debug", LogFormat: "text"}
	c.NewLogger(&buf).Debug("visible")
	assert.Contains(t, buf.String(), "msg=visible")
}
