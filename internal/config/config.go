// Package config loads the propagation run settings from a config file,
// the environment and defaults.
package config

import (
	"runtime"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables overriding config keys:
// SGP4PROP_STEP overrides step, SGP4PROP_LOG_LEVEL overrides log.level.
const EnvPrefix = "SGP4PROP"

// Config holds the settings of one propagation run.
type Config struct {
	Catalog     string
	Start       time.Time
	Span        time.Duration
	Step        time.Duration
	Workers     int
	Format      string // csv or table
	Units       string // km or er
	MetricsAddr string // Empty disables the metrics endpoint
	LogLevel    string
	LogFormat   string // json or text
}

// New returns a viper instance with defaults and environment bindings set.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("catalog", "")
	v.SetDefault("start", "")
	v.SetDefault("span", 24*time.Hour)
	v.SetDefault("step", 10*time.Minute)
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("format", "csv")
	v.SetDefault("units", "km")
	v.SetDefault("metrics.addr", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file into v and decodes the result.
// now is used when no start time is configured.
func Load(v *viper.Viper, file string, now time.Time) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config %s", file)
		}
	}

	c := &Config{
		Catalog:     v.GetString("catalog"),
		Start:       now.UTC(),
		Span:        v.GetDuration("span"),
		Step:        v.GetDuration("step"),
		Workers:     v.GetInt("workers"),
		Format:      strings.ToLower(v.GetString("format")),
		Units:       strings.ToLower(v.GetString("units")),
		MetricsAddr: v.GetString("metrics.addr"),
		LogLevel:    strings.ToLower(v.GetString("log.level")),
		LogFormat:   strings.ToLower(v.GetString("log.format")),
	}
	if s := v.GetString("start"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, errors.Wrap(err, "parsing start")
		}
		c.Start = t.UTC()
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate rejects settings a run cannot proceed with.
func (c *Config) Validate() error {
	switch {
	case c.Span <= 0:
		return errors.Errorf("span must be positive, got %s", c.Span)
	case c.Step <= 0:
		return errors.Errorf("step must be positive, got %s", c.Step)
	case c.Workers <= 0:
		return errors.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.Format != "csv" && c.Format != "table" {
		return errors.Errorf("unknown format %q, want csv or table", c.Format)
	}
	if c.Units != "km" && c.Units != "er" {
		return errors.Errorf("unknown units %q, want km or er", c.Units)
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return errors.Errorf("unknown log format %q, want json or text", c.LogFormat)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Times returns the propagation instants from Start to Start+Span
// inclusive, every Step.
func (c *Config) Times() []time.Time {
	var ts []time.Time
	for d := time.Duration(0); d <= c.Span; d += c.Step {
		ts = append(ts, c.Start.Add(d))
	}
	return ts
}
