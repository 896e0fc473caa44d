package domain

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"dario.cat/mergo"
)

const (
	TargetAPI = "api"
	TargetWeb = "web"
)

func DefaultConfig() *Config {
	return &Config{
		DataDir:     "./data",
		Concurrency: 10,
		Timeout:     5 * time.Second,
		Deadline:    60 * time.Second,
		MaxTries:    2,
		MaxRuns:     2,
		Force:       false,
		Mode:        ModeAPIOnly,
		Classifier:  DefaultClassifierConfig(),
		Targets:     map[string]TargetConfig{},
	}
}

func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		AcceptStatuses:       []int{200, 301, 302, 401},
		InconclusiveStatuses: []int{408, 429, 500, 502, 503, 504},
		DenyBodyMarkers: []string{
			"unsupported_country_region_territory",
			"not available in your country",
			"request is not allowed",
		},
	}
}

// ApplyDefaults fills every zero-valued field from DefaultConfig, leaving
// caller-supplied values untouched.
func (c *Config) ApplyDefaults() error {
	if err := mergo.Merge(c, DefaultConfig()); err != nil {
		return NewConfigError("defaults", err)
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return nil
}

func (c *Config) WithTarget(name, url string, headers map[string]string) *Config {
	if c.Targets == nil {
		c.Targets = map[string]TargetConfig{}
	}
	c.Targets[name] = TargetConfig{URL: url, Headers: headers}
	return c
}

func (c *Config) WithMode(mode Mode) *Config {
	c.Mode = mode
	return c
}

func (c *Config) WithLimits(concurrency, maxTries, maxRuns int) *Config {
	c.Concurrency = concurrency
	c.MaxTries = maxTries
	c.MaxRuns = maxRuns
	return c
}

func (c *Config) WithForce(force bool) *Config {
	c.Force = force
	return c
}

func (c *Config) WithLabeling(prefix string, excludeMarkers ...string) *Config {
	c.Labeling.Prefix = prefix
	c.Labeling.ExcludeMarkers = excludeMarkers
	return c
}

func (c *Config) Validate() error {
	if c.Concurrency <= 0 {
		return NewConfigError("concurrency", ErrInvalidConfig)
	}
	if c.Timeout <= 0 {
		return NewConfigError("timeout", ErrInvalidConfig)
	}
	if c.Logger == nil {
		return NewConfigError("logger", ErrInvalidConfig)
	}

	switch c.Mode {
	case ModeAPIOnly:
		if _, ok := c.Targets[TargetAPI]; !ok {
			return NewConfigError("targets.api", ErrInvalidConfig)
		}
	case ModeWebOnly:
		if _, ok := c.Targets[TargetWeb]; !ok {
			return NewConfigError("targets.web", ErrInvalidConfig)
		}
	case ModeAPIThenWeb, ModeAll:
		if _, ok := c.Targets[TargetAPI]; !ok {
			return NewConfigError("targets.api", ErrInvalidConfig)
		}
		if _, ok := c.Targets[TargetWeb]; !ok {
			return NewConfigError("targets.web", ErrInvalidConfig)
		}
	default:
		return NewConfigError("mode", fmt.Errorf("unknown mode %q: %w", c.Mode, ErrInvalidConfig))
	}

	return nil
}
